package handlers

import (
	"log"

	"github.com/anjiri1684/quiz_backend/middleware"
	"github.com/anjiri1684/quiz_backend/models"
	"github.com/anjiri1684/quiz_backend/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ServeWs greets the client, then relays every text frame it sends to all
// connected clients. The session also receives the signed-in user's own
// quiz_result events.
func (h *Handler) ServeWs(c *websocketcontrib.Conn) {
	clientID := c.Params("client_id")
	user, ok := c.Locals(middleware.CurrentUserKey).(*models.User)
	if !ok {
		c.Close()
		return
	}
	if err := c.WriteJSON(websocket.Event{Type: "init", Data: fiber.Map{}}); err != nil {
		log.Printf("WebSocket init failed for client %s: %v", clientID, err)
		c.Close()
		return
	}

	client := websocket.NewClient(clientID, user.ID, c)
	h.Hub.Register(client)
	defer func() {
		h.Hub.Unregister(client)
		c.Close()
	}()

	for {
		messageType, msg, err := c.ReadMessage()
		if err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("WebSocket closed for client %s", clientID)
			} else {
				log.Printf("WebSocket read error for client %s: %v", clientID, err)
			}
			return
		}
		if messageType != websocketcontrib.TextMessage {
			continue
		}
		h.Hub.Broadcast(websocket.Event{Type: "message", ClientID: clientID, Data: string(msg)})
	}
}
