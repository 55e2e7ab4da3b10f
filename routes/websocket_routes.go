package routes

import (
	"github.com/anjiri1684/quiz_backend/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func WebsocketRoutes(app *fiber.App, h *handlers.Handler, g guards) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/:client_id", g.protected, websocket.New(h.ServeWs))
}
