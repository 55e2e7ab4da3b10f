package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Events queued per client before the client is considered stalled.
const clientQueueSize = 64

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	SessionID uuid.UUID
	ClientID  string
	UserID    uint
	Conn      Conn

	send chan Event
}

func NewClient(clientID string, userID uint, conn Conn) *Client {
	return &Client{
		SessionID: uuid.New(),
		ClientID:  clientID,
		UserID:    userID,
		Conn:      conn,
		send:      make(chan Event, clientQueueSize),
	}
}

type Event struct {
	Type     string      `json:"type"`
	ClientID string      `json:"client_id,omitempty"`
	Data     interface{} `json:"data"`

	// zero means every client
	to uint
}

// Hub fans events out to connected clients. Only Run touches the client
// set; Count takes the read lock. Each client is written by its own
// goroutine so a slow peer never holds up the hub.
type Hub struct {
	clients    map[uuid.UUID]*Client
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 256),
		done:       make(chan struct{}),
	}
}

// Register adds c to the hub. After Run has stopped the connection is
// closed instead.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Conn.Close()
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(ev Event) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	}
}

// Publish queues a server event for the sessions of userID without
// blocking the caller. Events are dropped when the queue is full.
func (h *Hub) Publish(userID uint, event string, payload any) {
	select {
	case h.broadcast <- Event{Type: event, Data: payload, to: userID}:
	default:
		log.Printf("⚠️ Websocket queue full, dropping %s event", event)
	}
}

func (h *Hub) Count() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.clientsMu.Lock()
			for _, client := range h.clients {
				h.drop(client)
			}
			h.clientsMu.Unlock()
			return
		case client := <-h.register:
			log.Printf("Client registered: %s (%s)", client.ClientID, client.SessionID)
			h.clientsMu.Lock()
			h.clients[client.SessionID] = client
			h.clientsMu.Unlock()
			go h.write(client)
		case client := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[client.SessionID]; ok {
				log.Printf("Client unregistered: %s (%s)", client.ClientID, client.SessionID)
				h.drop(client)
			}
			h.clientsMu.Unlock()
		case ev := <-h.broadcast:
			h.send(ev)
		}
	}
}

func (h *Hub) send(ev Event) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for _, client := range h.clients {
		if ev.to != 0 && client.UserID != ev.to {
			continue
		}
		select {
		case client.send <- ev:
		default:
			log.Printf("⚠️ Client %s is not keeping up, closing connection", client.ClientID)
			h.drop(client)
		}
	}
}

// drop removes client from the set. Callers hold clientsMu.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client.SessionID)
	close(client.send)
	client.Conn.Close()
}

func (h *Hub) write(client *Client) {
	for ev := range client.send {
		if err := client.Conn.WriteJSON(ev); err != nil {
			log.Printf("Error sending %s event to client %s: %v", ev.Type, client.ClientID, err)
			h.Unregister(client)
			return
		}
	}
}
