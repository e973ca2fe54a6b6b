package broadcast

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/kavinmb/fleet-telemetry/internal/models"
)

// envelope is the wire frame pushed to websocket subscribers.
type envelope struct {
	Kind string      `json:"kind"` // "vehicle-update" or "alert"
	Data interface{} `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Subscribers are dashboards on arbitrary origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to all connected websocket clients. A client whose
// send buffer is full is dropped rather than allowed to slow the tick.
type Hub struct {
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan []byte
}

// NewHub returns an idle hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and fan-out until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// PublishUpdate queues a vehicle state frame for all subscribers.
func (h *Hub) PublishUpdate(update models.VehicleUpdate) {
	h.push(envelope{Kind: "vehicle-update", Data: update})
}

// PublishEvent queues an alert frame for all subscribers.
func (h *Hub) PublishEvent(event models.Event) {
	h.push(envelope{Kind: "alert", Data: event})
}

func (h *Hub) push(env envelope) {
	msg, err := json.Marshal(env)
	if err != nil {
		log.WithError(err).Error("failed to marshal broadcast frame")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		// Hub saturated: drop rather than block the tick.
	}
}

// ServeWS upgrades an HTTP request into a hub subscription.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, 64)}
	h.register <- c

	go c.writeLoop()
	go c.readLoop(h)
}

func (c *wsClient) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readLoop discards inbound frames; its job is detecting disconnects.
func (c *wsClient) readLoop(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
