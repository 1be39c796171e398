package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/response"
)

// Event types pushed to subscribed clients. Clients re-query the queue on any
// of them; the payload is a hint, not the state.
const (
	EventQueueChanged      = "queue_changed"
	EventVerificationAdded = "verification_added"
	EventEntriesExpired    = "entries_expired"
)

// WSMessage is the envelope broadcast to every client watching a lift.
type WSMessage struct {
	EventType string                 `json:"event_type"`
	Lift      string                 `json:"lift"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Hub groups client connections by lift.
type Hub struct {
	// Connection set per lift.
	clients map[string]map[*Client]bool
	// Registration channel for new clients.
	register chan *Client
	// Removal channel.
	unregister chan *Client
	// Broadcast channel for a single lift's watchers.
	broadcast chan BroadcastMessage
	// Guards the clients map.
	mu sync.RWMutex
}

// BroadcastMessage targets every watcher of one lift.
type BroadcastMessage struct {
	Lift    string
	Message []byte
}

var HubInstance = NewHub()

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage),
	}
}

// Run processes the hub's channels. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.Lift] == nil {
				h.clients[client.Lift] = make(map[*Client]bool)
			}
			h.clients[client.Lift][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Lift]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.Lift)
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[message.Lift]; ok {
				for client := range clients {
					select {
					case client.Send <- message.Message:
					default:
						close(client.Send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastWSMessage serializes and fans out an event to the lift's watchers.
func (h *Hub) BroadcastWSMessage(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Println("ws: marshal broadcast:", err)
		return
	}
	h.broadcast <- BroadcastMessage{Lift: msg.Lift, Message: payload}
}

// Client is one WebSocket connection watching one lift.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
	Lift string
}

// readPump drains the connection. Incoming messages are ignored; the read
// loop exists to notice the disconnect.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump pushes queued messages and keepalive pings to the client.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiftWebSocketHandler upgrades the connection and registers the client as a
// watcher of one lift's queue. URL: /api/lifts/{lift}/ws
func LiftWebSocketHandler(c *gin.Context) {
	lift := c.Param("lift")
	if !models.ValidLift(lift) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_LIFT",
			Message: "Unknown lift identifier",
		})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "WebSocket upgrade failed", http.StatusInternalServerError)
		return
	}
	client := &Client{
		Hub:  HubInstance,
		Conn: conn,
		Send: make(chan []byte, 256),
		Lift: lift,
	}
	HubInstance.register <- client

	go client.writePump()
	client.readPump()
}
