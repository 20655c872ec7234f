// Package websocket streams workflow events (creations, approval decisions)
// to connected clients.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a real-time workflow update pushed to every connected client.
type Event struct {
	Type      string      `json:"type"` // EXPENSE_CREATED, EXPENSE_DECISION, LEAVE_CREATED, LEAVE_DECISION
	EntityID  string      `json:"entityId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"userId,omitempty"`
	UserName  string      `json:"userName,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type eventHub struct {
	mutex   sync.Mutex
	clients map[*client]struct{}
}

var hub = &eventHub{clients: make(map[*client]struct{})}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeEvents upgrades the connection and registers it with the hub.
func ServeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	hub.mutex.Lock()
	hub.clients[c] = struct{}{}
	total := len(hub.clients)
	hub.mutex.Unlock()

	log.Printf("WebSocket client connected (%d total)", total)

	go c.writePump()
	go c.readPump()
}

func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readPump discards client messages; its job is detecting disconnects.
func (c *client) readPump() {
	defer func() {
		hub.mutex.Lock()
		if _, ok := hub.clients[c]; ok {
			delete(hub.clients, c)
			close(c.send)
		}
		hub.mutex.Unlock()
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends the event to all connected clients. Clients that cannot
// keep up are dropped rather than blocking the caller.
func Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for c := range hub.clients {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(hub.clients, c)
		}
	}
}

// SendExpenseDecision broadcasts an approval decision against an expense.
func SendExpenseDecision(expenseID, oldStatus, newStatus, userID, userName string) {
	Broadcast(Event{
		Type:     "EXPENSE_DECISION",
		EntityID: expenseID,
		Data: map[string]interface{}{
			"oldStatus": oldStatus,
			"newStatus": newStatus,
		},
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		UserName:  userName,
	})
}

// SendLeaveDecision broadcasts an approval decision against a leave request.
func SendLeaveDecision(leaveID, oldStatus, newStatus, userID, userName string) {
	Broadcast(Event{
		Type:     "LEAVE_DECISION",
		EntityID: leaveID,
		Data: map[string]interface{}{
			"oldStatus": oldStatus,
			"newStatus": newStatus,
		},
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		UserName:  userName,
	})
}

// SendCreated broadcasts a new entity of the given type.
func SendCreated(eventType, entityID string, data interface{}, userID, userName string) {
	Broadcast(Event{
		Type:      eventType,
		EntityID:  entityID,
		Data:      data,
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		UserName:  userName,
	})
}
