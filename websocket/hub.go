package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	EventMessage     = "message"
	EventGift        = "gift"
	EventAchievement = "achievement"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

type Event struct {
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	recipients []uuid.UUID
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan *Event, 64)

// Notify queues an event for the given users. Offline recipients are simply
// skipped; they pick the state up over HTTP on their next load. The send
// never blocks the caller.
func Notify(eventType string, payload interface{}, recipients ...uuid.UUID) {
	event := &Event{Type: eventType, Payload: payload, recipients: recipients}
	select {
	case events <- event:
	default:
		log.Printf("Event queue full, dropping %s event", eventType)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-events:
			deliver(event)
		}
	}
}

func deliver(event *Event) {
	var failed []uuid.UUID

	clientsMu.RLock()
	for _, recipient := range event.recipients {
		conn, ok := clients[recipient]
		if !ok {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error sending %s event to client %s: %v", event.Type, recipient, err)
			conn.Close()
			failed = append(failed, recipient)
		}
	}
	clientsMu.RUnlock()

	if len(failed) > 0 {
		clientsMu.Lock()
		for _, recipient := range failed {
			delete(clients, recipient)
		}
		clientsMu.Unlock()
	}
}
