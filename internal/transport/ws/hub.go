package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseSubmitted MessageType = "response_submitted"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans survey events out to the owners watching that survey's results
type Hub struct {
	// surveyID -> set of connections
	subscribers map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a WebSocket connection
type Connection struct {
	SurveyID string
	UserID   string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[string]map[*Connection]struct{}),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *BroadcastMessage, 256),
		done:        make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for surveyID, conns := range h.subscribers {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.subscribers, surveyID)
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.subscribers[conn.SurveyID] == nil {
				h.subscribers[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.subscribers[conn.SurveyID][conn] = struct{}{}
			h.mu.Unlock()
			slog.Info("results subscriber connected", "surveyId", conn.SurveyID, "userId", conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.subscribers[conn.SurveyID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.subscribers, conn.SurveyID)
					}
					slog.Info("results subscriber disconnected", "surveyId", conn.SurveyID, "userId", conn.UserID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				slog.Error("encode ws message", "error", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.subscribers[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Subscribers reports how many connections watch a survey
func (h *Hub) Subscribers(surveyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[surveyID])
}

// Close stops the hub and closes every subscriber's send channel
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// BroadcastToSurvey sends a message to every subscriber of a survey (implements service.Broadcaster).
// It never blocks the caller; events are dropped when the hub is saturated.
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("encode ws payload", "error", err)
		return
	}
	msg := &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		slog.Warn("ws broadcast queue full, dropping event", "surveyId", surveyID, "type", msgType)
	}
}
