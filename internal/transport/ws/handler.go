package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/saran8796/survey-application/internal/model"
	"github.com/saran8796/survey-application/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// TokenVerifier resolves a token to a user id
type TokenVerifier interface {
	VerifyToken(token string) (primitive.ObjectID, error)
}

// SurveyOwnership checks that a user owns a survey
type SurveyOwnership interface {
	Owned(ctx context.Context, surveyID string, requesterID primitive.ObjectID) (*model.Survey, error)
}

// Handler handles WebSocket connections
type Handler struct {
	hub     *Hub
	auth    TokenVerifier
	surveys SurveyOwnership
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, auth TokenVerifier, surveys SurveyOwnership) *Handler {
	return &Handler{
		hub:     hub,
		auth:    auth,
		surveys: surveys,
	}
}

// ResultsWS handles GET /api/ws/surveys/{id}/results
func (h *Handler) ResultsWS(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["id"]
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.auth.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	survey, err := h.surveys.Owned(r.Context(), surveyID, userID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, "survey not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrForbidden):
		http.Error(w, "user not authorized", http.StatusForbidden)
		return
	case err != nil:
		slog.Error("ws ownership check", "surveyId", surveyID, "error", err)
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn := &Connection{
		SurveyID: survey.ID.Hex(),
		UserID:   userID.Hex(),
		Send:     make(chan []byte, 256),
		Hub:      h.hub,
	}

	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "error", err)
			}
			break
		}
		// The feed is one-way; client frames only keep the connection alive
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
