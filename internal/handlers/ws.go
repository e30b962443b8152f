package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fintrackhq/backend/internal/realtime"
	"github.com/fintrackhq/backend/internal/token"
	"github.com/fintrackhq/backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed by first-party clients only; origin is not checked.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsHandlers struct {
	Hub    *realtime.Hub
	Tokens *token.Manager
}

func NewWSHandlers(deps *Deps) *wsHandlers {
	return &wsHandlers{Hub: deps.Hub, Tokens: deps.Tokens}
}

// Serve authenticates the handshake and, on success, upgrades the connection
// and joins it to the user's room. A client that never presents a valid
// token is rejected before it can receive any room event.
func (h *wsHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	uid, err := h.Tokens.Verify(tokenStr)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.FromContext(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}

	realtime.Join(h.Hub, conn, uid)
}
