package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketmap/scanscheduler/pkg/scheduler"
)

// statusPushInterval is how often the stream pushes the overseer status line
// to connected dashboard clients.
const statusPushInterval = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The Origin header is not checked: a client from any origin may open
	// the stream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler pushes live GetOverseerMessage updates to a websocket client,
// an overseer surface explicitly outside the scheduler's own scope but
// hosted by this repo.
type StreamHandler struct {
	disp *scheduler.Dispatcher
}

// NewStreamHandler builds a StreamHandler over disp.
func NewStreamHandler(disp *scheduler.Dispatcher) *StreamHandler {
	return &StreamHandler{disp: disp}
}

// Serve upgrades the connection and pushes a status line every
// statusPushInterval until the client disconnects or the request context
// ends.
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(statusPushInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			msg := h.disp.GetOverseerMessage()
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
	}
}
