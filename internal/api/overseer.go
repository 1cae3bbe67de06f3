package api

import (
	"net/http"

	"github.com/rocketmap/scanscheduler/pkg/scheduler"
)

// OverseerHandler serves the read-only dashboard surface: current queue
// size and the human-readable status line GetOverseerMessage produces.
type OverseerHandler struct {
	disp *scheduler.Dispatcher
}

// NewOverseerHandler builds an OverseerHandler over disp.
func NewOverseerHandler(disp *scheduler.Dispatcher) *OverseerHandler {
	return &OverseerHandler{disp: disp}
}

type statusResponse struct {
	QueueSize int    `json:"queue_size"`
	Message   string `json:"message"`
}

// Status reports the current queue size and status message as JSON.
func (h *OverseerHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		QueueSize: h.disp.GetSize(),
		Message:   h.disp.GetOverseerMessage(),
	})
}
