package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/scheduler"
	"github.com/rocketmap/scanscheduler/pkg/workerstate"
)

// workerTTL evicts a worker's tracked status after this much inactivity.
const workerTTL = 30 * time.Minute

// WorkerHandler serves the claim/ack surface a scan worker drives: register
// for a worker id, claim the next item, and acknowledge the scan it ran.
type WorkerHandler struct {
	disp    *scheduler.Dispatcher
	metrics *Metrics
	status  *workerstate.Store[model.WorkerStatus]
}

// NewWorkerHandler builds a WorkerHandler over disp.
func NewWorkerHandler(disp *scheduler.Dispatcher, metrics *Metrics) *WorkerHandler {
	return &WorkerHandler{
		disp:    disp,
		metrics: metrics,
		status:  workerstate.New("worker-status", workerTTL, func() *model.WorkerStatus { return &model.WorkerStatus{} }),
	}
}

// Routes registers the worker-facing endpoints under r.
func (h *WorkerHandler) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/{id}/next-item", h.NextItem)
	r.Post("/{id}/task-done", h.TaskDone)
}

type registerResponse struct {
	WorkerID string `json:"worker_id"`
}

// Register mints a new worker id. A worker only needs this once, at
// startup; it is free to pick its own id instead and skip this call.
func (h *WorkerHandler) Register(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, registerResponse{WorkerID: uuid.NewString()})
}

type nextItemRequest struct {
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LastScanDate time.Time `json:"last_scan_date"`
}

type nextItemResponse struct {
	Step    int            `json:"step"`
	Lat     float64        `json:"lat"`
	Lng     float64        `json:"lng"`
	Alt     float64        `json:"alt"`
	Appears int64          `json:"appears"`
	Leaves  int64          `json:"leaves"`
	Wait    string         `json:"wait,omitempty"`
	Search  string         `json:"search,omitempty"`
}

// NextItem claims the next queue item for the worker named by the {id} path
// segment, creating its tracked status on first contact.
func (h *WorkerHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing worker id", http.StatusBadRequest)
		return
	}

	var req nextItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status := h.status.Get(id)
	status.WorkerID = id
	status.Latitude = req.Latitude
	status.Longitude = req.Longitude
	if !req.LastScanDate.IsZero() {
		status.LastScanDate = req.LastScanDate
	}

	result, err := h.disp.NextItem(r.Context(), status)
	if err != nil {
		http.Error(w, "next-item aborted: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	if h.metrics != nil {
		outcome := "claimed"
		if result.Step == scheduler.SentinelStep {
			outcome = "wait"
		}
		h.metrics.NextItemCalls.WithLabelValues(outcome).Inc()
		h.metrics.QueueSize.Set(float64(h.disp.GetSize()))
		report := h.disp.LastCycleReport()
		h.metrics.BandsFilledPct.Set(report.BandPercent)
		h.metrics.GoodScanPct.Set(report.GoodScanPct)
	}

	writeJSON(w, http.StatusOK, nextItemResponse{
		Step:    result.Step,
		Lat:     result.Loc.Lat,
		Lng:     result.Loc.Lng,
		Alt:     result.Loc.Alt,
		Appears: result.Appears,
		Leaves:  result.Leaves,
		Wait:    result.Messages.Wait,
		Search:  result.Messages.Search,
	})
}

type taskDoneRequest struct {
	SpawnIDs []string `json:"spawn_ids"`
	BadScan  bool     `json:"bad_scan"`
}

// TaskDone acknowledges the item the worker last claimed via NextItem.
func (h *WorkerHandler) TaskDone(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing worker id", http.StatusBadRequest)
		return
	}

	var req taskDoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	status := h.status.Get(id)

	ids := make(map[string]struct{}, len(req.SpawnIDs))
	for _, sp := range req.SpawnIDs {
		ids[sp] = struct{}{}
	}
	parsed := &model.ParsedScan{SpawnIDs: ids, BadScan: req.BadScan}

	h.disp.TaskDone(status, parsed)

	if h.metrics != nil && !req.BadScan {
		h.metrics.ScansDone.Inc()
		for range req.SpawnIDs {
			h.metrics.SpawnsFound.Inc()
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
