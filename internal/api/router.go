package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketmap/scanscheduler/pkg/scheduler"
)

// NewRouter wires the worker claim/ack surface, the overseer status endpoint
// and stream, and the Prometheus metrics endpoint onto a single chi router.
func NewRouter(disp *scheduler.Dispatcher, metrics *Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	workers := NewWorkerHandler(disp, metrics)
	overseer := NewOverseerHandler(disp)
	stream := NewStreamHandler(disp)

	r.Route("/workers", workers.Routes)
	r.Get("/overseer/status", overseer.Status)
	r.Get("/overseer/stream", stream.Serve)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestLogger logs each request's method, path, status and latency at
// info level, mirroring the teacher's dual request/server logger split.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}
