// Package api is the worker-facing HTTP surface: claim/ack endpoints for
// scan workers, a status endpoint and live stream for the overseer
// dashboard, and a Prometheus metrics endpoint.
package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors the overseer dashboard and any
// external monitoring scrape from /metrics.
type Metrics struct {
	QueueSize      prometheus.Gauge
	ScansDone      prometheus.Counter
	SpawnsFound    prometheus.Counter
	BandsFilledPct prometheus.Gauge
	GoodScanPct    prometheus.Gauge
	NextItemCalls  *prometheus.CounterVec
}

// NewMetrics registers and returns the scheduler's Prometheus collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		QueueSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scanscheduler_queue_size",
			Help: "Number of items currently in the scheduler's queue.",
		}),
		ScansDone: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scanscheduler_scans_done_total",
			Help: "Total scans acknowledged via task-done without a bad_scan report.",
		}),
		SpawnsFound: promauto.NewCounter(prometheus.CounterOpts{
			Name: "scanscheduler_spawns_found_total",
			Help: "Total spawn points confirmed hatched.",
		}),
		BandsFilledPct: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scanscheduler_bands_filled_percent",
			Help: "Percentage of the five per-cell bands filled, from the last refresh cycle.",
		}),
		GoodScanPct: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "scanscheduler_good_scan_percent",
			Help: "Percentage of scans that completed without a bad_scan report, from the last refresh cycle.",
		}),
		NextItemCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scanscheduler_next_item_calls_total",
			Help: "Calls to next-item by outcome (claimed or sentinel reason).",
		}, []string{"outcome"}),
	}
}
