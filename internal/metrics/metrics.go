// Package metrics records API and reconciliation metrics for a run and
// exports them in the Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/atlasctl/internal/reconcile"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Recorder owns a registry with the atlasctl collectors. The zero value is
// not usable; create one with NewRecorder.
type Recorder struct {
	registry *prometheus.Registry

	apiRequestsTotal  *prometheus.CounterVec
	apiLatency        *prometheus.HistogramVec
	reconcileTotal    *prometheus.CounterVec
	reconcileDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "atlasctl",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of Atlas API requests by method and HTTP status",
			},
			[]string{"method", "status"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "atlasctl",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of Atlas API requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 9), // 50ms to ~13s
			},
			[]string{"method"},
		),
		reconcileTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "atlasctl",
				Name:      "reconcile_total",
				Help:      "Total number of reconciliation passes by kind, action and result",
			},
			[]string{"kind", "action", "result"},
		),
		reconcileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "atlasctl",
				Name:      "reconcile_duration_seconds",
				Help:      "Duration of reconciliation passes in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"kind"},
		),
	}

	r.registry.MustRegister(
		r.apiRequestsTotal,
		r.apiLatency,
		r.reconcileTotal,
		r.reconcileDuration,
	)
	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRequest records one API round trip. It matches atlas.RequestObserver.
// A status of 0 is recorded as "error".
func (r *Recorder) ObserveRequest(method string, status int, elapsed time.Duration) {
	label := ResultError
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.apiRequestsTotal.WithLabelValues(method, label).Inc()
	r.apiLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

// ObserveReconcile records a finished pass. action is empty when the pass
// failed before a plan was made.
func (r *Recorder) ObserveReconcile(kind reconcile.Kind, action reconcile.Action, err error, elapsed time.Duration) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	if action == "" {
		action = reconcile.ActionNone
	}
	r.reconcileTotal.WithLabelValues(string(kind), string(action), result).Inc()
	r.reconcileDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// WriteTextfile writes every collected metric to path in the text format
// read by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
