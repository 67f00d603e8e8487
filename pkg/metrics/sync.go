package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Record outcomes reported by sync runs.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeError   = "error"
)

// SyncMetrics records per-kind sync run health.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	records  *prometheus.CounterVec
	failures *prometheus.CounterVec
	fetched  *prometheus.GaugeVec
}

// NewSyncMetrics registers the sync metrics on reg. A nil registerer yields a
// no-op recorder.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_run_duration_seconds",
		Help:      "Duration of sync runs by entity kind.",
		Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"kind"})
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_records_total",
		Help:      "Records applied by sync runs, by kind and outcome.",
	}, []string{"kind", "outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_run_failures_total",
		Help:      "Sync runs aborted by a fetch failure.",
	}, []string{"kind"})
	fetched := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_last_fetched_records",
		Help:      "Records fetched by the most recent run of each kind.",
	}, []string{"kind"})
	reg.MustRegister(duration, records, failures, fetched)
	return &SyncMetrics{duration: duration, records: records, failures: failures, fetched: fetched}
}

func (m *SyncMetrics) ObserveRun(kind string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(d.Seconds())
}

func (m *SyncMetrics) AddRecords(kind, outcome string, n int) {
	if m == nil || m.records == nil || n <= 0 {
		return
	}
	m.records.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Add(float64(n))
}

func (m *SyncMetrics) IncFailure(kind string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *SyncMetrics) SetFetched(kind string, n int) {
	if m == nil || m.fetched == nil {
		return
	}
	m.fetched.WithLabelValues(normalizeLabel(kind)).Set(float64(n))
}
