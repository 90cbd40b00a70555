package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the parish registry. Tracks record
// creation per module, authentication failures, and persist latency.
type Metrics struct {
	RecordsCreated  *prometheus.CounterVec
	AuthFailures    prometheus.Counter
	PersistDuration prometheus.Histogram
}

// New creates a Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sgip_records_created_total",
			Help: "Total records created, labeled by module",
		}, []string{"module"}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sgip_auth_failures_total",
			Help: "Total failed authentication attempts (staff and member)",
		}),
		PersistDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sgip_persist_duration_seconds",
			Help:    "Duration of full-state persist calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRecordsCreated records a successful record creation in a module.
func (m *Metrics) IncrementRecordsCreated(module string) {
	if m != nil {
		m.RecordsCreated.WithLabelValues(module).Inc()
	}
}

// IncrementAuthFailures records a failed authentication attempt.
func (m *Metrics) IncrementAuthFailures() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

// ObservePersist records the duration of a persist call. Call with
// time.Now() at the start of the persist.
func (m *Metrics) ObservePersist(start time.Time) {
	if m != nil {
		m.PersistDuration.Observe(time.Since(start).Seconds())
	}
}
