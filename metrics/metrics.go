package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/status-im/backoff-common/backoff"
)

const (
	DefaultNamespace = "backoff"
	DefaultSubsystem = "schedule"
)

// Config defines configuration for backoff metrics
type Config struct {
	Namespace string // e.g., "demo_client"
	Subsystem string // default: "schedule"
}

// BackoffMetrics implements backoff.MetricsRecorder on top of Prometheus
type BackoffMetrics struct {
	namespace string
	subsystem string

	// Counter metrics
	WaitsComputed    *prometheus.CounterVec
	CoprimeFallbacks prometheus.Counter
	RetriesExhausted prometheus.Counter
	AuditClaims      *prometheus.CounterVec
	AuditCollisions  prometheus.Counter

	// Histogram metrics
	WaitSeconds prometheus.Histogram
}

// Ensure BackoffMetrics implements backoff.MetricsRecorder
var _ backoff.MetricsRecorder = (*BackoffMetrics)(nil)

// New creates a new BackoffMetrics instance with the given configuration
func New(cfg Config) *BackoffMetrics {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = DefaultSubsystem
	}

	m := &BackoffMetrics{
		namespace: cfg.Namespace,
		subsystem: cfg.Subsystem,
	}

	m.WaitsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "waits_computed_total",
			Help:      "Total number of computed wait durations",
		},
		[]string{"capped"},
	)

	m.CoprimeFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "coprime_fallbacks_total",
			Help:      "Coefficient fallbacks to a=1 caused by a non-power-of-two slot count",
		},
	)

	m.RetriesExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "retries_exhausted_total",
			Help:      "Times the configured retry ceiling was reached",
		},
	)

	m.AuditClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "audit_claims_total",
			Help:      "Slot claims reported to the fleet audit",
		},
		[]string{"status"}, // status: "claimed", "held", "collision", "error"
	)

	m.AuditCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "audit_collisions_total",
			Help:      "Observed slot collisions across the fleet",
		},
	)

	m.WaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "wait_seconds",
			Help:      "Computed wait durations",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	return m
}

func (m *BackoffMetrics) RecordWaitComputed(wait time.Duration, capped bool) {
	m.WaitsComputed.WithLabelValues(strconv.FormatBool(capped)).Inc()
	m.WaitSeconds.Observe(wait.Seconds())
}

func (m *BackoffMetrics) RecordCoprimeFallback(slotsM int) {
	m.CoprimeFallbacks.Inc()
}

func (m *BackoffMetrics) RecordRetriesExhausted() {
	m.RetriesExhausted.Inc()
}

func (m *BackoffMetrics) RecordAuditClaim(status string) {
	m.AuditClaims.WithLabelValues(status).Inc()
}

func (m *BackoffMetrics) RecordAuditCollision() {
	m.AuditCollisions.Inc()
}
