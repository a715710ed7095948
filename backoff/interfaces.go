package backoff

import "time"

//go:generate mockgen -package=mock -source=interfaces.go -destination=mock/backoff.go

// Logger defines the interface for logging operations
// This allows users to plug in their own logger (zap, logrus, etc.)
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// MetricsRecorder defines the interface for recording backoff metrics
// Users can implement this to integrate with their metrics system (Prometheus, etc.)
type MetricsRecorder interface {
	RecordWaitComputed(wait time.Duration, capped bool)
	RecordCoprimeFallback(slotsM int)
	RecordRetriesExhausted()
	RecordAuditClaim(status string)
	RecordAuditCollision()
}

// NoopLogger is a no-operation logger that discards all log messages
type NoopLogger struct{}

func (NoopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (NoopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (NoopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (NoopLogger) Error(msg string, keysAndValues ...interface{}) {}

// NoopMetrics is a no-operation metrics recorder that discards all metrics
type NoopMetrics struct{}

func (NoopMetrics) RecordWaitComputed(wait time.Duration, capped bool) {}
func (NoopMetrics) RecordCoprimeFallback(slotsM int)                   {}
func (NoopMetrics) RecordRetriesExhausted()                            {}
func (NoopMetrics) RecordAuditClaim(status string)                     {}
func (NoopMetrics) RecordAuditCollision()                              {}
