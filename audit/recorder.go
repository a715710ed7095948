// Package audit lets a fleet verify the collision-free precondition
// empirically. Each client claims its computed slot in a shared redis
// ledger; a slot already held by a different identity means two real
// clients collided, i.e. SlotsM is smaller than the fleet or ids repeat
// modulo SlotsM. The audit is advisory: it observes the schedule and never
// influences it, and redis being down degrades to logging only.
package audit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/status-im/backoff-common/backoff"
)

// ClaimStatus classifies the outcome of one slot claim
type ClaimStatus string

const (
	// ClaimClaimed means the slot was free and is now ours
	ClaimClaimed ClaimStatus = "claimed"
	// ClaimHeld means we already claimed this slot earlier
	ClaimHeld ClaimStatus = "held"
	// ClaimCollision means a different identity holds the slot
	ClaimCollision ClaimStatus = "collision"
	// ClaimError means the ledger was unreachable; nothing was verified
	ClaimError ClaimStatus = "error"
)

// Recorder reports computed slots to the shared ledger
type Recorder struct {
	client  RedisClient
	cfg     *Config
	logger  backoff.Logger
	metrics backoff.MetricsRecorder

	claims     uint64
	collisions uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// Option is a functional option for configuring Recorder
type Option func(*Recorder)

// WithLogger sets the logger for Recorder
func WithLogger(logger backoff.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder for Recorder
func WithMetrics(metrics backoff.MetricsRecorder) Option {
	return func(r *Recorder) {
		r.metrics = metrics
	}
}

// NewRecorder creates a Recorder on top of an established redis client
func NewRecorder(cfg *Config, client RedisClient, opts ...Option) *Recorder {
	cfg.ApplyDefaults()

	r := &Recorder{
		client:  client,
		cfg:     cfg,
		logger:  backoff.NoopLogger{},
		metrics: backoff.NoopMetrics{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RecordClaim claims the slot computed for (seed, k) by id and reports
// whether any other identity already held it. It never fails: ledger
// errors come back as ClaimError and are logged.
func (r *Recorder) RecordClaim(ctx context.Context, seed uint64, k int, slot, id uint64) ClaimStatus {
	key := claimKey(seed, k)
	field := strconv.FormatUint(slot, 10)
	value := strconv.FormatUint(id, 10)

	ok, err := r.client.HSetNX(ctx, key, field, value).Result()
	if err != nil {
		r.logger.Warn("audit claim failed", "key", key, "slot", slot, "error", err)
		r.metrics.RecordAuditClaim(string(ClaimError))
		return ClaimError
	}

	if ok {
		atomic.AddUint64(&r.claims, 1)
		r.metrics.RecordAuditClaim(string(ClaimClaimed))
		if _, err := r.client.Expire(ctx, key, r.cfg.ClaimTTL).Result(); err != nil {
			r.logger.Warn("audit ttl refresh failed", "key", key, "error", err)
		}
		return ClaimClaimed
	}

	holder, err := r.client.HGet(ctx, key, field).Result()
	if err != nil {
		r.logger.Warn("audit holder lookup failed", "key", key, "slot", slot, "error", err)
		r.metrics.RecordAuditClaim(string(ClaimError))
		return ClaimError
	}

	if holder == value {
		r.metrics.RecordAuditClaim(string(ClaimHeld))
		return ClaimHeld
	}

	atomic.AddUint64(&r.collisions, 1)
	r.metrics.RecordAuditClaim(string(ClaimCollision))
	r.metrics.RecordAuditCollision()
	r.logger.Error("slot collision observed across fleet",
		"k", k, "slot", slot, "id", id, "holder", holder)
	return ClaimCollision
}

// Claims returns the number of successful first-time claims
func (r *Recorder) Claims() uint64 {
	return atomic.LoadUint64(&r.claims)
}

// Collisions returns the number of observed cross-identity collisions
func (r *Recorder) Collisions() uint64 {
	return atomic.LoadUint64(&r.collisions)
}

func claimKey(seed uint64, k int) string {
	return fmt.Sprintf("backoff:audit:%d:%d", seed, k)
}
