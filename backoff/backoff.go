// Package backoff computes deterministic, collision-free retry delays for a
// fleet of clients without any coordination between them.
//
// Each client owns a stable integer id. Per retry step k an affine
// permutation
//
//	offset_k(id) = (a_k * id + b_k) mod SlotsM
//
// assigns every id a distinct delay slot; (a_k, b_k) are derived cheaply
// from a Collatz iterate of a shared seed. With SlotsM a power of two and
// ids distinct modulo SlotsM, no two clients ever wait in the same slot at
// the same step. The schedule is a pure function of (config, id, k): no RNG,
// no shared state, no network round-trip.
//
// The schedule is predictable by construction and is not a security
// mechanism; adversarial settings need added jitter.
package backoff

import (
	"math"
	"time"
)

const maxShift = 62

// Backoff computes the deterministic wait schedule for one configuration.
// All methods are safe for concurrent use: the config is frozen at
// construction and every computation is side-effect free.
type Backoff struct {
	cfg     Config
	logger  Logger
	metrics MetricsRecorder
}

// Option is a functional option for configuring Backoff
type Option func(*Backoff)

// WithLogger sets the logger used to report degraded-guarantee conditions
func WithLogger(logger Logger) Option {
	return func(b *Backoff) {
		b.logger = logger
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(metrics MetricsRecorder) Option {
	return func(b *Backoff) {
		b.metrics = metrics
	}
}

// New validates cfg (after applying defaults for zero fields) and returns a
// ready Backoff.
func New(cfg Config, opts ...Option) (*Backoff, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Backoff{
		cfg:     cfg,
		logger:  NoopLogger{},
		metrics: NoopMetrics{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Config returns the frozen configuration.
func (b *Backoff) Config() Config {
	return b.cfg
}

// Coefficients returns the step-k affine pair (a_k, b_k). Exposed for
// debugging and benchmarking callers that want the permutation without the
// wait computation.
func (b *Backoff) Coefficients(k int) (uint64, uint64) {
	a, bk, degraded := coefficients(b.cfg.CollatzSeed, k, uint64(b.cfg.SlotsM))
	if degraded {
		b.logger.Warn("slots_m not a power of two, coefficient forced to 1; collision-free guarantee weakened",
			"slots_m", b.cfg.SlotsM, "k", k)
		b.metrics.RecordCoprimeFallback(b.cfg.SlotsM)
	}
	return a, bk
}

// OffsetSlot returns the slot index in [0, SlotsM) for id at retry step k.
// For fixed k the map id -> slot is a bijection over [0, SlotsM), so ids
// distinct modulo SlotsM never share a slot.
func (b *Backoff) OffsetSlot(id uint64, k int) uint64 {
	a, bk := b.Coefficients(k)
	m := uint64(b.cfg.SlotsM)
	return (a*(id%m) + bk) % m
}

// WaitForSlot converts an explicit slot index at step k into a capped wait.
// Most callers want WaitDuration; this entry point exists for schedules that
// mix in slots from another source (e.g. the hybrid RNG benchmark mode).
func (b *Backoff) WaitForSlot(slot uint64, k int) time.Duration {
	wait, _ := b.cappedWait(slot, k)
	return wait
}

// WaitDuration returns the wait before retry step k for the given id.
// It returns ErrRetriesExhausted once k reaches a configured MaxRetries;
// for valid non-negative inputs it never fails otherwise. The result is
// never negative and never exceeds Cap.
func (b *Backoff) WaitDuration(id uint64, k int) (time.Duration, error) {
	if b.cfg.MaxRetries > 0 && k >= b.cfg.MaxRetries {
		b.metrics.RecordRetriesExhausted()
		return 0, ErrRetriesExhausted
	}

	wait, capped := b.cappedWait(b.OffsetSlot(id, k), k)
	b.metrics.RecordWaitComputed(wait, capped)
	return wait, nil
}

// cappedWait computes min(Cap, BaseWait*2^k + slot*SlotDuration) with
// saturation instead of overflow at every stage.
func (b *Backoff) cappedWait(slot uint64, k int) (time.Duration, bool) {
	growth := exponential(b.cfg.BaseWait, k)
	jitter := slotJitter(slot, b.cfg.SlotDuration)

	raw := growth + jitter
	if raw < growth { // overflow
		raw = time.Duration(math.MaxInt64)
	}

	if raw > b.cfg.Cap {
		return b.cfg.Cap, true
	}
	return raw, false
}

// exponential calculates base * 2^k with overflow protection.
// Negative k is treated as 0.
func exponential(base time.Duration, k int) time.Duration {
	if base <= 0 {
		return 0
	}

	if k < 0 {
		k = 0
	} else if k > maxShift {
		k = maxShift
	}

	multiplier := int64(1) << uint(k)
	if int64(base) > math.MaxInt64/multiplier {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(int64(base) * multiplier)
}

func slotJitter(slot uint64, slotDuration time.Duration) time.Duration {
	if slot == 0 || slotDuration <= 0 {
		return 0
	}
	if uint64(slotDuration) > math.MaxInt64/slot {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(slot) * slotDuration
}
