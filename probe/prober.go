package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/status-im/backoff-common/backoff"
)

// Prober repeatedly probes a target URL, waiting between attempts according
// to the deterministic collision-free schedule for its identity.
type Prober struct {
	Client  *http.Client
	Backoff *backoff.Backoff
	ID      uint64
	Opts    Options
	// StatusHandler receives probe outcomes, may be nil
	StatusHandler IProbeStatusHandler
	// RateLimiter is an optional callback that returns a rate limiter for the request
	// The callback receives the request and should return a rate limiter or nil
	RateLimiter func(*http.Request) *rate.Limiter
	// SlotObserver, when set, receives every deterministic slot the prober
	// is about to wait in (e.g. to report it to a fleet audit ledger)
	SlotObserver func(k int, slot uint64)

	rng *rand.Rand // hybrid mode only
}

// NewProber creates a Prober for the given identity and schedule
func NewProber(opts Options, b *backoff.Backoff, id uint64, handler IProbeStatusHandler, rateLimiter func(*http.Request) *rate.Limiter) *Prober {
	client := &http.Client{
		Timeout: opts.ProbeTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	p := &Prober{
		Client:        client,
		Backoff:       b,
		ID:            id,
		Opts:          opts,
		StatusHandler: handler,
		RateLimiter:   rateLimiter,
	}

	if opts.HybridProb > 0 {
		p.rng = rand.New(rand.NewSource(opts.HybridSeed)) // #nosec G404 -- benchmark jitter, not security
	}

	return p
}

// Run probes until success, context cancellation, or retry exhaustion.
// It returns the retry step at which it stopped; err is nil only on success.
func (p *Prober) Run(ctx context.Context) (int, error) {
	for k := 0; ; k++ {
		if k > 0 && p.StatusHandler != nil {
			p.StatusHandler.OnRetry()
		}

		if p.Probe(ctx) {
			if p.StatusHandler != nil {
				p.StatusHandler.OnProbe("success")
			}
			log.Printf("%s: id=%d reached %s at retry=%d", p.Opts.LogPrefix, p.ID, p.Opts.TargetURL, k)
			return k, nil
		}

		if p.StatusHandler != nil {
			p.StatusHandler.OnProbe("failure")
		}

		wait, err := p.nextWait(k)
		if err != nil {
			if errors.Is(err, backoff.ErrRetriesExhausted) {
				log.Printf("%s: id=%d exhausted retries at k=%d", p.Opts.LogPrefix, p.ID, k)
			}
			return k, fmt.Errorf("probing %s failed: %w", p.Opts.TargetURL, err)
		}

		log.Printf("%s: id=%d k=%d waiting %.4fs before retry", p.Opts.LogPrefix, p.ID, k, wait.Seconds())
		if err := backoff.SleepContext(ctx, wait); err != nil {
			return k, err
		}
	}
}

// nextWait computes the wait before retry step k. In hybrid mode a seeded
// RNG slot occasionally replaces the deterministic one; collision-freedom
// is lost for exactly those waits and the observer is not told about them.
func (p *Prober) nextWait(k int) (time.Duration, error) {
	wait, err := p.Backoff.WaitDuration(p.ID, k)
	if err != nil {
		return 0, err
	}

	if p.rng != nil && p.rng.Float64() < p.Opts.HybridProb {
		slot := uint64(p.rng.Int63n(int64(p.Backoff.Config().SlotsM)))
		return p.Backoff.WaitForSlot(slot, k), nil
	}

	if p.SlotObserver != nil {
		p.SlotObserver(k, p.Backoff.OffsetSlot(p.ID, k))
	}
	return wait, nil
}

// Probe performs one GET against the target; any 2xx status is success.
func (p *Prober) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Opts.TargetURL, nil)
	if err != nil {
		log.Printf("%s: building request failed: %v", p.Opts.LogPrefix, err)
		return false
	}

	// Rate limit before executing the request
	if p.RateLimiter != nil {
		limiter := p.RateLimiter(req)
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return false
			}
		}
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
