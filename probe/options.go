package probe

import "time"

// Options configures the probing loop
type Options struct {
	TargetURL         string
	LogPrefix         string
	ProbeTimeout      time.Duration // total per-probe timeout including reading response
	ConnectionTimeout time.Duration // timeout for establishing connection
	// HybridProb substitutes seeded RNG jitter for the deterministic slot
	// with this probability, for benchmarking against random jitter.
	// 0 keeps the schedule fully deterministic.
	HybridProb float64
	HybridSeed int64
}

// DefaultOptions returns default probe options
func DefaultOptions() Options {
	return Options{
		TargetURL:         "http://collatz-backoff-svc:8080/healthz",
		LogPrefix:         "probe",
		ProbeTimeout:      1 * time.Second,
		ConnectionTimeout: 1 * time.Second,
		HybridProb:        0,
		HybridSeed:        1337,
	}
}
