package backoff

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted signals that the configured MaxRetries ceiling was
// reached. It is informational: the schedule itself is defined for every
// step, only the caller's retry budget is spent. The caller decides whether
// to give up, escalate or reset its counter.
var ErrRetriesExhausted = errors.New("retries exhausted")

// ConfigError describes an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid backoff config: %s %s", e.Field, e.Reason)
}
