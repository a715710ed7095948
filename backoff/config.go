package backoff

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters of the deterministic backoff schedule.
// The collision-free guarantee additionally requires SlotsM >= number of
// participants and ids distinct modulo SlotsM; neither is enforced here,
// violating them degrades to possible collisions rather than erroring.
type Config struct {
	SlotsM       int           `yaml:"slots_m" json:"slots_m"`             // permutation modulus, power of two recommended
	SlotDuration time.Duration `yaml:"slot_duration" json:"slot_duration"` // width of one jitter slot
	BaseWait     time.Duration `yaml:"base_wait" json:"base_wait"`         // exponential-backoff base
	CollatzSeed  uint64        `yaml:"collatz_seed" json:"collatz_seed"`   // shared across the fleet, can be rotated per deploy
	Cap          time.Duration `yaml:"cap" json:"cap"`                     // hard ceiling on any computed wait
	MaxRetries   int           `yaml:"max_retries" json:"max_retries"`     // 0 = unlimited
}

func (c *Config) ApplyDefaults() {
	if c.SlotsM == 0 {
		c.SlotsM = 1024 // power of 2
	}
	if c.SlotDuration == 0 {
		c.SlotDuration = 1 * time.Millisecond
	}
	if c.BaseWait == 0 {
		c.BaseWait = 50 * time.Millisecond
	}
	if c.CollatzSeed == 0 {
		c.CollatzSeed = 27
	}
	if c.Cap == 0 {
		c.Cap = 10 * time.Second
	}
}

func (c *Config) Validate() error {
	if c.SlotsM <= 0 {
		return &ConfigError{Field: "slots_m", Reason: "must be positive"}
	}
	if c.SlotDuration <= 0 {
		return &ConfigError{Field: "slot_duration", Reason: "must be positive"}
	}
	if c.BaseWait < 0 {
		return &ConfigError{Field: "base_wait", Reason: "must be non-negative"}
	}
	if c.Cap < 0 {
		return &ConfigError{Field: "cap", Reason: "must be non-negative"}
	}
	if c.MaxRetries < 0 {
		return &ConfigError{Field: "max_retries", Reason: "must be non-negative"}
	}
	return nil
}

// LoadFromEnv builds a Config from environment variables, falling back to
// defaults for unset or malformed values:
//
//	BACKOFF_SLOTS_M       permutation modulus
//	BACKOFF_SLOT_MS       per-slot time unit in milliseconds
//	BACKOFF_BASE_SECONDS  exponential-backoff base in seconds
//	COLLATZ_SEED          root seed for coefficient derivation
//	BACKOFF_CAP_SECONDS   maximum wait in seconds
//	MAX_RETRIES           optional retry ceiling
func LoadFromEnv() Config {
	cfg := Config{
		SlotsM:       envInt("BACKOFF_SLOTS_M", 1024),
		SlotDuration: time.Duration(envInt("BACKOFF_SLOT_MS", 1)) * time.Millisecond,
		BaseWait:     envSeconds("BACKOFF_BASE_SECONDS", 50*time.Millisecond),
		CollatzSeed:  uint64(envInt("COLLATZ_SEED", 27)),
		Cap:          envSeconds("BACKOFF_CAP_SECONDS", 10*time.Second),
		MaxRetries:   envInt("MAX_RETRIES", 0),
	}
	return cfg
}

// fileConfig is the on-disk schema; durations are spelled the way the env
// variables are (milliseconds for slots, seconds for base and cap).
type fileConfig struct {
	SlotsM      int     `yaml:"slots_m"`
	SlotMs      int     `yaml:"slot_ms"`
	BaseSeconds float64 `yaml:"base_seconds"`
	CollatzSeed uint64  `yaml:"collatz_seed"`
	CapSeconds  float64 `yaml:"cap_seconds"`
	MaxRetries  int     `yaml:"max_retries"`
}

// LoadFromFile reads a yaml Config from path and applies defaults for
// omitted fields.
func LoadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	cfg = Config{
		SlotsM:       fc.SlotsM,
		SlotDuration: time.Duration(fc.SlotMs) * time.Millisecond,
		BaseWait:     time.Duration(fc.BaseSeconds * float64(time.Second)),
		CollatzSeed:  fc.CollatzSeed,
		Cap:          time.Duration(fc.CapSeconds * float64(time.Second)),
		MaxRetries:   fc.MaxRetries,
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envSeconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return time.Duration(f * float64(time.Second))
}
