package audit

import "time"

// Config represents fleet audit configuration
type Config struct {
	Enabled    bool             `yaml:"enabled" json:"enabled"`
	URL        string           `yaml:"url" json:"url"` // redis://[:password@]host:port[/db]
	Connection ConnectionConfig `yaml:"connection" json:"connection"`
	// ClaimTTL bounds how long claimed slots stay in the ledger; one
	// deploy's claims must not leak into the next.
	ClaimTTL      time.Duration `yaml:"claim_ttl" json:"claim_ttl"`
	FlushInterval time.Duration `yaml:"flush_interval" json:"flush_interval"`
}

type ConnectionConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout" json:"send_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout" json:"read_timeout"`
}

func (c *Config) ApplyDefaults() {
	if c.Connection.ConnectTimeout == 0 {
		c.Connection.ConnectTimeout = 1000 * time.Millisecond
	}
	if c.Connection.SendTimeout == 0 {
		c.Connection.SendTimeout = 1000 * time.Millisecond
	}
	if c.Connection.ReadTimeout == 0 {
		c.Connection.ReadTimeout = 1000 * time.Millisecond
	}
	if c.ClaimTTL == 0 {
		c.ClaimTTL = 1 * time.Hour
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = 30 * time.Second
	}
}
