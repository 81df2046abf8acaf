// Package session owns everything about one MTalk connection's
// lifecycle: the timeouts and backoff schedule that govern it, the
// mutable bookkeeping a live connection accumulates, and the
// handshake/loop/supervisor state machines built on top.
package session

import "time"

// BackoffConfig defines the reconnect supervisor's retry schedule.
type BackoffConfig struct {
	Base       time.Duration
	Max        time.Duration
	JitterSpan time.Duration
}

// Config defines transport timeouts and reconnect behavior for Run.
// Zero-value fields are filled from DefaultConfig by resolveConfig.
type Config struct {
	ConnectTimeout   time.Duration
	HandshakeTimeout time.Duration
	LoginTimeout     time.Duration
	Backoff          BackoffConfig
	TLS              TLSConfig
}

// TLSConfig controls how the client validates the MTalk server's
// certificate. Production dials always verify; InsecureSkipVerify
// exists solely for tests against a local fake server.
type TLSConfig struct {
	ServerName         string
	InsecureSkipVerify bool
	RootCAs            []byte // PEM bundle; nil means use the system pool
}

// DefaultConfig returns the timeouts and backoff schedule spec'd for
// the MTalk client: 10s to dial, 10s for the TLS handshake, 30s to
// receive a LoginResponse, and exponential backoff capped at 60s with
// up to 1s of jitter.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:   10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		LoginTimeout:     30 * time.Second,
		Backoff: BackoffConfig{
			Base:       1 * time.Second,
			Max:        60 * time.Second,
			JitterSpan: 1 * time.Second,
		},
		TLS: TLSConfig{
			ServerName: "mtalk.google.com",
		},
	}
}

func resolveConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = def.ConnectTimeout
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = def.HandshakeTimeout
	}
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = def.LoginTimeout
	}
	if cfg.Backoff.Base <= 0 {
		cfg.Backoff.Base = def.Backoff.Base
	}
	if cfg.Backoff.Max <= 0 {
		cfg.Backoff.Max = def.Backoff.Max
	}
	if cfg.Backoff.JitterSpan <= 0 {
		cfg.Backoff.JitterSpan = def.Backoff.JitterSpan
	}
	if cfg.TLS.ServerName == "" {
		cfg.TLS.ServerName = def.TLS.ServerName
	}
	return cfg
}

// ResolveConfig fills any zero-valued fields of cfg from
// DefaultConfig. Exported for callers (the public API, the CLI) that
// build a partial Config from flags or a TOML file.
func ResolveConfig(cfg Config) Config {
	return resolveConfig(cfg)
}
