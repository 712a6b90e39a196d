package bridge

import (
	"net"
	"strconv"
	"time"
)

// BackoffConfig defines retry backoff behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// Config defines command-port transport and reliability defaults. The reply
// terminator and retry limits are policy, not protocol constants: the host
// documents neither, so both must be tunable against a real instance.
type Config struct {
	Host           string
	Port           int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	// Terminator ends one reply on the wire. The host pads replies with a
	// NUL byte; a closed connection with buffered data also ends a reply.
	Terminator string

	// MaxAttempts bounds sends of one logical command, absorbing the
	// host's flaky first command on a fresh connection.
	MaxAttempts int

	// ProbeCommand, when set, is issued once after an empty reply on a
	// proven channel to recover a result the host executed but did not
	// return.
	ProbeCommand string

	Backoff BackoffConfig
}

// DefaultConfig returns defaults aligned with the host's stock command port.
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           50007,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   10 * time.Second,
		Terminator:     "\x00",
		MaxAttempts:    3,
		Backoff: BackoffConfig{
			InitialDelay: 250 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     2 * time.Second,
			Jitter:       true,
		},
	}
}

func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port <= 0 {
		c.Port = def.Port
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.Terminator == "" {
		c.Terminator = def.Terminator
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.Backoff.InitialDelay <= 0 {
		c.Backoff.InitialDelay = def.Backoff.InitialDelay
	}
	if c.Backoff.Multiplier < 1.0 {
		c.Backoff.Multiplier = def.Backoff.Multiplier
	}
	if c.Backoff.MaxDelay <= 0 {
		c.Backoff.MaxDelay = def.Backoff.MaxDelay
	}
	return c
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
