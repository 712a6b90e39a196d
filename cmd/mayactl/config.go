package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/mayactl/internal/bridge"
)

// appConfig is the runtime configuration: bridge connection settings plus
// the optional ops HTTP sidecar.
type appConfig struct {
	Bridge bridge.Config
	Ops    opsConfig
}

type opsConfig struct {
	Enabled bool
	Addr    string
}

func defaultAppConfig() appConfig {
	return appConfig{
		Bridge: bridge.DefaultConfig(),
		Ops: opsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9188",
		},
	}
}

type fileConfig struct {
	Bridge struct {
		Host           string  `toml:"host"`
		Port           int     `toml:"port"`
		ConnectTimeout string  `toml:"connect_timeout"`
		ReadTimeout    string  `toml:"read_timeout"`
		WriteTimeout   string  `toml:"write_timeout"`
		Terminator     string  `toml:"terminator"`
		MaxAttempts    int     `toml:"max_attempts"`
		BackoffInitial string  `toml:"backoff_initial_delay"`
		BackoffMax     string  `toml:"backoff_max_delay"`
		BackoffFactor  float64 `toml:"backoff_multiplier"`
		BackoffJitter  bool    `toml:"backoff_jitter"`
	} `toml:"bridge"`
	Ops struct {
		Enabled bool   `toml:"enabled"`
		Addr    string `toml:"addr"`
	} `toml:"ops"`
}

// loadAppConfig overlays a TOML file on the defaults. Only keys present in
// the file override; absent keys keep their default values.
func loadAppConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("bridge", "host") {
		host := strings.TrimSpace(raw.Bridge.Host)
		if host != "" {
			cfg.Bridge.Host = host
		}
	}
	if meta.IsDefined("bridge", "port") {
		if raw.Bridge.Port <= 0 || raw.Bridge.Port > 65535 {
			return appConfig{}, fmt.Errorf("load config: port %d out of range", raw.Bridge.Port)
		}
		cfg.Bridge.Port = raw.Bridge.Port
	}
	if meta.IsDefined("bridge", "connect_timeout") {
		d, err := parseConfigDuration("connect_timeout", raw.Bridge.ConnectTimeout)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Bridge.ConnectTimeout = d
	}
	if meta.IsDefined("bridge", "read_timeout") {
		d, err := parseConfigDuration("read_timeout", raw.Bridge.ReadTimeout)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Bridge.ReadTimeout = d
	}
	if meta.IsDefined("bridge", "write_timeout") {
		d, err := parseConfigDuration("write_timeout", raw.Bridge.WriteTimeout)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Bridge.WriteTimeout = d
	}
	if meta.IsDefined("bridge", "terminator") {
		cfg.Bridge.Terminator = raw.Bridge.Terminator
	}
	if meta.IsDefined("bridge", "max_attempts") {
		if raw.Bridge.MaxAttempts < 1 {
			return appConfig{}, fmt.Errorf("load config: max_attempts must be at least 1")
		}
		cfg.Bridge.MaxAttempts = raw.Bridge.MaxAttempts
	}
	if meta.IsDefined("bridge", "backoff_initial_delay") {
		d, err := parseConfigDuration("backoff_initial_delay", raw.Bridge.BackoffInitial)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Bridge.Backoff.InitialDelay = d
	}
	if meta.IsDefined("bridge", "backoff_max_delay") {
		d, err := parseConfigDuration("backoff_max_delay", raw.Bridge.BackoffMax)
		if err != nil {
			return appConfig{}, err
		}
		cfg.Bridge.Backoff.MaxDelay = d
	}
	if meta.IsDefined("bridge", "backoff_multiplier") {
		cfg.Bridge.Backoff.Multiplier = raw.Bridge.BackoffFactor
	}
	if meta.IsDefined("bridge", "backoff_jitter") {
		cfg.Bridge.Backoff.Jitter = raw.Bridge.BackoffJitter
	}

	if meta.IsDefined("ops", "enabled") {
		cfg.Ops.Enabled = raw.Ops.Enabled
	}
	if meta.IsDefined("ops", "addr") {
		addr := strings.TrimSpace(raw.Ops.Addr)
		if addr != "" {
			cfg.Ops.Addr = addr
		}
	}

	return cfg, nil
}

func parseConfigDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("load config: %s must be positive", key)
	}
	return d, nil
}
