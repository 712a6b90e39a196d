package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/mayactl/internal/bridge"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := loadAppConfig("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	def := bridge.DefaultConfig()
	if cfg.Bridge.Host != def.Host || cfg.Bridge.Port != def.Port {
		t.Fatalf("unexpected bridge defaults: %+v", cfg.Bridge)
	}
	if cfg.Ops.Enabled {
		t.Fatalf("ops should default to disabled")
	}
}

func TestLoadAppConfigExampleFile(t *testing.T) {
	cfg, err := loadAppConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load example config: %v", err)
	}
	if cfg.Bridge.Host != "127.0.0.1" || cfg.Bridge.Port != 50007 {
		t.Fatalf("unexpected bridge address: %+v", cfg.Bridge)
	}
	if cfg.Bridge.ConnectTimeout != 5*time.Second {
		t.Fatalf("unexpected connect timeout: %v", cfg.Bridge.ConnectTimeout)
	}
	if cfg.Bridge.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.Bridge.MaxAttempts)
	}
	if cfg.Bridge.Backoff.InitialDelay != 250*time.Millisecond {
		t.Fatalf("unexpected backoff initial: %v", cfg.Bridge.Backoff.InitialDelay)
	}
	if !cfg.Bridge.Backoff.Jitter {
		t.Fatalf("expected jitter enabled")
	}
	if cfg.Ops.Enabled {
		t.Fatalf("ops should stay disabled in the example")
	}
	if cfg.Ops.Addr != "127.0.0.1:9188" {
		t.Fatalf("unexpected ops addr: %q", cfg.Ops.Addr)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Bridge.Terminator != "\x00" {
		t.Fatalf("terminator default lost: %q", cfg.Bridge.Terminator)
	}
}

func TestLoadAppConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "[bridge]\nport = 7001\nread_timeout = \"30s\"\n\n[ops]\nenabled = true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := loadAppConfig(path)
	if err != nil {
		t.Fatalf("load partial config: %v", err)
	}
	if cfg.Bridge.Port != 7001 {
		t.Fatalf("port override lost: %d", cfg.Bridge.Port)
	}
	if cfg.Bridge.ReadTimeout != 30*time.Second {
		t.Fatalf("read timeout override lost: %v", cfg.Bridge.ReadTimeout)
	}
	if cfg.Bridge.Host != "127.0.0.1" {
		t.Fatalf("host default lost: %q", cfg.Bridge.Host)
	}
	if !cfg.Ops.Enabled {
		t.Fatalf("ops enable override lost")
	}
}

func TestLoadAppConfigRejectsBadValues(t *testing.T) {
	cases := []string{
		"[bridge]\nport = 70000\n",
		"[bridge]\nmax_attempts = 0\n",
		"[bridge]\nconnect_timeout = \"soon\"\n",
		"[bridge]\nread_timeout = \"-5s\"\n",
	}
	for i, content := range cases {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write temp config: %v", err)
		}
		if _, err := loadAppConfig(path); err == nil {
			t.Fatalf("case %d: expected error for %q", i, content)
		}
	}
}
