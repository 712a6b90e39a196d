package bridge

import (
	"math/rand"
	"testing"
	"time"

	"github.com/danmuck/mayactl/internal/testutil/testlog"
)

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	testlog.Start(t)

	cfg := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     500 * time.Millisecond,
	}

	if d := cfg.NextDelay(1, nil); d != 100*time.Millisecond {
		t.Fatalf("attempt 1: %v", d)
	}
	if d := cfg.NextDelay(2, nil); d != 200*time.Millisecond {
		t.Fatalf("attempt 2: %v", d)
	}
	if d := cfg.NextDelay(3, nil); d != 400*time.Millisecond {
		t.Fatalf("attempt 3: %v", d)
	}
	if d := cfg.NextDelay(4, nil); d != 500*time.Millisecond {
		t.Fatalf("attempt 4 should cap: %v", d)
	}
	if d := cfg.NextDelay(10, nil); d != 500*time.Millisecond {
		t.Fatalf("attempt 10 should cap: %v", d)
	}
}

func TestBackoffDelayJitterBounds(t *testing.T) {
	testlog.Start(t)

	cfg := BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2.0,
		MaxDelay:     2 * time.Second,
		Jitter:       true,
	}
	rng := rand.New(rand.NewSource(7))
	for attempt := 2; attempt <= 5; attempt++ {
		base := BackoffConfig{
			InitialDelay: cfg.InitialDelay,
			Multiplier:   cfg.Multiplier,
			MaxDelay:     cfg.MaxDelay,
		}.NextDelay(attempt, nil)
		for i := 0; i < 50; i++ {
			d := cfg.NextDelay(attempt, rng)
			if d < base/2 || d > base+base/2 {
				t.Fatalf("attempt %d: jittered delay %v outside [%v, %v]", attempt, d, base/2, base+base/2)
			}
		}
	}
}

func TestBackoffDelayZeroInitial(t *testing.T) {
	testlog.Start(t)

	if d := (BackoffConfig{}).NextDelay(3, nil); d != 0 {
		t.Fatalf("expected zero delay, got %v", d)
	}
	if d := (BackoffConfig{}).NextDelay(1, nil); d != 0 {
		t.Fatalf("expected zero first delay, got %v", d)
	}
}
