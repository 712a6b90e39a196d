package bridge

import (
	"math/rand"
	"time"
)

// NextDelay returns the reconnect delay before attempt N (1-based).
// Growth is geometric from InitialDelay, clamped at MaxDelay; with Jitter
// the delay is scaled by a random factor in [0.5, 1.5).
func (c BackoffConfig) NextDelay(attempt int, rng *rand.Rand) time.Duration {
	if c.InitialDelay <= 0 {
		return 0
	}
	if attempt <= 1 {
		return c.InitialDelay
	}

	multiplier := c.Multiplier
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	delay := float64(c.InitialDelay)
	ceiling := float64(c.MaxDelay)
	for i := 1; i < attempt; i++ {
		delay *= multiplier
		if ceiling > 0 && delay >= ceiling {
			delay = ceiling
			break
		}
	}

	if c.Jitter {
		factor := 0.5
		if rng != nil {
			factor += rng.Float64()
		}
		delay *= factor
	}
	return time.Duration(delay)
}
