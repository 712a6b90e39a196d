package bridge

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/mayactl/internal/observability"
)

// Executor sends one logical command with bounded retry. The retry policy
// exists for two documented behaviors: transient socket failures, and the
// host's habit of answering the very first command on a fresh connection
// with an empty reply. Host-reported execution errors arrive as successful
// reads and are therefore never retried here.
type Executor struct {
	mgr *Manager
	cfg Config
	rng *rand.Rand
}

func NewExecutor(mgr *Manager) *Executor {
	return &Executor{
		mgr: mgr,
		cfg: mgr.Config(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Execute delivers commandText and returns the raw reply. Re-sending is safe
// at this layer because command rendering is pure; whether the host-side
// operation is idempotent is the caller's concern.
func (e *Executor) Execute(ctx context.Context, commandText string) ([]byte, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		raw, err := e.attempt(ctx, commandText)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, lastErr
		}
		if attempt >= e.cfg.MaxAttempts {
			return nil, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, lastErr)
		}
		observability.RecordRetry()
		log.Warn().Int("attempt", attempt).Err(err).Msg("bridge_command_retry")
		if err := e.sleepBackoff(ctx, attempt); err != nil {
			return nil, lastErr
		}
	}
}

func (e *Executor) attempt(ctx context.Context, commandText string) ([]byte, error) {
	ch, err := e.mgr.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := e.executeOnce(ctx, ch, commandText)
	if err != nil {
		e.mgr.MarkFaulted(err)
		return nil, err
	}

	if !emptyReply(raw) {
		ch.MarkProven()
		return raw, nil
	}

	// Empty reply on a proven channel: the host executed the command but
	// dropped the response. Re-query the stored result once.
	if ch.Proven() && e.cfg.ProbeCommand != "" {
		probed, probeErr := e.executeOnce(ctx, ch, e.cfg.ProbeCommand)
		if probeErr != nil {
			e.mgr.MarkFaulted(probeErr)
			return nil, probeErr
		}
		if !emptyReply(probed) {
			return probed, nil
		}
		return nil, ErrEmptyReply
	}

	// Empty reply on a channel with no prior success: the documented
	// flaky first command. The channel itself is healthy; retry on it.
	return nil, ErrEmptyReply
}

func (e *Executor) executeOnce(ctx context.Context, ch *Channel, commandText string) ([]byte, error) {
	if err := ch.Send(ctx, []byte(commandText)); err != nil {
		return nil, err
	}
	return ch.ReceiveUntil(ctx, []byte(e.cfg.Terminator))
}

func (e *Executor) sleepBackoff(ctx context.Context, attempt int) error {
	delay := e.cfg.Backoff.NextDelay(attempt, e.rng)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func emptyReply(raw []byte) bool {
	return strings.TrimFunc(string(raw), func(r rune) bool {
		return r == 0 || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	}) == ""
}
