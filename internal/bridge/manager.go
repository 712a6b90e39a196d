package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/mayactl/internal/observability"
)

// State is the connection lifecycle phase.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateReady        State = "ready"
	StateFaulted      State = "faulted"
)

// Manager owns the single connection to the command port: lazy connect on
// first use, explicit fault reporting, reconnect only through Acquire. The
// mutex is held across the dial so exactly one connect is in flight and
// concurrent acquirers share its outcome.
type Manager struct {
	cfg Config

	mu      sync.Mutex
	state   State
	channel *Channel
	lastErr error
	closed  bool
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:   cfg.WithDefaults(),
		state: StateDisconnected,
	}
}

func (m *Manager) Config() Config {
	return m.cfg
}

// Acquire returns a Ready channel, connecting lazily from Disconnected or
// Faulted. A Faulted connection is never reused without redialing.
func (m *Manager) Acquire(ctx context.Context) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrBridgeClosed
	}
	if m.state == StateReady && m.channel != nil {
		return m.channel, nil
	}

	wasFaulted := m.state == StateFaulted
	m.state = StateConnecting
	if m.channel != nil {
		_ = m.channel.Close()
		m.channel = nil
	}

	ch, err := dialChannel(ctx, m.cfg)
	if err != nil {
		m.state = StateFaulted
		m.lastErr = err
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, m.cfg.Addr(), err)
	}

	m.state = StateReady
	m.channel = ch
	m.lastErr = nil
	if wasFaulted {
		observability.RecordReconnect()
	}
	log.Info().Str("addr", m.cfg.Addr()).Bool("reconnect", wasFaulted).Msg("bridge_connected")
	return ch, nil
}

// MarkFaulted records a transport failure observed during a request. The
// channel is torn down; the next Acquire redials.
func (m *Manager) MarkFaulted(reason error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if m.channel != nil {
		_ = m.channel.Close()
		m.channel = nil
	}
	m.state = StateFaulted
	m.lastErr = reason
	log.Warn().Err(reason).Msg("bridge_faulted")
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Close releases the channel and moves any state to Disconnected. The
// manager does not accept further use.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.state = StateDisconnected
	if m.channel == nil {
		return nil
	}
	err := m.channel.Close()
	m.channel = nil
	return err
}
