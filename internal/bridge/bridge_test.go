package bridge

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danmuck/mayactl/internal/testutil/testlog"
)

// fakeHost accepts connections and answers each received command with the
// next scripted reply. An empty script entry sends just the terminator; a nil
// entry closes the connection without replying.
type fakeHost struct {
	ln       net.Listener
	accepts  atomic.Int32
	commands atomic.Int32
	next     atomic.Int32
}

func startFakeHost(t *testing.T, script [][]byte) *fakeHost {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	h := &fakeHost{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			h.accepts.Add(1)
			go func(conn net.Conn) {
				defer conn.Close()
				buf := make([]byte, 64*1024)
				for {
					if _, err := conn.Read(buf); err != nil {
						return
					}
					h.commands.Add(1)
					idx := int(h.next.Add(1)) - 1
					if idx >= len(script) {
						return
					}
					reply := script[idx]
					if reply == nil {
						return
					}
					payload := append(append([]byte{}, reply...), 0)
					if _, err := conn.Write(payload); err != nil {
						return
					}
				}
			}(conn)
		}
	}()
	return h
}

func testConfig(addr string) Config {
	host, port, _ := net.SplitHostPort(addr)
	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = atoiPort(port)
	cfg.ConnectTimeout = 2 * time.Second
	cfg.ReadTimeout = 2 * time.Second
	cfg.WriteTimeout = 2 * time.Second
	cfg.Backoff.InitialDelay = time.Millisecond
	cfg.Backoff.MaxDelay = 5 * time.Millisecond
	cfg.Backoff.Jitter = false
	return cfg
}

func atoiPort(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func TestManagerAcquireReusesReadyChannel(t *testing.T) {
	testlog.Start(t)

	h := startFakeHost(t, nil)
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	ctx := context.Background()
	first, err := mgr.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if mgr.State() != StateReady {
		t.Fatalf("state %v, want ready", mgr.State())
	}
	second, err := mgr.Acquire(ctx)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if first != second {
		t.Fatalf("ready channel was not reused")
	}
	if got := h.accepts.Load(); got != 1 {
		t.Fatalf("expected 1 accept, got %d", got)
	}
}

func TestManagerDialFailureFaults(t *testing.T) {
	testlog.Start(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	cfg := testConfig(addr)
	cfg.ConnectTimeout = 200 * time.Millisecond
	mgr := NewManager(cfg)
	defer mgr.Close()

	_, err = mgr.Acquire(context.Background())
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("expected ErrConnect, got %v", err)
	}
	if mgr.State() != StateFaulted {
		t.Fatalf("state %v, want faulted", mgr.State())
	}
	if mgr.LastError() == nil {
		t.Fatalf("expected recorded last error")
	}
}

func TestManagerMarkFaultedForcesRedial(t *testing.T) {
	testlog.Start(t)

	h := startFakeHost(t, nil)
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	ctx := context.Background()
	if _, err := mgr.Acquire(ctx); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	mgr.MarkFaulted(errors.New("test fault"))
	if mgr.State() != StateFaulted {
		t.Fatalf("state %v, want faulted", mgr.State())
	}

	if _, err := mgr.Acquire(ctx); err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	if mgr.State() != StateReady {
		t.Fatalf("state %v, want ready", mgr.State())
	}

	deadline := time.Now().Add(time.Second)
	for h.accepts.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected a second accept, got %d", h.accepts.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManagerCloseRejectsFurtherUse(t *testing.T) {
	testlog.Start(t)

	h := startFakeHost(t, nil)
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	if _, err := mgr.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if mgr.State() != StateDisconnected {
		t.Fatalf("state %v, want disconnected", mgr.State())
	}
	if _, err := mgr.Acquire(context.Background()); !errors.Is(err, ErrBridgeClosed) {
		t.Fatalf("expected ErrBridgeClosed, got %v", err)
	}
}

func TestExecutorFlakyFirstCommandRetries(t *testing.T) {
	testlog.Start(t)

	// First reply is empty, second carries the value: the documented fresh-
	// connection flake. The retry must reuse the same healthy connection.
	h := startFakeHost(t, [][]byte{
		{},
		[]byte(`{"success": true}`),
	})
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	raw, err := NewExecutor(mgr).Execute(context.Background(), "cmd")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(raw) != `{"success": true}` {
		t.Fatalf("unexpected reply: %q", raw)
	}
	if got := h.accepts.Load(); got != 1 {
		t.Fatalf("retry should reuse the connection, accepts = %d", got)
	}
	if got := h.commands.Load(); got != 2 {
		t.Fatalf("expected 2 sends, got %d", got)
	}
}

func TestExecutorProbesProvenChannelAfterEmptyReply(t *testing.T) {
	testlog.Start(t)

	h := startFakeHost(t, [][]byte{
		[]byte(`"first"`),
		{},
		[]byte(`"recovered"`),
	})
	cfg := testConfig(h.ln.Addr().String())
	cfg.ProbeCommand = "probe"
	mgr := NewManager(cfg)
	defer mgr.Close()
	exec := NewExecutor(mgr)

	ctx := context.Background()
	if _, err := exec.Execute(ctx, "cmd1"); err != nil {
		t.Fatalf("first execute: %v", err)
	}
	raw, err := exec.Execute(ctx, "cmd2")
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}
	if string(raw) != `"recovered"` {
		t.Fatalf("unexpected probe recovery: %q", raw)
	}
	if got := h.commands.Load(); got != 3 {
		t.Fatalf("expected command, empty, probe = 3 sends, got %d", got)
	}
}

func TestExecutorExhaustsAttempts(t *testing.T) {
	testlog.Start(t)

	h := startFakeHost(t, [][]byte{{}, {}, {}, {}, {}})
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	_, err := NewExecutor(mgr).Execute(context.Background(), "cmd")
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %v", err)
	}
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected wrapped ErrEmptyReply, got %v", err)
	}
	if got := h.commands.Load(); got != 3 {
		t.Fatalf("expected MaxAttempts sends, got %d", got)
	}
}

func TestExecutorReconnectsAfterTransportFault(t *testing.T) {
	testlog.Start(t)

	// First connection dies mid-request; the executor must fault the
	// manager, redial, and complete on the fresh connection.
	h := startFakeHost(t, [][]byte{
		nil,
		[]byte(`{"success": true}`),
	})
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	raw, err := NewExecutor(mgr).Execute(context.Background(), "cmd")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(raw) != `{"success": true}` {
		t.Fatalf("unexpected reply: %q", raw)
	}
	if got := h.accepts.Load(); got < 2 {
		t.Fatalf("expected a redial, accepts = %d", got)
	}
	if mgr.State() != StateReady {
		t.Fatalf("state %v, want ready", mgr.State())
	}
}

func TestExecutorReturnsHostErrorReplyWithoutRetry(t *testing.T) {
	testlog.Start(t)

	// A host execution error is a successful read. It must come back
	// verbatim after exactly one send; classification happens upstream.
	h := startFakeHost(t, [][]byte{
		[]byte("// Error: bad command //"),
	})
	mgr := NewManager(testConfig(h.ln.Addr().String()))
	defer mgr.Close()

	raw, err := NewExecutor(mgr).Execute(context.Background(), "cmd")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(raw) != "// Error: bad command //" {
		t.Fatalf("unexpected reply: %q", raw)
	}
	if got := h.commands.Load(); got != 1 {
		t.Fatalf("host error must not be retried, sends = %d", got)
	}
}

func TestChannelReceiveUntilEOFWithData(t *testing.T) {
	testlog.Start(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 1024)
		_, _ = conn.Read(buf)
		_, _ = conn.Write([]byte("partial result"))
		conn.Close()
	}()

	cfg := testConfig(ln.Addr().String())
	ch, err := dialChannel(context.Background(), cfg)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ch.Close()

	ctx := context.Background()
	if err := ch.Send(ctx, []byte("cmd")); err != nil {
		t.Fatalf("send: %v", err)
	}
	raw, err := ch.ReceiveUntil(ctx, []byte("\x00"))
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if string(raw) != "partial result" {
		t.Fatalf("unexpected data: %q", raw)
	}
}

func TestExecutorContextCancelAborts(t *testing.T) {
	testlog.Start(t)

	// A host that accepts but never replies; cancellation must cut the
	// wait short instead of burning all attempts.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				buf := make([]byte, 1024)
				for {
					if _, err := conn.Read(buf); err != nil {
						conn.Close()
						return
					}
				}
			}(conn)
		}
	}()

	cfg := testConfig(ln.Addr().String())
	mgr := NewManager(cfg)
	defer mgr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = NewExecutor(mgr).Execute(ctx, "cmd")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsTimeout(err) {
		t.Fatalf("expected timeout classification, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("cancellation took too long: %v", time.Since(start))
	}
}
