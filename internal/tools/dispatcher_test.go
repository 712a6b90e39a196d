package tools

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/reply"
	"github.com/danmuck/mayactl/internal/testutil/testlog"
)

// countingExecutor records sends and plays back a scripted reply or error.
type countingExecutor struct {
	calls   atomic.Int32
	lastCmd string
	reply   []byte
	err     error
}

func (c *countingExecutor) Execute(ctx context.Context, commandText string) ([]byte, error) {
	c.calls.Add(1)
	c.lastCmd = commandText
	if c.err != nil {
		return nil, c.err
	}
	return c.reply, nil
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	err := reg.Register(Spec{
		Name:        "make_box",
		Description: "creates a box",
		Args: []command.ArgSpec{
			{Name: "name", Kind: command.KindString, Required: true},
			{Name: "size", Kind: command.KindNumber, Default: 1.0},
		},
		Source: "def make_box(name, size):\n    return {'success': True, 'name': name}",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestInvokeSuccess(t *testing.T) {
	testlog.Start(t)

	exec := &countingExecutor{reply: []byte(`{"success": true, "name": "box1"}` + "\x00")}
	disp := NewDispatcher(testRegistry(t), exec)

	res := disp.Invoke(context.Background(), "make_box", map[string]any{"name": "box1"})
	if !res.OK {
		t.Fatalf("invoke failed: %v", res.Err)
	}
	m, ok := res.Value.(map[string]any)
	if !ok || m["name"] != "box1" {
		t.Fatalf("unexpected value: %#v", res.Value)
	}
	if exec.calls.Load() != 1 {
		t.Fatalf("expected 1 send, got %d", exec.calls.Load())
	}
	if !strings.HasPrefix(exec.lastCmd, `python("`) {
		t.Fatalf("command not rendered: %q", exec.lastCmd)
	}
}

func TestInvokeUnknownToolSkipsSocket(t *testing.T) {
	testlog.Start(t)

	exec := &countingExecutor{}
	disp := NewDispatcher(testRegistry(t), exec)

	res := disp.Invoke(context.Background(), "no_such_tool", nil)
	if res.OK || res.Err.Kind != ErrorUnknownTool {
		t.Fatalf("expected unknown_tool failure, got %+v", res)
	}
	if exec.calls.Load() != 0 {
		t.Fatalf("unknown tool must not reach the executor")
	}
}

func TestInvokeArgumentFailureSkipsSocket(t *testing.T) {
	testlog.Start(t)

	exec := &countingExecutor{}
	disp := NewDispatcher(testRegistry(t), exec)

	res := disp.Invoke(context.Background(), "make_box", map[string]any{"size": 2.0})
	if res.OK || res.Err.Kind != ErrorArgument {
		t.Fatalf("expected argument failure, got %+v", res)
	}
	res = disp.Invoke(context.Background(), "make_box", map[string]any{"name": "b", "bogus": 1})
	if res.OK || res.Err.Kind != ErrorArgument {
		t.Fatalf("expected argument failure for unknown arg, got %+v", res)
	}
	if exec.calls.Load() != 0 {
		t.Fatalf("invalid arguments must not reach the executor, calls = %d", exec.calls.Load())
	}
}

func TestInvokeHostErrorClassified(t *testing.T) {
	testlog.Start(t)

	exec := &countingExecutor{reply: []byte(`{"success": false, "message": "Error: box1 exists"}`)}
	disp := NewDispatcher(testRegistry(t), exec)

	res := disp.Invoke(context.Background(), "make_box", map[string]any{"name": "box1"})
	if res.OK || res.Err.Kind != ErrorHostExecution {
		t.Fatalf("expected host_execution failure, got %+v", res)
	}
	if !strings.Contains(res.Err.Message, "box1 exists") {
		t.Fatalf("host message lost: %q", res.Err.Message)
	}
	if exec.calls.Load() != 1 {
		t.Fatalf("host error must use exactly one send, got %d", exec.calls.Load())
	}
}

func TestInvokeConnectionAndTimeoutClassified(t *testing.T) {
	testlog.Start(t)

	exec := &countingExecutor{err: errors.New("dial tcp: connection refused")}
	disp := NewDispatcher(testRegistry(t), exec)
	res := disp.Invoke(context.Background(), "make_box", map[string]any{"name": "b"})
	if res.OK || res.Err.Kind != ErrorConnection {
		t.Fatalf("expected connection failure, got %+v", res)
	}

	exec = &countingExecutor{err: context.DeadlineExceeded}
	disp = NewDispatcher(testRegistry(t), exec)
	res = disp.Invoke(context.Background(), "make_box", map[string]any{"name": "b"})
	if res.OK || res.Err.Kind != ErrorTimeout {
		t.Fatalf("expected timeout failure, got %+v", res)
	}
}

func TestInvokeCustomDecode(t *testing.T) {
	testlog.Start(t)

	reg := NewRegistry()
	err := reg.Register(Spec{
		Name:        "get_count",
		Description: "returns a count",
		Source:      "def get_count():\n    return 3",
		Decode: func(p reply.Payload) (any, error) {
			return p.AsFloat()
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	exec := &countingExecutor{reply: []byte("3\x00")}
	disp := NewDispatcher(reg, exec)

	res := disp.Invoke(context.Background(), "get_count", nil)
	if !res.OK {
		t.Fatalf("invoke failed: %v", res.Err)
	}
	if res.Value != 3.0 {
		t.Fatalf("unexpected value: %#v", res.Value)
	}
}
