package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/mayactl/internal/bridge"
	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/observability"
	"github.com/danmuck/mayactl/internal/reply"
)

// Dispatcher is the single entry point for tool invocations. The command
// port is strict request/response with no correlation ids, so the
// acquire-send-receive sequence runs as one mutex-guarded critical section;
// interleaved use of the shared stream would cross-wire replies.
type Dispatcher struct {
	reg  *Registry
	exec CommandExecutor
	mu   sync.Mutex
}

func NewDispatcher(reg *Registry, exec CommandExecutor) *Dispatcher {
	return &Dispatcher{reg: reg, exec: exec}
}

func (d *Dispatcher) Registry() *Registry {
	return d.reg
}

// Invoke validates, serializes, executes, and decodes one tool call.
// Validation and serialization failures return before any socket use.
func (d *Dispatcher) Invoke(ctx context.Context, name string, rawArgs map[string]any) Result {
	start := time.Now()
	requestID := uuid.NewString()

	res, commandText := d.invoke(ctx, name, rawArgs)

	outcome := "ok"
	if !res.OK {
		outcome = string(res.Err.Kind)
	}
	observability.RecordToolCommand(name, outcome, time.Since(start))

	event := log.Info()
	if !res.OK {
		event = log.Warn()
	}
	event.
		Str("request_id", requestID).
		Str("tool", name).
		Str("outcome", outcome).
		Str("command", truncate(commandText, 256)).
		Dur("duration", time.Since(start)).
		Msg("tool_invoke")
	return res
}

func (d *Dispatcher) invoke(ctx context.Context, name string, rawArgs map[string]any) (Result, string) {
	spec, ok := d.reg.Resolve(name)
	if !ok {
		return failure(ErrorUnknownTool, fmt.Sprintf("tool %q is not registered", name)), ""
	}

	args, err := command.ValidateArgs(spec.Args, rawArgs)
	if err != nil {
		return failure(ErrorArgument, err.Error()), ""
	}

	commandText, err := spec.buildCommand(args)
	if err != nil {
		return failure(ErrorSerialization, err.Error()), ""
	}

	d.mu.Lock()
	raw, err := d.exec.Execute(ctx, commandText)
	d.mu.Unlock()
	if err != nil {
		if bridge.IsTimeout(err) {
			return failure(ErrorTimeout, err.Error()), commandText
		}
		return failure(ErrorConnection, err.Error()), commandText
	}

	payload, err := reply.Parse(raw)
	if err != nil {
		var hostErr *reply.HostError
		if errors.As(err, &hostErr) {
			return failure(ErrorHostExecution, hostErr.Message), commandText
		}
		return failure(ErrorDecode, err.Error()), commandText
	}

	value, err := spec.decode(payload)
	if err != nil {
		return failure(ErrorDecode, err.Error()), commandText
	}
	return success(value), commandText
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
