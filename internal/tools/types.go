package tools

import (
	"context"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/reply"
)

// Spec declares one tool: its schema, how its command text is built, and how
// its reply payload is decoded. Specs are immutable once registered.
type Spec struct {
	Name        string
	Description string
	Args        []command.ArgSpec

	// Source is Python source defining a function named after the tool,
	// rendered through the default scoped builder.
	Source string

	// Build overrides the default command rendering. It must be a pure
	// function of the validated arguments.
	Build func(args command.Args) (string, error)

	// Decode converts the reply payload into the tool's result shape.
	// Nil means the generic JSON/text decode.
	Decode func(p reply.Payload) (any, error)
}

func (s Spec) buildCommand(args command.Args) (string, error) {
	if s.Build != nil {
		return s.Build(args)
	}
	return command.Build(s.Name, s.Source, args)
}

func (s Spec) decode(p reply.Payload) (any, error) {
	if s.Decode != nil {
		return s.Decode(p)
	}
	return p.AsJSON()
}

// Image is a binary tool result carried as base64 text. Transports render it
// as image content instead of flattening it to a string.
type Image struct {
	MimeType string
	Data     string
}

// CommandExecutor delivers one rendered command and returns the raw reply.
type CommandExecutor interface {
	Execute(ctx context.Context, commandText string) ([]byte, error)
}

// ErrorKind classifies a failed invocation.
type ErrorKind string

const (
	ErrorUnknownTool   ErrorKind = "unknown_tool"
	ErrorArgument      ErrorKind = "argument"
	ErrorSerialization ErrorKind = "serialization"
	ErrorConnection    ErrorKind = "connection"
	ErrorTimeout       ErrorKind = "timeout"
	ErrorHostExecution ErrorKind = "host_execution"
	ErrorDecode        ErrorKind = "decode"
)

// Error is the typed failure carried by a Result.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Result is the structured outcome of one invocation. Exactly one of Value
// and Err is meaningful.
type Result struct {
	OK    bool
	Value any
	Err   *Error
}

func success(value any) Result {
	return Result{OK: true, Value: value}
}

func failure(kind ErrorKind, message string) Result {
	return Result{Err: &Error{Kind: kind, Message: message}}
}
