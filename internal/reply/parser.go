package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrDecode = errors.New("reply: payload shape mismatch")

// HostError is an error the host's interpreter reported while executing a
// command. It is surfaced verbatim and must never trigger a retry: the host
// already ran (and failed) the command.
type HostError struct {
	Message string
}

func (e *HostError) Error() string {
	return "reply: host execution error: " + e.Message
}

// Payload is one scrubbed, classified reply from the command port.
type Payload struct {
	Text string
}

// Scrub strips the NUL padding and trailing newlines the command port
// appends to replies.
func Scrub(raw []byte) string {
	s := strings.ReplaceAll(string(raw), "\x00", "")
	return strings.Trim(s, "\n\r")
}

// Parse scrubs a raw reply and classifies it. An interpreter error marker or
// a JSON body flagging failure (success=false or _mcp_error=true) yields a
// *HostError; anything else is a payload for the tool decoder.
func Parse(raw []byte) (Payload, error) {
	text := Scrub(raw)
	if msg, ok := hostErrorMessage(text); ok {
		return Payload{}, &HostError{Message: msg}
	}
	return Payload{Text: text}, nil
}

func hostErrorMessage(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	stripped := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
	if strings.HasPrefix(stripped, "Error:") {
		return strings.TrimSpace(strings.TrimSuffix(stripped, "//")), true
	}
	if strings.HasPrefix(trimmed, "Traceback (most recent call last)") {
		return trimmed, true
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(trimmed), &body); err != nil {
		return "", false
	}
	failed := false
	if success, ok := body["success"].(bool); ok && !success {
		failed = true
	}
	if marker, ok := body["_mcp_error"].(bool); ok && marker {
		failed = true
	}
	if !failed {
		return "", false
	}
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg, true
	}
	if msg, ok := body["error"].(string); ok && msg != "" {
		return msg, true
	}
	return "host reported failure without message", true
}

// AsText returns the raw payload text.
func (p Payload) AsText() string {
	return p.Text
}

// AsJSON decodes the payload as JSON; non-JSON payloads are returned as the
// bare string, matching the host convention that scalar results arrive
// unquoted.
func (p Payload) AsJSON() (any, error) {
	trimmed := strings.TrimSpace(p.Text)
	if trimmed == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed, nil
	}
	return v, nil
}

// AsFloat decodes a bare numeric scalar.
func (p Payload) AsFloat() (float64, error) {
	var f float64
	trimmed := strings.TrimSpace(p.Text)
	if err := json.Unmarshal([]byte(trimmed), &f); err != nil {
		return 0, fmt.Errorf("%w: expected number, got %q", ErrDecode, p.Text)
	}
	return f, nil
}

// AsVec3 decodes a 3-component numeric sequence, either JSON ([x, y, z]) or
// the host's delimited textual convention ("x y z" / "x, y, z").
func (p Payload) AsVec3() ([3]float64, error) {
	trimmed := strings.TrimSpace(p.Text)

	var viaJSON []float64
	if err := json.Unmarshal([]byte(trimmed), &viaJSON); err == nil {
		if len(viaJSON) != 3 {
			return [3]float64{}, fmt.Errorf("%w: expected 3 components, got %d", ErrDecode, len(viaJSON))
		}
		return [3]float64{viaJSON[0], viaJSON[1], viaJSON[2]}, nil
	}

	fields := strings.FieldsFunc(strings.Trim(trimmed, "()[]"), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 3 {
		return [3]float64{}, fmt.Errorf("%w: expected 3 components, got %d", ErrDecode, len(fields))
	}
	var out [3]float64
	for i, field := range fields {
		var f float64
		if err := json.Unmarshal([]byte(field), &f); err != nil {
			return [3]float64{}, fmt.Errorf("%w: component %d is not numeric: %q", ErrDecode, i, field)
		}
		out[i] = f
	}
	return out, nil
}

// AsStringList decodes a JSON array of strings.
func (p Payload) AsStringList() ([]string, error) {
	var out []string
	trimmed := strings.TrimSpace(p.Text)
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		return nil, fmt.Errorf("%w: expected string list, got %q", ErrDecode, p.Text)
	}
	return out, nil
}
