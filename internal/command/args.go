package command

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMissingArgument = errors.New("command: missing required argument")
	ErrInvalidArgument = errors.New("command: invalid argument")
	ErrUnknownArgument = errors.New("command: unknown argument")
	ErrInvalidSpec     = errors.New("command: invalid argument spec")
)

// Kind is the declared type of one tool argument.
type Kind string

const (
	KindNumber Kind = "number"
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindEnum   Kind = "enum"
	KindVec3   Kind = "vec3"
	KindList   Kind = "list"
	KindMap    Kind = "map"
)

// ArgSpec declares one argument of a tool schema.
type ArgSpec struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
	Enum     []string
	Help     string
}

// Value is one validated, normalized argument.
type Value struct {
	Name string
	Kind Kind
	V    any
}

// Args is the validated argument set in schema order.
type Args []Value

func (a Args) Get(name string) (any, bool) {
	for _, v := range a {
		if v.Name == name {
			return v.V, true
		}
	}
	return nil, false
}

func (a Args) String(name string) string {
	v, ok := a.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ValidateSpecs checks a tool schema for structural problems at registration time.
func ValidateSpecs(specs []ArgSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return fmt.Errorf("%w: spec[%d] missing name", ErrInvalidSpec, i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: duplicate argument %q", ErrInvalidSpec, name)
		}
		seen[name] = struct{}{}
		switch spec.Kind {
		case KindNumber, KindInt, KindString, KindBool, KindVec3, KindList, KindMap:
		case KindEnum:
			if len(spec.Enum) == 0 {
				return fmt.Errorf("%w: enum argument %q has no values", ErrInvalidSpec, name)
			}
		default:
			return fmt.Errorf("%w: argument %q has unknown kind %q", ErrInvalidSpec, name, spec.Kind)
		}
		if spec.Required && spec.Default != nil {
			return fmt.Errorf("%w: argument %q is required but has a default", ErrInvalidSpec, name)
		}
	}
	return nil
}

// ValidateArgs normalizes raw caller input against a schema. The result is
// ordered by schema position so downstream rendering is deterministic. No
// command text is built from input that fails here.
func ValidateArgs(specs []ArgSpec, raw map[string]any) (Args, error) {
	for name := range raw {
		if !specHas(specs, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, name)
		}
	}

	out := make(Args, 0, len(specs))
	for _, spec := range specs {
		rawVal, present := raw[spec.Name]
		if !present || rawVal == nil {
			if spec.Required {
				return nil, fmt.Errorf("%w: %q", ErrMissingArgument, spec.Name)
			}
			if spec.Default == nil {
				continue
			}
			rawVal = spec.Default
		}
		v, err := normalize(spec, rawVal)
		if err != nil {
			return nil, err
		}
		out = append(out, Value{Name: spec.Name, Kind: spec.Kind, V: v})
	}
	return out, nil
}

func specHas(specs []ArgSpec, name string) bool {
	for _, spec := range specs {
		if spec.Name == name {
			return true
		}
	}
	return false
}

func normalize(spec ArgSpec, raw any) (any, error) {
	switch spec.Kind {
	case KindNumber:
		f, ok := asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects a number, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		return f, nil
	case KindInt:
		f, ok := asFloat(raw)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("%w: %q expects an integer", ErrInvalidArgument, spec.Name)
		}
		return int64(f), nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects a string, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		return s, nil
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects a bool, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		return b, nil
	case KindEnum:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects a string, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		for _, allowed := range spec.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fmt.Errorf("%w: %q must be one of %s, got %q",
			ErrInvalidArgument, spec.Name, strings.Join(spec.Enum, "|"), s)
	case KindVec3:
		vec, ok := asVec3(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects 3 numeric components", ErrInvalidArgument, spec.Name)
		}
		return vec, nil
	case KindList:
		list, ok := raw.([]any)
		if !ok {
			if fl, isVec := raw.([]float64); isVec {
				generic := make([]any, len(fl))
				for i, f := range fl {
					generic[i] = f
				}
				return generic, nil
			}
			return nil, fmt.Errorf("%w: %q expects a list, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		return list, nil
	case KindMap:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q expects an object, got %T", ErrInvalidArgument, spec.Name, raw)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: argument %q has unknown kind %q", ErrInvalidSpec, spec.Name, spec.Kind)
	}
}

func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func asVec3(raw any) ([]float64, bool) {
	switch v := raw.(type) {
	case []float64:
		if len(v) != 3 {
			return nil, false
		}
		out := make([]float64, 3)
		copy(out, v)
		return out, true
	case []any:
		if len(v) != 3 {
			return nil, false
		}
		out := make([]float64, 3)
		for i, el := range v {
			f, ok := asFloat(el)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
