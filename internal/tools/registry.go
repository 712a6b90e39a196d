package tools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/mayactl/internal/command"
)

var (
	ErrToolExists  = errors.New("tools: tool already registered")
	ErrInvalidSpec = errors.New("tools: invalid tool spec")
	ErrUnknownTool = errors.New("tools: unknown tool")
)

// Registry stores tool specs by name. Registration happens once at process
// start; reads afterward need no synchronization.
type Registry struct {
	items map[string]Spec
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Spec)}
}

// ValidateSpec checks required fields and name format.
func ValidateSpec(spec Spec) error {
	name := strings.TrimSpace(spec.Name)
	if name == "" || strings.TrimSpace(spec.Description) == "" {
		return fmt.Errorf("%w: name and description are required", ErrInvalidSpec)
	}
	if !isValidName(name) {
		return fmt.Errorf("%w: invalid name format %q", ErrInvalidSpec, name)
	}
	if spec.Build == nil && strings.TrimSpace(spec.Source) == "" {
		return fmt.Errorf("%w: %q needs Source or Build", ErrInvalidSpec, name)
	}
	// The default builder emits `<name>(...)` as Python, so Source-backed
	// tools must be named by a plain identifier. Dotted or dashed names need
	// a custom Build that renders their own call syntax.
	if spec.Build == nil && !isPythonIdentifier(name) {
		return fmt.Errorf("%w: %q is not callable as a Python function, provide Build", ErrInvalidSpec, name)
	}
	if err := command.ValidateSpecs(spec.Args); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrInvalidSpec, name, err)
	}
	return nil
}

// Register adds a tool to the registry. Duplicate names fail fast so a
// collision is a process-init error, not a runtime surprise.
func (r *Registry) Register(spec Spec) error {
	if err := ValidateSpec(spec); err != nil {
		return err
	}
	if _, ok := r.items[spec.Name]; ok {
		return fmt.Errorf("%w: %s", ErrToolExists, spec.Name)
	}
	r.items[spec.Name] = spec
	return nil
}

// Resolve returns a tool spec by name.
func (r *Registry) Resolve(name string) (Spec, bool) {
	spec, ok := r.items[name]
	return spec, ok
}

// List returns deterministic spec ordering by name.
func (r *Registry) List() []Spec {
	list := make([]Spec, 0, len(r.items))
	for _, spec := range r.items {
		list = append(list, spec)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func isPythonIdentifier(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c == '_' && i > 0 && i < len(name)-1:
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return name != ""
}

func isValidName(name string) bool {
	if name == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(name)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
