package tools

import (
	"errors"
	"sort"
	"testing"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/testutil/testlog"
)

func validSpec(name string) Spec {
	return Spec{
		Name:        name,
		Description: "test tool",
		Source:      "def " + name + "():\n    return {'success': True}",
	}
}

func TestRegisterAndResolve(t *testing.T) {
	testlog.Start(t)

	reg := NewRegistry()
	if err := reg.Register(validSpec("alpha")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := reg.Resolve("alpha"); !ok {
		t.Fatalf("alpha not resolvable")
	}
	if _, ok := reg.Resolve("beta"); ok {
		t.Fatalf("beta should not resolve")
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	testlog.Start(t)

	reg := NewRegistry()
	if err := reg.Register(validSpec("alpha")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(validSpec("alpha")); !errors.Is(err, ErrToolExists) {
		t.Fatalf("expected ErrToolExists, got %v", err)
	}
}

func TestValidateSpecRejections(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name string
		spec Spec
	}{
		{"empty name", Spec{Description: "d", Source: "x"}},
		{"empty description", Spec{Name: "a", Source: "x"}},
		{"no source or build", Spec{Name: "a", Description: "d"}},
		{"uppercase name", Spec{Name: "Alpha", Description: "d", Source: "x"}},
		{"leading separator", Spec{Name: "_alpha", Description: "d", Source: "x"}},
		{"double separator", Spec{Name: "a__b", Description: "d", Source: "x"}},
		{"bad arg schema", Spec{
			Name: "a", Description: "d", Source: "x",
			Args: []command.ArgSpec{{Name: "e", Kind: command.KindEnum}},
		}},
	}
	for _, tc := range cases {
		if err := ValidateSpec(tc.spec); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("%s: expected ErrInvalidSpec, got %v", tc.name, err)
		}
	}
}

func TestSourceToolNamesMustBeCallable(t *testing.T) {
	testlog.Start(t)

	// The default builder renders `<name>(...)`, so dotted and dashed names
	// would produce invalid Python.
	for _, name := range []string{"ns.tool", "my-tool", "3d_tool"} {
		spec := Spec{Name: name, Description: "d", Source: "x"}
		if err := ValidateSpec(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Fatalf("%s: expected ErrInvalidSpec, got %v", name, err)
		}
	}

	// A custom Build owns its call syntax, so separator names stay legal.
	spec := Spec{
		Name:        "ns.tool",
		Description: "d",
		Build: func(args command.Args) (string, error) {
			return `python("1")`, nil
		},
	}
	if err := ValidateSpec(spec); err != nil {
		t.Fatalf("build-backed dotted name rejected: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	testlog.Start(t)

	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid_tool"} {
		if err := reg.Register(validSpec(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	list := reg.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(list))
	}
	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Name < list[j].Name }) {
		t.Fatalf("list not sorted: %v", list)
	}
}
