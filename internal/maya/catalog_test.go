package maya

import (
	"strings"
	"testing"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/reply"
	"github.com/danmuck/mayactl/internal/testutil/testlog"
	"github.com/danmuck/mayactl/internal/tools"
)

func TestRegisterCatalog(t *testing.T) {
	testlog.Start(t)

	reg := tools.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register catalog: %v", err)
	}

	expected := []string{
		"create_object",
		"delete_object",
		"duplicate_object",
		"rename_object",
		"set_object_transform_attributes",
		"get_object_attributes",
		"set_object_attribute",
		"list_objects_by_type",
		"create_curve",
		"curve_modeling",
		"mesh_operations",
		"organize_objects",
		"create_advanced_model",
		"generate_scene",
		"import_model",
		"export_model",
		"create_material",
		"scene_new",
		"scene_open",
		"scene_save",
		"get_scene_info",
		"select_object",
		"execute_code",
		"get_viewport_screenshot",
		"search_sketchfab_models",
		"download_sketchfab_model",
		"get_sketchfab_model_preview",
	}
	if got := len(reg.List()); got != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), got)
	}
	for _, name := range expected {
		if _, ok := reg.Resolve(name); !ok {
			t.Fatalf("tool %s not registered", name)
		}
	}
}

func TestSourcesDefineToolFunction(t *testing.T) {
	testlog.Start(t)

	reg := tools.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register catalog: %v", err)
	}
	for _, spec := range reg.List() {
		if !strings.Contains(spec.Source, "def "+spec.Name+"(") {
			t.Fatalf("%s source does not define its function", spec.Name)
		}
	}
}

func TestCreateObjectCommandRendering(t *testing.T) {
	testlog.Start(t)

	reg := tools.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register catalog: %v", err)
	}
	spec, _ := reg.Resolve("create_object")

	args, err := command.ValidateArgs(spec.Args, map[string]any{
		"name":        "box1",
		"object_type": "cube",
		"translate":   []any{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	first, err := command.Build(spec.Name, spec.Source, args)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, err := command.Build(spec.Name, spec.Source, args)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if first != second {
		t.Fatalf("command rendering is not deterministic")
	}
	for _, needle := range []string{
		`python("`,
		"name='box1'",
		"object_type='cube'",
		"translate=[1, 2, 3]",
		"rotate=[0, 0, 0]",
	} {
		if !strings.Contains(first, needle) {
			t.Fatalf("missing %q in rendered command", needle)
		}
	}

	// Enum enforcement happens before rendering.
	if _, err := command.ValidateArgs(spec.Args, map[string]any{
		"name":        "box1",
		"object_type": "teapot",
	}); err == nil {
		t.Fatalf("expected enum rejection for teapot")
	}
}

func TestMeshOperationsCommandRendering(t *testing.T) {
	testlog.Start(t)

	reg := tools.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register catalog: %v", err)
	}
	spec, ok := reg.Resolve("mesh_operations")
	if !ok {
		t.Fatalf("mesh_operations not registered")
	}

	args, err := command.ValidateArgs(spec.Args, map[string]any{
		"object_name":       "pCube1",
		"operation":         "bevel",
		"parameters":        map[string]any{"segments": 2},
		"select_components": []any{"e[0:3]"},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	rendered, err := command.Build(spec.Name, spec.Source, args)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, needle := range []string{
		"object_name='pCube1'",
		"operation='bevel'",
		"'segments': 2",
		"select_components=['e[0:3]']",
	} {
		if !strings.Contains(rendered, needle) {
			t.Fatalf("missing %q in rendered command", needle)
		}
	}

	if _, err := command.ValidateArgs(spec.Args, map[string]any{
		"object_name": "pCube1",
		"operation":   "melt",
	}); err == nil {
		t.Fatalf("expected enum rejection for melt")
	}
}

func TestScreenshotDecode(t *testing.T) {
	testlog.Start(t)

	reg := tools.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register catalog: %v", err)
	}
	spec, ok := reg.Resolve("get_viewport_screenshot")
	if !ok {
		t.Fatalf("get_viewport_screenshot not registered")
	}
	if spec.Decode == nil {
		t.Fatalf("screenshot spec has no decoder")
	}

	payload, err := reply.Parse([]byte(`{"_mcp_image_data": "aGVsbG8=", "_mcp_image_format": "png", "_mcp_image_type": "base64"}` + "\n\x00"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	value, err := spec.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	img, ok := value.(tools.Image)
	if !ok {
		t.Fatalf("expected image result, got %T", value)
	}
	if img.MimeType != "image/png" || img.Data != "aGVsbG8=" {
		t.Fatalf("unexpected image %+v", img)
	}

	// A capture failure is classified as a host error before decoding.
	if _, err := reply.Parse([]byte(`{"_mcp_error": true, "message": "No active 3D viewport found"}`)); err == nil {
		t.Fatalf("expected host error for capture failure")
	}

	// Non-envelope bodies fail decoding rather than passing through.
	plain, err := reply.Parse([]byte(`{"success": true}`))
	if err != nil {
		t.Fatalf("parse plain: %v", err)
	}
	if _, err := spec.Decode(plain); err == nil {
		t.Fatalf("expected decode failure for missing image data")
	}
}
