package mcp

import (
	"encoding/json"

	"github.com/danmuck/mayactl/internal/command"
	"github.com/danmuck/mayactl/internal/tools"
)

// toolSchema renders a tool's argument specs as a JSON Schema object for
// tools/list. Property order inside the schema does not matter to clients;
// required names stay in declaration order.
func toolSchema(spec tools.Spec) json.RawMessage {
	properties := make(map[string]any, len(spec.Args))
	required := make([]string, 0, len(spec.Args))
	for _, arg := range spec.Args {
		properties[arg.Name] = argProperty(arg)
		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	raw, _ := json.Marshal(schema)
	return raw
}

func argProperty(arg command.ArgSpec) map[string]any {
	prop := map[string]any{}
	switch arg.Kind {
	case command.KindNumber:
		prop["type"] = "number"
	case command.KindInt:
		prop["type"] = "integer"
	case command.KindString:
		prop["type"] = "string"
	case command.KindBool:
		prop["type"] = "boolean"
	case command.KindEnum:
		prop["type"] = "string"
		prop["enum"] = arg.Enum
	case command.KindVec3:
		prop["type"] = "array"
		prop["items"] = map[string]any{"type": "number"}
		prop["minItems"] = 3
		prop["maxItems"] = 3
	case command.KindList:
		prop["type"] = "array"
	case command.KindMap:
		prop["type"] = "object"
	}
	if arg.Help != "" {
		prop["description"] = arg.Help
	}
	if arg.Default != nil {
		prop["default"] = arg.Default
	}
	return prop
}
