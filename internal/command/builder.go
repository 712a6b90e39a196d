package command

import (
	"fmt"
	"strings"
)

const resultsVar = "_mcp_maya_results"

// Build renders one complete command for the host: the tool source is scoped
// inside a generated function, invoked with the validated arguments as
// keyword literals, and the whole script is MEL-encoded for the command port.
// Output is byte-identical for identical (toolName, source, args).
func Build(toolName, source string, args Args) (string, error) {
	name := strings.TrimSpace(toolName)
	if name == "" {
		return "", fmt.Errorf("%w: tool name required", ErrInvalidSpec)
	}
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("%w: tool %q has no source", ErrInvalidSpec, name)
	}

	names := make([]string, len(args))
	kwargs := make([]string, len(args))
	literals := make([]string, len(args))
	for i, v := range args {
		names[i] = v.Name
		kwargs[i] = v.Name + "=" + v.Name
		literals[i] = v.Name + "=" + PythonLiteral(v.V)
	}

	var b strings.Builder
	b.WriteString("def _mcp_maya_scope(")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("):\n")
	b.WriteString("    import json\n")
	b.WriteString("    import traceback\n")
	b.WriteString(indent(source))
	b.WriteString("\n    try:\n")
	b.WriteString("        results = " + name + "(" + strings.Join(kwargs, ", ") + ")\n")
	b.WriteString("    except Exception as e:\n")
	b.WriteString("        traceback.print_exc()\n")
	b.WriteString("        results = {'success': False, 'message': 'Error: ' + str(e)}\n")
	b.WriteString("    if results is not None and not isinstance(results, str):\n")
	b.WriteString("        try:\n")
	b.WriteString("            results = json.dumps(results)\n")
	b.WriteString("        except Exception:\n")
	b.WriteString("            results = str(results)\n")
	b.WriteString("    return results\n")
	b.WriteString("\n")
	b.WriteString(resultsVar + " = _mcp_maya_scope(" + strings.Join(literals, ", ") + ")\n")

	return EncodeMEL(b.String()), nil
}

// ResultsQuery is the probe command that re-reads the last stored result.
// The host sometimes answers the first command on a fresh connection with an
// empty reply while still having executed it; re-querying the results
// variable recovers the value without re-running the command.
func ResultsQuery() string {
	return EncodeMEL(resultsVar)
}

func indent(source string) string {
	trimmed := strings.TrimRight(source, "\n")
	return "    " + strings.ReplaceAll(trimmed, "\n", "\n    ")
}
