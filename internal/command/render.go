package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatFloat renders a float in its shortest round-trip form. The output is
// locale-independent and stable, so identical input always produces identical
// command text.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// PythonStringLiteral renders s as a single-quoted Python literal. Quote,
// backslash, newline, and control characters are escaped so the value cannot
// terminate the literal or smuggle additional statements into the host
// interpreter.
func PythonStringLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(fmt.Sprintf(`\x%02x`, r))
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// PythonLiteral renders one normalized argument value as Python source.
func PythonLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return FormatFloat(val)
	case string:
		return PythonStringLiteral(val)
	case []float64:
		parts := make([]string, len(val))
		for i, f := range val {
			parts[i] = FormatFloat(f)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []any:
		parts := make([]string, len(val))
		for i, el := range val {
			parts[i] = PythonLiteral(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = PythonStringLiteral(k) + ": " + PythonLiteral(val[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		// Normalization upstream restricts values to the cases above.
		return PythonStringLiteral(fmt.Sprintf("%v", val))
	}
}

// EncodeMEL wraps Python source in a MEL python("...") call for the command
// port. Backslashes first, then quotes, then line breaks.
func EncodeMEL(python string) string {
	mel := strings.ReplaceAll(python, `\`, `\\`)
	mel = strings.ReplaceAll(mel, `"`, `\"`)
	mel = strings.ReplaceAll(mel, "\n", `\n`)
	mel = strings.ReplaceAll(mel, "\r", `\r`)
	return `python("` + mel + `")`
}
