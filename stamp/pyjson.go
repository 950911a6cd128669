package stamp

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"
)

// PyObject renders a string map like Python's
// json.dumps(m, sort_keys=True) does.
func PyObject(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePyString(&sb, k)
		sb.WriteString(": ")
		writePyString(&sb, m[k])
	}
	sb.WriteByte('}')
	return sb.String()
}

// PyList renders a string list like Python's json.dumps(l) does.
func PyList(l []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, s := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		writePyString(&sb, s)
	}
	sb.WriteByte(']')
	return sb.String()
}

// writePyString writes s as an ASCII-only JSON string literal.
func writePyString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7f && r <= 0xffff):
				fmt.Fprintf(sb, `\u%04x`, r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(sb, `\u%04x\u%04x`, r1, r2)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
