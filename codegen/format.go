package codegen

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// FormatFloat formats v as a C++ floating point literal (without suffix).
// Values keep 9 significant digits; integral values get a trailing ".0".
func FormatFloat(v float64) string {
	if v == 0 {
		return "0.0"
	}
	s := strconv.FormatFloat(v, 'g', 9, 64)
	if s == "-0" {
		return "0.0"
	}
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	return s + ".0"
}

var nonIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SafeIdent turns s into a valid C++ identifier.
func SafeIdent(s string) string {
	id := nonIdentChars.ReplaceAllString(s, "_")
	if id == "" {
		return "Font"
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "F_" + id
	}
	return id
}

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// SnakeToCamel converts "wix_made-for display" to "WixMadeForDisplay".
// Only the first letter of each part is changed.
func SnakeToCamel(s string) string {
	var sb strings.Builder
	for _, part := range wordSeparators.Split(s, -1) {
		if part == "" {
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	if sb.Len() == 0 {
		return "Font"
	}
	return sb.String()
}

// CamelFromFile derives an icon name from a file's base name.
func CamelFromFile(base string) string {
	s := SnakeToCamel(base)
	if s == "" {
		return "Icon"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "I" + s
	}
	return s
}

// FontNamespace derives the C++ namespace for a font's metrics header.
// The regular UI font gets the plain namespace 'psdf'.
func FontNamespace(ident string) string {
	ns := strings.ToLower(ident)
	for _, noise := range []string{"made", "display", "one"} {
		ns = strings.ReplaceAll(ns, noise, "")
	}
	ns = "psdf_" + ns
	if ns == "psdf_wix" {
		return "psdf"
	}
	return ns
}
