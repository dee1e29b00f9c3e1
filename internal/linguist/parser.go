// Package linguist reads the language type and color attributes out of
// GitHub Linguist's languages.yml.
//
// Only the narrow shape of that file is understood: a top-level key per
// language followed by two-space indented "key: value" lines. Deeper
// nesting, lists, anchors and multi-line scalars are skipped.
package linguist

import "strings"

// Entry holds the attributes of one language. An empty string means the
// attribute was absent or empty in the document.
type Entry struct {
	Type  string
	Color string
}

// Metadata maps a language name to its attributes.
type Metadata map[string]*Entry

// Warning describes a line the parser accepted but that is probably malformed.
type Warning struct {
	Line    int
	Message string
}

// Parse scans text and collects the type and color of every top-level key.
func Parse(text string) (Metadata, []Warning) {
	languages := make(Metadata)
	var warnings []Warning
	var current *Entry

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")

		stripped := strings.TrimSpace(line)
		if stripped == "" || stripped == "---" || strings.HasPrefix(stripped, "#") {
			continue
		}

		if !isSpace(line[0]) && strings.HasSuffix(stripped, ":") {
			name := strings.TrimSpace(strings.TrimSuffix(stripped, ":"))
			entry, ok := languages[name]
			if !ok {
				entry = &Entry{}
				languages[name] = entry
			}
			current = entry
			continue
		}

		if current == nil {
			continue
		}

		if !strings.HasPrefix(line, "  ") || strings.HasPrefix(line, "    ") {
			continue
		}

		field, unterminated := stripInlineComment(stripped)
		if unterminated {
			warnings = append(warnings, Warning{Line: lineNo, Message: "unterminated quote: " + stripped})
		}

		key, value, found := strings.Cut(field, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(value)

		switch key {
		case "type":
			current.Type = value
		case "color":
			current.Color = value
		}
	}

	return languages, warnings
}

// stripInlineComment cuts s at the first '#' that is outside single and
// double quotes. A quote character only toggles its own state while the
// other kind is closed; a backslash inside double quotes escapes the next
// byte. unterminated reports a quote left open at the end.
func stripInlineComment(s string) (out string, unterminated bool) {
	inSingle, inDouble := false, false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inDouble {
				i++
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '#':
			if !inSingle && !inDouble {
				return strings.TrimRight(s[:i], " \t"), false
			}
		}
	}
	return strings.TrimRight(s, " \t"), inSingle || inDouble
}

// unquote trims s and removes one matching pair of surrounding quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}
