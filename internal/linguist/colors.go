package linguist

// ProgrammingType is the Linguist type of general purpose languages.
const ProgrammingType = "programming"

// ColorMap maps a language name to its display color.
type ColorMap map[string]string

// Colors returns the color of every programming language that declares one.
func Colors(languages Metadata) ColorMap {
	out := make(ColorMap)
	for name, entry := range languages {
		if entry == nil || entry.Type != ProgrammingType || entry.Color == "" {
			continue
		}
		out[name] = entry.Color
	}
	return out
}

// ParseColors is Parse followed by Colors.
func ParseColors(text string) (ColorMap, []Warning) {
	languages, warnings := Parse(text)
	return Colors(languages), warnings
}
