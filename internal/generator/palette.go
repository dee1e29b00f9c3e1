package generator

import (
	"image/color"

	"github.com/UnitVectorY-Labs/languagerankings/internal/linguist"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
)

// fallbackPalette is matplotlib's tab20.
var fallbackPalette = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// paletteColor returns the fallback color for the bucket at index.
func paletteColor(index int) color.Color {
	c, err := colorful.Hex(fallbackPalette[index%len(fallbackPalette)])
	if err != nil {
		panic(err)
	}
	return c
}

// resolveColor returns the Linguist color for label, or the palette color
// for index when the label has no usable color.
func resolveColor(label string, index int, colors linguist.ColorMap, logger *log.Logger) color.Color {
	hex, ok := colors[label]
	if !ok {
		return paletteColor(index)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		logger.Warn("Ignoring invalid language color", "language", label, "color", hex)
		return paletteColor(index)
	}
	return c
}

// buildSlices pairs every bucket with its percentage and color.
func buildSlices(in ChartInput, colors linguist.ColorMap, logger *log.Logger) []Slice {
	percents := Percentages(in.Sizes)
	slices := make([]Slice, len(in.Labels))
	for i, label := range in.Labels {
		slices[i] = Slice{
			Label:   label,
			Size:    in.Sizes[i],
			Percent: percents[i],
			Color:   resolveColor(label, i, colors, logger),
		}
	}
	return slices
}
