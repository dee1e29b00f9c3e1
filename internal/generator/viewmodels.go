package generator

import "image/color"

// ChartInput is the bucketed data behind the chart: parallel label and size
// slices, largest first, with an optional trailing "Other" bucket.
type ChartInput struct {
	Labels []string
	Sizes  []int64
}

// Total returns the sum of all sizes.
func (in ChartInput) Total() int64 {
	var total int64
	for _, s := range in.Sizes {
		total += s
	}
	return total
}

// Slice is one wedge of the donut and its legend entry.
type Slice struct {
	Label   string
	Size    int64
	Percent float64
	Color   color.Color
}

// ChartViewModel is everything needed to draw the chart.
type ChartViewModel struct {
	Title   string
	Caption string
	Slices  []Slice
}
