package generator

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Caption is the fixed subtitle under the display name.
const Caption = "Most Used Languages"

// ChartStyle holds the figure geometry. Lengths in points are converted to
// pixels with DPI; fractions are relative to the outer radius.
type ChartStyle struct {
	WidthInches  float64
	HeightInches float64
	DPI          float64

	RingWidth   float64 // fraction of radius
	BorderWidth float64 // points

	TitleSize   float64 // points
	TitleColor  string
	TitleOffset float64 // fraction of radius above center

	CaptionSize   float64 // points
	CaptionColor  string
	CaptionOffset float64 // fraction of radius below center

	LegendSize         float64 // points
	LegendColor        string
	LegendAnchor       float64 // fraction of radius right of center
	LegendLabelSpacing float64 // font sizes between rows
	LegendHandleLength float64 // font sizes
	LegendHandlePad    float64 // font sizes
}

// DefaultChartStyle is a 9x6 inch figure at 200 DPI.
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		WidthInches:  9,
		HeightInches: 6,
		DPI:          200,

		RingWidth:   0.38,
		BorderWidth: 2,

		TitleSize:   14,
		TitleColor:  "#111827",
		TitleOffset: 0.02,

		CaptionSize:   10,
		CaptionColor:  "#6B7280",
		CaptionOffset: 0.10,

		LegendSize:         10,
		LegendColor:        "#111827",
		LegendAnchor:       1.12,
		LegendLabelSpacing: 0.9,
		LegendHandleLength: 1.2,
		LegendHandlePad:    0.6,
	}
}

func (s ChartStyle) px(points float64) float64 {
	return points * s.DPI / 72
}

type chartFonts struct {
	title   font.Face
	caption font.Face
	legend  font.Face
}

func (s ChartStyle) loadFonts() (*chartFonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	medium, err := truetype.Parse(gomedium.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse medium font: %w", err)
	}
	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size, DPI: s.DPI, Hinting: font.HintingFull})
	}
	return &chartFonts{
		title:   face(medium, s.TitleSize),
		caption: face(regular, s.CaptionSize),
		legend:  face(regular, s.LegendSize),
	}, nil
}

// legendLabel is the text next to a legend handle.
func legendLabel(s Slice) string {
	return fmt.Sprintf("%s — %.1f%%", s.Label, s.Percent)
}

// Render draws the donut chart with its centered title and right-hand legend
// on a white canvas.
func Render(vm ChartViewModel, style ChartStyle) (image.Image, error) {
	fonts, err := style.loadFonts()
	if err != nil {
		return nil, err
	}

	height := style.HeightInches * style.DPI
	radius := 0.4 * height
	cx := 0.1*height + radius
	cy := height / 2

	legendEm := style.px(style.LegendSize)
	handleW := style.LegendHandleLength * legendEm
	handleH := 0.7 * legendEm
	legendX := cx + style.LegendAnchor*radius
	textX := legendX + handleW + style.LegendHandlePad*legendEm

	// Widen the canvas when the legend would not fit.
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(fonts.legend)
	var maxText float64
	for _, s := range vm.Slices {
		if w, _ := measure.MeasureString(legendLabel(s)); w > maxText {
			maxText = w
		}
	}
	width := math.Max(style.WidthInches*style.DPI, textX+maxText+0.1*height)

	dc := gg.NewContext(int(math.Ceil(width)), int(height))
	dc.SetColor(color.White)
	dc.Clear()

	drawRing(dc, vm.Slices, cx, cy, radius, style)

	dc.SetFontFace(fonts.title)
	dc.SetHexColor(style.TitleColor)
	dc.DrawStringAnchored(vm.Title, cx, cy-style.TitleOffset*radius, 0.5, 0.5)

	dc.SetFontFace(fonts.caption)
	dc.SetHexColor(style.CaptionColor)
	dc.DrawStringAnchored(vm.Caption, cx, cy+style.CaptionOffset*radius, 0.5, 0.5)

	rowH := (1 + style.LegendLabelSpacing) * legendEm
	top := cy - rowH*float64(len(vm.Slices)-1)/2
	dc.SetFontFace(fonts.legend)
	for i, s := range vm.Slices {
		y := top + float64(i)*rowH
		dc.DrawRectangle(legendX, y-handleH/2, handleW, handleH)
		dc.SetColor(s.Color)
		dc.Fill()

		dc.SetHexColor(style.LegendColor)
		dc.DrawStringAnchored(legendLabel(s), textX, y, 0, 0.5)
	}

	return dc.Image(), nil
}

// drawRing draws one annular wedge per slice, clockwise from 12 o'clock,
// each outlined in white. Slices without bytes are not drawn.
func drawRing(dc *gg.Context, slices []Slice, cx, cy, radius float64, style ChartStyle) {
	var total int64
	for _, s := range slices {
		total += s.Size
	}
	if total <= 0 {
		return
	}

	inner := radius * (1 - style.RingWidth)
	angle := -math.Pi / 2
	for _, s := range slices {
		if s.Size <= 0 {
			continue
		}
		end := angle + 2*math.Pi*float64(s.Size)/float64(total)

		dc.NewSubPath()
		dc.DrawArc(cx, cy, radius, angle, end)
		dc.DrawArc(cx, cy, inner, end, angle)
		dc.ClosePath()
		dc.SetColor(s.Color)
		dc.FillPreserve()

		dc.SetColor(color.White)
		dc.SetLineWidth(style.px(style.BorderWidth))
		dc.SetLineJoin(gg.LineJoinRound)
		dc.Stroke()

		angle = end
	}
}
