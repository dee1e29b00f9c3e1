package generator

import (
	"fmt"
	"image/color"

	"github.com/UnitVectorY-Labs/languagerankings/internal/linguist"
	"github.com/UnitVectorY-Labs/languagerankings/internal/models"
	"github.com/charmbracelet/log"
)

// Options configures chart generation.
type Options struct {
	TopK   int
	Output string
	Style  ChartStyle
}

// Run resolves language colors from the crawled Linguist document, buckets
// the aggregate and writes the chart to opts.Output.
func Run(result *models.CrawlResult, opts Options, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Style.DPI == 0 {
		opts.Style = DefaultChartStyle()
	}

	colors, warnings := linguist.ParseColors(result.LinguistYAML)
	for _, w := range warnings {
		logger.Warn("Suspicious line in Linguist metadata", "line", w.Line, "problem", w.Message)
	}
	logger.Info("Resolved language colors", "languages", len(colors))

	vm := BuildViewModel(result, colors, opts.TopK, logger)
	for _, s := range vm.Slices {
		logger.Debug("Bucket", "language", s.Label, "bytes", s.Size, "percent", fmt.Sprintf("%.1f", s.Percent))
	}

	img, err := Render(vm, opts.Style)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	img = CropToContent(img, color.White, int(0.1*opts.Style.DPI))
	if err := SavePNG(img, opts.Output, opts.Style.DPI); err != nil {
		return err
	}

	logger.Info("Chart written", "path", opts.Output, "buckets", len(vm.Slices))
	return nil
}

// BuildViewModel buckets the aggregate into at most topK languages plus
// "Other" and titles the chart with the user's display name.
func BuildViewModel(result *models.CrawlResult, colors linguist.ColorMap, topK int, logger *log.Logger) ChartViewModel {
	if logger == nil {
		logger = log.Default()
	}
	in := TopLanguages(result.Aggregate, topK)
	return ChartViewModel{
		Title:   result.Profile.DisplayName(result.User),
		Caption: Caption,
		Slices:  buildSlices(in, colors, logger),
	}
}
