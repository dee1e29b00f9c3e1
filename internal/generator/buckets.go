package generator

import (
	"sort"

	"github.com/UnitVectorY-Labs/languagerankings/internal/models"
)

const (
	// DefaultTopK is the number of languages shown before the rest are
	// folded into OtherLabel.
	DefaultTopK = 8
	OtherLabel  = "Other"
)

// TopLanguages orders the aggregate by bytes, largest first, and keeps the
// topK entries. Remaining entries are summed into a trailing "Other" bucket.
// Equal sizes keep the aggregate's first-seen order.
func TopLanguages(agg *models.LanguageAggregate, topK int) ChartInput {
	if topK <= 0 {
		topK = DefaultTopK
	}

	var items []models.LanguageCount
	if agg != nil {
		items = agg.Entries()
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Bytes > items[j].Bytes
	})

	var in ChartInput
	for i, item := range items {
		if i == topK {
			break
		}
		in.Labels = append(in.Labels, item.Language)
		in.Sizes = append(in.Sizes, item.Bytes)
	}

	if len(items) > topK {
		var rest int64
		for _, item := range items[topK:] {
			rest += item.Bytes
		}
		in.Labels = append(in.Labels, OtherLabel)
		in.Sizes = append(in.Sizes, rest)
	}
	return in
}

// Percentages returns each size as a percentage of the total. A zero total
// is treated as 1 so every percentage is 0.
func Percentages(sizes []int64) []float64 {
	var sum int64
	for _, s := range sizes {
		sum += s
	}
	total := float64(sum)
	if sum == 0 {
		total = 1.0
	}

	out := make([]float64, len(sizes))
	for i, s := range sizes {
		out[i] = float64(s) / total * 100.0
	}
	return out
}
