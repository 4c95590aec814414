package analysis

import (
	"math"

	"billboard-lyrics/models"
)

// Bin is one step of an ordered binning table: values in
// (previous upper, Upper] get Label. Boundary values belong to the
// lower bin.
type Bin struct {
	Upper float64
	Label string
}

// DefaultComplexityBins buckets readability scores. Lower scores mean
// denser, harder text.
func DefaultComplexityBins() []Bin {
	return []Bin{
		{Upper: 30, Label: "Very Complex"},
		{Upper: 60, Label: "Complex"},
		{Upper: 80, Label: "Moderate"},
		{Upper: math.Inf(1), Label: "Simple"},
	}
}

// DefaultRankBins buckets chart positions 1-100. Positions outside that
// range get no label.
func DefaultRankBins() []Bin {
	return []Bin{
		{Upper: 10, Label: "Top 10"},
		{Upper: 25, Label: "Top 25"},
		{Upper: 50, Label: "Top 50"},
		{Upper: 100, Label: "Top 100"},
	}
}

// cut assigns v to the first bin whose upper bound admits it. Values at
// or below lower, above the last bound, or NaN yield the empty label.
func cut(v, lower float64, bins []Bin) string {
	if math.IsNaN(v) || v <= lower {
		return ""
	}
	for _, b := range bins {
		if v <= b.Upper {
			return b.Label
		}
	}
	return ""
}

// Categorize assigns complexity and rank categories in place using the
// default bin tables and returns the same slice.
func Categorize(records []models.SongRecord) []models.SongRecord {
	return CategorizeWith(records, DefaultComplexityBins(), DefaultRankBins())
}

// CategorizeWith is Categorize with explicit bin tables. An empty
// category label means the value fell outside every bin; callers must
// keep such records out of category-based aggregates.
func CategorizeWith(records []models.SongRecord, complexity, rank []Bin) []models.SongRecord {
	for i := range records {
		records[i].ComplexityCategory = cut(records[i].FleschKincaid, math.Inf(-1), complexity)
		records[i].RankCategory = cut(float64(records[i].Rank), 0, rank)
	}
	return records
}
