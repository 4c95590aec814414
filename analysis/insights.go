package analysis

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"billboard-lyrics/models"
)

// ErrNoData is returned when a summary is requested over zero records.
var ErrNoData = errors.New("analysis: no records to summarize")

// SummarizeOptions configures the recent-vs-older trend split. Records
// from BoundaryYear onward count as "recent".
type SummarizeOptions struct {
	BoundaryYear int
}

// DefaultSummarizeOptions splits at 2020.
func DefaultSummarizeOptions() SummarizeOptions {
	return SummarizeOptions{BoundaryYear: 2020}
}

// Summarize derives headline findings from a cleaned, categorized batch.
// Extremes break ties by first occurrence in input order. An empty batch
// yields a zero summary and ErrNoData; callers must check
// TotalSongsAnalyzed before reading extremes.
func Summarize(records []models.SongRecord, opts SummarizeOptions) (models.InsightSummary, error) {
	if len(records) == 0 {
		return models.InsightSummary{}, ErrNoData
	}

	s := models.InsightSummary{
		TotalSongsAnalyzed: len(records),
		MinYear:            records[0].Year,
		MaxYear:            records[0].Year,
		RankComplexity:     make(map[string]float64),
		YearlyComplexity:   make(map[int]float64),
	}
	for _, r := range records {
		if r.Year < s.MinYear {
			s.MinYear = r.Year
		}
		if r.Year > s.MaxYear {
			s.MaxYear = r.Year
		}
	}

	var recent, older []float64
	for _, r := range records {
		if math.IsNaN(r.FleschKincaid) {
			continue
		}
		if r.Year >= opts.BoundaryYear {
			recent = append(recent, r.FleschKincaid)
		} else {
			older = append(older, r.FleschKincaid)
		}
	}
	if len(recent) > 0 && len(older) > 0 {
		recentAvg := mean(recent)
		olderAvg := mean(older)
		change := recentAvg - olderAvg
		direction := "More Complex"
		if change > 0 {
			direction = "Simpler"
		}
		s.Trend = &models.ComplexityTrend{
			RecentAverage: round(recentAvg, 2),
			OlderAverage:  round(olderAvg, 2),
			Change:        round(change, 2),
			Direction:     direction,
		}
	}

	s.MostComplexSong = extreme(records, func(r models.SongRecord) float64 { return r.FleschKincaid }, false)
	s.LeastComplexSong = extreme(records, func(r models.SongRecord) float64 { return r.FleschKincaid }, true)
	s.HighestDiversity = extreme(records, func(r models.SongRecord) float64 { return r.LexicalDiversity }, true)
	s.MostUniqueWords = extreme(records, func(r models.SongRecord) float64 { return r.UniqueWords }, true)

	rankSums := make(map[string]float64)
	rankCounts := make(map[string]int)
	yearSums := make(map[int]float64)
	yearCounts := make(map[int]int)
	for _, r := range records {
		if math.IsNaN(r.FleschKincaid) {
			continue
		}
		if r.RankCategory != "" {
			rankSums[r.RankCategory] += r.FleschKincaid
			rankCounts[r.RankCategory]++
		}
		yearSums[r.Year] += r.FleschKincaid
		yearCounts[r.Year]++
	}
	for cat, sum := range rankSums {
		s.RankComplexity[cat] = round(sum/float64(rankCounts[cat]), 2)
	}
	for y, sum := range yearSums {
		s.YearlyComplexity[y] = round(sum/float64(yearCounts[y]), 2)
	}

	return s, nil
}

// extreme picks the record with the largest (or smallest) value of one
// metric, keeping the first record on ties. Missing values never win.
func extreme(records []models.SongRecord, metric func(models.SongRecord) float64, largest bool) models.SongRef {
	best := models.SongRef{Value: math.NaN()}
	for _, r := range records {
		v := metric(r)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best.Value) || (largest && v > best.Value) || (!largest && v < best.Value) {
			best = models.SongRef{Title: r.Title, Artist: r.Artist, Value: v}
		}
	}
	return best
}

// WriteReport prints a formatted insight summary, one finding per line.
func WriteReport(w io.Writer, s models.InsightSummary) {
	line := "============================================================"
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "LYRICAL COMPLEXITY ANALYSIS INSIGHTS")
	fmt.Fprintln(w, line)

	fmt.Fprintln(w, "\nOVERVIEW:")
	fmt.Fprintf(w, "   Total songs analyzed: %d\n", s.TotalSongsAnalyzed)
	fmt.Fprintf(w, "   Years covered: %d-%d\n", s.MinYear, s.MaxYear)

	if s.Trend != nil {
		fmt.Fprintln(w, "\nCOMPLEXITY TREND:")
		fmt.Fprintf(w, "   Recent average: %.2f\n", s.Trend.RecentAverage)
		fmt.Fprintf(w, "   Older average: %.2f\n", s.Trend.OlderAverage)
		fmt.Fprintf(w, "   Change: %.2f (%s)\n", s.Trend.Change, s.Trend.Direction)
	}

	fmt.Fprintln(w, "\nTOP METRICS:")
	fmt.Fprintf(w, "   Most complex song: %s\n", s.MostComplexSong.Title)
	fmt.Fprintf(w, "   Least complex song: %s\n", s.LeastComplexSong.Title)
	fmt.Fprintf(w, "   Highest lexical diversity: %s\n", s.HighestDiversity.Title)
	fmt.Fprintf(w, "   Most unique words: %s\n", s.MostUniqueWords.Title)

	fmt.Fprintln(w, "\nCOMPLEXITY BY RANK:")
	for _, b := range DefaultRankBins() {
		if v, ok := s.RankComplexity[b.Label]; ok {
			fmt.Fprintf(w, "   %s: %.2f\n", b.Label, v)
		}
	}

	fmt.Fprintln(w, "\nYEARLY COMPLEXITY TREND:")
	years := make([]int, 0, len(s.YearlyComplexity))
	for y := range s.YearlyComplexity {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		fmt.Fprintf(w, "   %d: %.2f\n", y, s.YearlyComplexity[y])
	}

	fmt.Fprintln(w, line)
}
