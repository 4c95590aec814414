package analysis

import (
	"math"
	"sort"

	"billboard-lyrics/models"
)

// Aggregate computes per-year and per-decade descriptive statistics over
// a cleaned batch. Yearly rows carry mean, population standard deviation
// and median of each metric (3 decimals) plus the year-over-year trend
// of the mean readability score; decade rows carry three means. Both
// outputs are sorted ascending and rebuilt from scratch on every call.
func Aggregate(records []models.SongRecord) ([]models.YearlyStat, []models.DecadeStat) {
	byYear := make(map[int][]models.SongRecord)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	yearly := make([]models.YearlyStat, 0, len(years))
	for i, y := range years {
		group := byYear[y]
		stat := models.YearlyStat{
			Year:             y,
			FleschKincaid:    describe(group, func(r models.SongRecord) float64 { return r.FleschKincaid }),
			LexicalDiversity: describe(group, func(r models.SongRecord) float64 { return r.LexicalDiversity }),
			UniqueWords:      describe(group, func(r models.SongRecord) float64 { return r.UniqueWords }),
			TotalWords:       describe(group, func(r models.SongRecord) float64 { return r.TotalWords }),
			ComplexityTrend:  math.NaN(),
		}
		if i > 0 {
			stat.ComplexityTrend = round(stat.FleschKincaid.Mean-yearly[i-1].FleschKincaid.Mean, 3)
		}
		yearly = append(yearly, stat)
	}

	byDecade := make(map[int][]models.SongRecord)
	for _, r := range records {
		d := r.Year - r.Year%10
		byDecade[d] = append(byDecade[d], r)
	}

	decades := make([]int, 0, len(byDecade))
	for d := range byDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	decade := make([]models.DecadeStat, 0, len(decades))
	for _, d := range decades {
		group := byDecade[d]
		decade = append(decade, models.DecadeStat{
			Decade:               d,
			FleschKincaidMean:    round(mean(collect(group, func(r models.SongRecord) float64 { return r.FleschKincaid })), 3),
			LexicalDiversityMean: round(mean(collect(group, func(r models.SongRecord) float64 { return r.LexicalDiversity })), 3),
			UniqueWordsMean:      round(mean(collect(group, func(r models.SongRecord) float64 { return r.UniqueWords })), 3),
		})
	}

	return yearly, decade
}

// collect gathers one metric across a group, skipping missing values.
func collect(group []models.SongRecord, metric func(models.SongRecord) float64) []float64 {
	vals := make([]float64, 0, len(group))
	for _, r := range group {
		v := metric(r)
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

func describe(group []models.SongRecord, metric func(models.SongRecord) float64) models.MetricStat {
	vals := collect(group, metric)
	return models.MetricStat{
		Mean:   round(mean(vals), 3),
		Std:    round(stddev(vals), 3),
		Median: round(median(vals), 3),
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// stddev is the population standard deviation. A single value has
// deviation 0, not NaN.
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := mean(vals)
	var sq float64
	for _, v := range vals {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(vals)))
}

func median(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
