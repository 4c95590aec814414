package analysis

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"billboard-lyrics/models"
)

// CleanOptions bounds the readability outlier filter. Scores outside the
// closed interval [Min, Max] are discarded as garbage from degenerate text.
type CleanOptions struct {
	OutlierMin float64
	OutlierMax float64
}

// DefaultCleanOptions returns the standard outlier bounds.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{OutlierMin: -50, OutlierMax: 100}
}

// Clean filters a batch of song records: records without resolved lyrics
// are dropped, then records whose readability score is missing or falls
// outside the outlier bounds. Survivors keep their input order.
func Clean(records []models.SongRecord, opts CleanOptions) []models.SongRecord {
	withLyrics := make([]models.SongRecord, 0, len(records))
	for _, r := range records {
		if !r.LyricsFound {
			continue
		}
		withLyrics = append(withLyrics, r)
	}
	log.Printf("[cleaner] removed %d records with missing lyrics", len(records)-len(withLyrics))

	cleaned := make([]models.SongRecord, 0, len(withLyrics))
	for _, r := range withLyrics {
		if math.IsNaN(r.FleschKincaid) ||
			r.FleschKincaid < opts.OutlierMin ||
			r.FleschKincaid > opts.OutlierMax {
			continue
		}
		cleaned = append(cleaned, r)
	}
	log.Printf("[cleaner] removed %d outliers, %d records remaining",
		len(withLyrics)-len(cleaned), len(cleaned))

	return cleaned
}

var yearLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// ParseYear coerces a raw year field to an integer calendar year. The
// value may be a plain integer or a date-like string, in which case the
// year component is taken.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), nil
	}
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized year value %q", s)
}

// ParseMetric coerces a raw numeric metric field. A value that cannot be
// parsed becomes NaN ("missing"); the record is still usable and missing
// fields stay out of downstream aggregates.
func ParseMetric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseBool reads the interchange boolean format ("True"/"False").
// Anything unrecognized, including an empty field, counts as false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true
	}
	return false
}
