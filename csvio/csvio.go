// Package csvio reads and writes the pipeline's tabular interchange
// files. Booleans are serialized as True/False and missing numerics as
// empty cells, matching what downstream tools expect.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"billboard-lyrics/analysis"
	"billboard-lyrics/models"
)

var songHeader = []string{
	"year", "rank", "title", "artist", "lyrics_found",
	"unique_words", "total_words", "avg_sentence_length",
	"flesch_kincaid_score", "lexical_diversity",
	"complexity_category", "rank_category",
}

var yearlyHeader = []string{
	"year",
	"flesch_kincaid_score_mean", "flesch_kincaid_score_std", "flesch_kincaid_score_median",
	"lexical_diversity_mean", "lexical_diversity_std", "lexical_diversity_median",
	"unique_words_mean", "unique_words_std", "unique_words_median",
	"total_words_mean", "total_words_std", "total_words_median",
	"complexity_trend",
}

var decadeHeader = []string{
	"decade", "flesch_kincaid_score_mean", "lexical_diversity_mean", "unique_words_mean",
}

// WriteSongs writes song records with the standard interchange header.
func WriteSongs(path string, records []models.SongRecord) error {
	return writeCSV(path, songHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Rank),
			r.Title,
			r.Artist,
			formatBool(r.LyricsFound),
			formatMetric(r.UniqueWords),
			formatMetric(r.TotalWords),
			formatMetric(r.AvgSentenceLength),
			formatMetric(r.FleschKincaid),
			formatMetric(r.LexicalDiversity),
			r.ComplexityCategory,
			r.RankCategory,
		}
	})
}

// ReadSongs parses an interchange file back into song records. Numeric
// fields that fail to parse come back as NaN ("missing"); rows whose
// year cannot be normalized at all are skipped with a warning.
func ReadSongs(path string) ([]models.SongRecord, error) {
	rows, col, err := readCSV(path, []string{"year", "rank", "title", "artist", "lyrics_found"})
	if err != nil {
		return nil, err
	}

	records := make([]models.SongRecord, 0, len(rows))
	for _, row := range rows {
		year, err := analysis.ParseYear(cell(row, col, "year"))
		if err != nil {
			log.Printf("[csvio] skipping row with bad year: %v", err)
			continue
		}
		rank, _ := strconv.Atoi(strings.TrimSpace(cell(row, col, "rank")))
		records = append(records, models.SongRecord{
			Year:               year,
			Rank:               rank,
			Title:              cell(row, col, "title"),
			Artist:             cell(row, col, "artist"),
			LyricsFound:        analysis.ParseBool(cell(row, col, "lyrics_found")),
			UniqueWords:        analysis.ParseMetric(cell(row, col, "unique_words")),
			TotalWords:         analysis.ParseMetric(cell(row, col, "total_words")),
			AvgSentenceLength:  analysis.ParseMetric(cell(row, col, "avg_sentence_length")),
			FleschKincaid:      analysis.ParseMetric(cell(row, col, "flesch_kincaid_score")),
			LexicalDiversity:   analysis.ParseMetric(cell(row, col, "lexical_diversity")),
			ComplexityCategory: cell(row, col, "complexity_category"),
			RankCategory:       cell(row, col, "rank_category"),
		})
	}
	return records, nil
}

// WriteYearlyStats writes the per-year statistics table. The first
// year's trend cell is empty (undefined).
func WriteYearlyStats(path string, stats []models.YearlyStat) error {
	return writeCSV(path, yearlyHeader, len(stats), func(i int) []string {
		s := stats[i]
		return []string{
			strconv.Itoa(s.Year),
			formatMetric(s.FleschKincaid.Mean), formatMetric(s.FleschKincaid.Std), formatMetric(s.FleschKincaid.Median),
			formatMetric(s.LexicalDiversity.Mean), formatMetric(s.LexicalDiversity.Std), formatMetric(s.LexicalDiversity.Median),
			formatMetric(s.UniqueWords.Mean), formatMetric(s.UniqueWords.Std), formatMetric(s.UniqueWords.Median),
			formatMetric(s.TotalWords.Mean), formatMetric(s.TotalWords.Std), formatMetric(s.TotalWords.Median),
			formatMetric(s.ComplexityTrend),
		}
	})
}

// ReadYearlyStats parses a per-year statistics table.
func ReadYearlyStats(path string) ([]models.YearlyStat, error) {
	rows, col, err := readCSV(path, yearlyHeader[:1])
	if err != nil {
		return nil, err
	}

	stats := make([]models.YearlyStat, 0, len(rows))
	for _, row := range rows {
		year, err := analysis.ParseYear(cell(row, col, "year"))
		if err != nil {
			log.Printf("[csvio] skipping stats row with bad year: %v", err)
			continue
		}
		stats = append(stats, models.YearlyStat{
			Year:             year,
			FleschKincaid:    readStat(row, col, "flesch_kincaid_score"),
			LexicalDiversity: readStat(row, col, "lexical_diversity"),
			UniqueWords:      readStat(row, col, "unique_words"),
			TotalWords:       readStat(row, col, "total_words"),
			ComplexityTrend:  analysis.ParseMetric(cell(row, col, "complexity_trend")),
		})
	}
	return stats, nil
}

// WriteDecadeStats writes the per-decade statistics table.
func WriteDecadeStats(path string, stats []models.DecadeStat) error {
	return writeCSV(path, decadeHeader, len(stats), func(i int) []string {
		s := stats[i]
		return []string{
			strconv.Itoa(s.Decade),
			formatMetric(s.FleschKincaidMean),
			formatMetric(s.LexicalDiversityMean),
			formatMetric(s.UniqueWordsMean),
		}
	})
}

// ReadDecadeStats parses a per-decade statistics table.
func ReadDecadeStats(path string) ([]models.DecadeStat, error) {
	rows, col, err := readCSV(path, decadeHeader)
	if err != nil {
		return nil, err
	}

	stats := make([]models.DecadeStat, 0, len(rows))
	for _, row := range rows {
		decade, err := strconv.Atoi(strings.TrimSpace(cell(row, col, "decade")))
		if err != nil {
			log.Printf("[csvio] skipping stats row with bad decade: %v", err)
			continue
		}
		stats = append(stats, models.DecadeStat{
			Decade:               decade,
			FleschKincaidMean:    analysis.ParseMetric(cell(row, col, "flesch_kincaid_score_mean")),
			LexicalDiversityMean: analysis.ParseMetric(cell(row, col, "lexical_diversity_mean")),
			UniqueWordsMean:      analysis.ParseMetric(cell(row, col, "unique_words_mean")),
		})
	}
	return stats, nil
}

func readStat(row []string, col map[string]int, metric string) models.MetricStat {
	return models.MetricStat{
		Mean:   analysis.ParseMetric(cell(row, col, metric+"_mean")),
		Std:    analysis.ParseMetric(cell(row, col, metric+"_std")),
		Median: analysis.ParseMetric(cell(row, col, metric+"_median")),
	}
}

func writeCSV(path string, header []string, rows int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readCSV loads all data rows and a column-name index, verifying that
// the required columns exist.
func readCSV(path string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, col, nil
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
