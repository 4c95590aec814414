// Package chart supplies year-end chart listings to the extraction
// stage. The pipeline only needs (rank, title, artist) per year; where
// the rows come from is the provider's business.
package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"billboard-lyrics/models"
)

// Provider returns the chart entries for one year.
type Provider interface {
	Entries(year int) ([]models.ChartEntry, error)
}

// FileProvider reads chart rows from a CSV file with a
// year,rank,title,artist header.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

func (p *FileProvider) Entries(year int) ([]models.ChartEntry, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open chart file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read chart header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, name := range []string{"year", "rank", "title", "artist"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("chart file missing column %q", name)
		}
	}

	var entries []models.ChartEntry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chart row: %w", err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(row[col["year"]]))
		if err != nil || y != year {
			continue
		}
		rank, err := strconv.Atoi(strings.TrimSpace(row[col["rank"]]))
		if err != nil {
			log.Printf("[chart] skipping row with bad rank %q", row[col["rank"]])
			continue
		}
		entries = append(entries, models.ChartEntry{
			Year:   y,
			Rank:   rank,
			Title:  strings.TrimSpace(row[col["title"]]),
			Artist: strings.TrimSpace(row[col["artist"]]),
		})
	}
	return entries, nil
}

// StaticProvider serves a built-in demonstration Hot-100 list for any
// year: ten well-known songs up top, generated filler below. Useful for
// running the pipeline without a chart subscription.
type StaticProvider struct{}

var staticTop10 = []struct {
	title  string
	artist string
}{
	{"Blinding Lights", "The Weeknd"},
	{"Dance Monkey", "Tones and I"},
	{"The Box", "Roddy Ricch"},
	{"Don't Start Now", "Dua Lipa"},
	{"Someone You Loved", "Lewis Capaldi"},
	{"Circles", "Post Malone"},
	{"Sunflower", "Post Malone & Swae Lee"},
	{"Shallow", "Lady Gaga & Bradley Cooper"},
	{"Old Town Road", "Lil Nas X"},
	{"Bad Guy", "Billie Eilish"},
}

func (StaticProvider) Entries(year int) ([]models.ChartEntry, error) {
	entries := make([]models.ChartEntry, 0, 100)
	for i, s := range staticTop10 {
		entries = append(entries, models.ChartEntry{
			Year:   year,
			Rank:   i + 1,
			Title:  s.title,
			Artist: s.artist,
		})
	}
	for rank := len(staticTop10) + 1; rank <= 100; rank++ {
		entries = append(entries, models.ChartEntry{
			Year:   year,
			Rank:   rank,
			Title:  fmt.Sprintf("Sample Song %d", rank),
			Artist: fmt.Sprintf("Sample Artist %d", rank),
		})
	}
	return entries, nil
}
