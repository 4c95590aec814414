// Package pipeline sequences the ETL stages: extract lyrics and
// metrics, transform into cleaned and aggregated tables, load into the
// SQLite sink, validate the batch against the quality gate, and write a
// run summary. A generic scheduler is expected to invoke stages in
// order and retry a failed run wholesale; stages themselves never retry.
package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"billboard-lyrics/analysis"
	"billboard-lyrics/cache"
	"billboard-lyrics/chart"
	"billboard-lyrics/config"
	"billboard-lyrics/csvio"
	"billboard-lyrics/lyrics"
	"billboard-lyrics/models"
	"billboard-lyrics/store"
)

const extractPrefix = "billboard_hot_100_complexity"

type Pipeline struct {
	cfg   *config.Config
	runID string
}

func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		runID: uuid.NewString()[:8],
	}
}

// Extract fetches chart listings and lyrics for the configured year
// range, computes per-song metrics and writes the raw interchange file.
func (p *Pipeline) Extract() error {
	if err := os.MkdirAll(p.cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("data dir: %w", err)
	}

	var provider chart.Provider
	if p.cfg.ChartFile != "" {
		provider = chart.NewFileProvider(p.cfg.ChartFile)
	} else {
		log.Println("[pipeline] no chart file configured, using built-in chart")
		provider = chart.StaticProvider{}
	}

	lyricsCache, err := cache.Open(filepath.Join(p.cfg.DataDir, "lyrics_cache.db"))
	if err != nil {
		return fmt.Errorf("open lyrics cache: %w", err)
	}
	defer lyricsCache.Close()

	fetcher := lyrics.NewFetcher(p.cfg.GeniusToken, lyricsCache)

	var records []models.SongRecord
	for year := p.cfg.StartYear; year <= p.cfg.EndYear; year++ {
		entries, err := provider.Entries(year)
		if err != nil {
			return fmt.Errorf("chart for %d: %w", year, err)
		}
		log.Printf("[pipeline] %s: extracting %d songs for %d", p.runID, len(entries), year)
		records = append(records, fetcher.FetchAll(entries, p.cfg.Workers)...)
	}

	out := filepath.Join(p.cfg.DataDir,
		fmt.Sprintf("%s_%d_%d.csv", extractPrefix, p.cfg.StartYear, p.cfg.EndYear))
	if err := csvio.WriteSongs(out, records); err != nil {
		return err
	}
	log.Printf("[pipeline] %s: extracted %d records to %s", p.runID, len(records), out)
	return nil
}

// Transform reads the most recent extract, runs the analysis engine and
// writes the transformed, yearly and decade tables plus the insight
// report to stdout.
func (p *Pipeline) Transform() error {
	input, err := p.latestExtract()
	if err != nil {
		return err
	}
	log.Printf("[pipeline] %s: transforming %s", p.runID, input)

	records, err := csvio.ReadSongs(input)
	if err != nil {
		return err
	}
	log.Printf("[pipeline] %s: loaded %d records", p.runID, len(records))

	cleaned := analysis.Clean(records, analysis.CleanOptions{
		OutlierMin: p.cfg.OutlierMin,
		OutlierMax: p.cfg.OutlierMax,
	})
	cleaned = analysis.Categorize(cleaned)
	yearly, decades := analysis.Aggregate(cleaned)

	base := strings.TrimSuffix(input, ".csv")
	if err := csvio.WriteSongs(base+"_transformed.csv", cleaned); err != nil {
		return err
	}
	if err := csvio.WriteYearlyStats(base+"_yearly_stats.csv", yearly); err != nil {
		return err
	}
	if err := csvio.WriteDecadeStats(base+"_decade_stats.csv", decades); err != nil {
		return err
	}
	log.Printf("[pipeline] %s: wrote transformed tables for %d cleaned records", p.runID, len(cleaned))

	summary, err := analysis.Summarize(cleaned, analysis.SummarizeOptions{
		BoundaryYear: p.cfg.BoundaryYear,
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	analysis.WriteReport(os.Stdout, summary)
	return nil
}

// Load pushes the transformed tables into the SQLite sink, replacing
// previous contents, then runs verification queries.
func (p *Pipeline) Load() error {
	base, err := p.latestTransformedBase()
	if err != nil {
		return err
	}

	records, err := csvio.ReadSongs(base + "_transformed.csv")
	if err != nil {
		return err
	}
	yearly, err := csvio.ReadYearlyStats(base + "_yearly_stats.csv")
	if err != nil {
		return err
	}
	decades, err := csvio.ReadDecadeStats(base + "_decade_stats.csv")
	if err != nil {
		return err
	}

	sink, err := store.Open(p.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	defer sink.Close()

	if err := sink.CreateTables(); err != nil {
		return err
	}
	if err := sink.ReplaceSongs(records); err != nil {
		return err
	}
	if err := sink.ReplaceYearlyStats(yearly); err != nil {
		return err
	}
	if err := sink.ReplaceDecadeStats(decades); err != nil {
		return err
	}
	return sink.Verify()
}

// Validate applies the quality gate to the most recent extract: the
// batch must carry at least MinRecords rows and no more than
// MaxMissingPercent of them may lack lyrics. A batch that cleans down
// to nothing also fails.
func (p *Pipeline) Validate() error {
	input, err := p.latestExtract()
	if err != nil {
		return err
	}
	records, err := csvio.ReadSongs(input)
	if err != nil {
		return err
	}
	return p.checkQuality(records)
}

func (p *Pipeline) checkQuality(records []models.SongRecord) error {
	total := len(records)
	if total < p.cfg.MinRecords {
		return fmt.Errorf("quality gate: only %d records, need at least %d", total, p.cfg.MinRecords)
	}

	missing := 0
	for _, r := range records {
		if !r.LyricsFound {
			missing++
		}
	}
	missingPct := float64(missing) / float64(total) * 100
	if missingPct > p.cfg.MaxMissingPercent {
		return fmt.Errorf("quality gate: %.1f%% of records missing lyrics, limit is %.1f%%",
			missingPct, p.cfg.MaxMissingPercent)
	}

	cleaned := analysis.Clean(records, analysis.CleanOptions{
		OutlierMin: p.cfg.OutlierMin,
		OutlierMax: p.cfg.OutlierMax,
	})
	if len(cleaned) == 0 {
		return fmt.Errorf("quality gate: no records survive cleaning")
	}

	log.Printf("[pipeline] %s: quality gate passed (%d records, %.1f%% missing lyrics)",
		p.runID, total, missingPct)
	return nil
}

// Report writes a run summary file next to the data.
func (p *Pipeline) Report() error {
	base, err := p.latestTransformedBase()
	if err != nil {
		return err
	}
	records, err := csvio.ReadSongs(base + "_transformed.csv")
	if err != nil {
		return err
	}
	summary, err := analysis.Summarize(records, analysis.SummarizeOptions{
		BoundaryYear: p.cfg.BoundaryYear,
	})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	path := filepath.Join(p.cfg.DataDir, fmt.Sprintf("pipeline_summary_%s.txt", p.runID))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "Pipeline run %s at %s\n\n", p.runID, time.Now().Format("2006-01-02 15:04:05"))
	analysis.WriteReport(f, summary)

	log.Printf("[pipeline] %s: summary report written to %s", p.runID, path)
	return nil
}

// Run executes every stage in order; the first failing stage aborts the
// run. Files written by earlier stages stay on disk for inspection.
func (p *Pipeline) Run() error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"extract", p.Extract},
		{"transform", p.Transform},
		{"load", p.Load},
		{"validate", p.Validate},
		{"report", p.Report},
	}
	for _, stage := range stages {
		log.Printf("[pipeline] %s: stage %s starting", p.runID, stage.name)
		if err := stage.fn(); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
		log.Printf("[pipeline] %s: stage %s done", p.runID, stage.name)
	}
	return nil
}

// latestExtract finds the most recently modified raw extract file,
// skipping derived tables.
func (p *Pipeline) latestExtract() (string, error) {
	return p.latest(func(name string) bool {
		return strings.HasPrefix(name, extractPrefix) &&
			strings.HasSuffix(name, ".csv") &&
			!strings.Contains(name, "_transformed") &&
			!strings.Contains(name, "_stats")
	})
}

// latestTransformedBase finds the most recent transformed table and
// returns its path without the "_transformed.csv" suffix.
func (p *Pipeline) latestTransformedBase() (string, error) {
	path, err := p.latest(func(name string) bool {
		return strings.HasSuffix(name, "_transformed.csv")
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(path, "_transformed.csv"), nil
}

func (p *Pipeline) latest(match func(string) bool) (string, error) {
	entries, err := os.ReadDir(p.cfg.DataDir)
	if err != nil {
		return "", fmt.Errorf("read data dir: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var found []candidate
	for _, e := range entries {
		if e.IsDir() || !match(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path: filepath.Join(p.cfg.DataDir, e.Name()),
			mod:  info.ModTime(),
		})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no matching data files in %s, run the earlier stages first", p.cfg.DataDir)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod.After(found[j].mod) })
	return found[0].path, nil
}
