package csvio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billboard-lyrics/models"
)

func TestSongsRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")

	records := []models.SongRecord{
		{
			Year: 2020, Rank: 1, Title: "Blinding Lights", Artist: "The Weeknd",
			LyricsFound: true, UniqueWords: 90, TotalWords: 250,
			AvgSentenceLength: 5.2, FleschKincaid: 61.75, LexicalDiversity: 0.36,
			ComplexityCategory: "Moderate", RankCategory: "Top 10",
		},
		{Year: 2020, Rank: 2, Title: "Missing", Artist: "Nobody", LyricsFound: false},
	}
	if err := WriteSongs(path, records); err != nil {
		t.Fatalf("WriteSongs: %v", err)
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	r := got[0]
	if r.Year != 2020 || r.Rank != 1 || r.Title != "Blinding Lights" {
		t.Fatalf("identity fields mismatch: %+v", r)
	}
	if !r.LyricsFound || r.FleschKincaid != 61.75 || r.LexicalDiversity != 0.36 {
		t.Fatalf("metric fields mismatch: %+v", r)
	}
	if r.ComplexityCategory != "Moderate" || r.RankCategory != "Top 10" {
		t.Fatalf("category fields mismatch: %+v", r)
	}
	if got[1].LyricsFound {
		t.Fatal("second record must read back as not found")
	}
}

func TestSongsBooleanFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")
	records := []models.SongRecord{
		{Year: 2020, Rank: 1, Title: "A", Artist: "B", LyricsFound: true},
		{Year: 2020, Rank: 2, Title: "C", Artist: "D", LyricsFound: false},
	}
	if err := WriteSongs(path, records); err != nil {
		t.Fatalf("WriteSongs: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, ",True,") || !strings.Contains(text, ",False,") {
		t.Fatalf("booleans must serialize as True/False:\n%s", text)
	}
}

func TestReadSongsMalformedNumeric(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")
	data := "year,rank,title,artist,lyrics_found,unique_words,total_words,avg_sentence_length,flesch_kincaid_score,lexical_diversity,complexity_category,rank_category\n" +
		"2020,1,Song,Artist,True,not-a-number,100,5.0,60.0,0.5,,\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("record with a malformed numeric must be retained, got %d records", len(got))
	}
	if !math.IsNaN(got[0].UniqueWords) {
		t.Fatalf("malformed numeric must become missing, got %v", got[0].UniqueWords)
	}
	if got[0].TotalWords != 100 {
		t.Fatalf("well-formed fields must survive, got %v", got[0].TotalWords)
	}
}

func TestReadSongsDateLikeYear(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "songs.csv")
	data := "year,rank,title,artist,lyrics_found,unique_words,total_words,avg_sentence_length,flesch_kincaid_score,lexical_diversity,complexity_category,rank_category\n" +
		"2019-01-01,3,Song,Artist,True,10,20,2.0,50.0,0.5,,\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := ReadSongs(path)
	if err != nil {
		t.Fatalf("ReadSongs: %v", err)
	}
	if len(got) != 1 || got[0].Year != 2019 {
		t.Fatalf("date-like year must normalize to 2019: %+v", got)
	}
}

func TestYearlyStatsRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yearly.csv")

	stats := []models.YearlyStat{
		{
			Year:             2019,
			FleschKincaid:    models.MetricStat{Mean: 50, Std: 5, Median: 49},
			LexicalDiversity: models.MetricStat{Mean: 0.5, Std: 0.1, Median: 0.52},
			UniqueWords:      models.MetricStat{Mean: 100, Std: 20, Median: 95},
			TotalWords:       models.MetricStat{Mean: 300, Std: 50, Median: 290},
			ComplexityTrend:  math.NaN(),
		},
		{
			Year:            2020,
			FleschKincaid:   models.MetricStat{Mean: 55, Std: 4, Median: 56},
			ComplexityTrend: 5,
		},
	}
	if err := WriteYearlyStats(path, stats); err != nil {
		t.Fatalf("WriteYearlyStats: %v", err)
	}

	got, err := ReadYearlyStats(path)
	if err != nil {
		t.Fatalf("ReadYearlyStats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if !math.IsNaN(got[0].ComplexityTrend) {
		t.Fatalf("first-year trend must read back as missing, got %v", got[0].ComplexityTrend)
	}
	if got[1].ComplexityTrend != 5 || got[1].FleschKincaid.Mean != 55 {
		t.Fatalf("second row mismatch: %+v", got[1])
	}
	if got[0].FleschKincaid != stats[0].FleschKincaid {
		t.Fatalf("stat triple mismatch: %+v", got[0].FleschKincaid)
	}
}

func TestDecadeStatsRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decades.csv")

	stats := []models.DecadeStat{
		{Decade: 2010, FleschKincaidMean: 52.5, LexicalDiversityMean: 0.48, UniqueWordsMean: 120},
		{Decade: 2020, FleschKincaidMean: 58.1, LexicalDiversityMean: 0.44, UniqueWordsMean: 110},
	}
	if err := WriteDecadeStats(path, stats); err != nil {
		t.Fatalf("WriteDecadeStats: %v", err)
	}

	got, err := ReadDecadeStats(path)
	if err != nil {
		t.Fatalf("ReadDecadeStats: %v", err)
	}
	if len(got) != 2 || got[0] != stats[0] || got[1] != stats[1] {
		t.Fatalf("roundtrip mismatch:\n got %+v\nwant %+v", got, stats)
	}
}
