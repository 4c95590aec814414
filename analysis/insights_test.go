package analysis

import (
	"strings"
	"testing"

	"billboard-lyrics/models"
)

func TestSummarizeEmptyBatch(t *testing.T) {
	s, err := Summarize(nil, DefaultSummarizeOptions())
	if err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if s.TotalSongsAnalyzed != 0 {
		t.Fatalf("empty summary must report zero songs, got %d", s.TotalSongsAnalyzed)
	}
}

func TestSummarizeExtremes(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2018, Rank: 1, Title: "Dense", FleschKincaid: 10, LexicalDiversity: 0.9, UniqueWords: 120},
		{Year: 2019, Rank: 2, Title: "Breezy", FleschKincaid: 95, LexicalDiversity: 0.3, UniqueWords: 40},
		{Year: 2020, Rank: 3, Title: "Wordy", FleschKincaid: 50, LexicalDiversity: 0.5, UniqueWords: 400},
	}
	s, err := Summarize(records, DefaultSummarizeOptions())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.MostComplexSong.Title != "Dense" {
		t.Fatalf("most complex = minimum score, got %q", s.MostComplexSong.Title)
	}
	if s.LeastComplexSong.Title != "Breezy" {
		t.Fatalf("least complex = maximum score, got %q", s.LeastComplexSong.Title)
	}
	if s.HighestDiversity.Title != "Dense" {
		t.Fatalf("highest diversity, got %q", s.HighestDiversity.Title)
	}
	if s.MostUniqueWords.Title != "Wordy" {
		t.Fatalf("most unique words, got %q", s.MostUniqueWords.Title)
	}
	if s.MinYear != 2018 || s.MaxYear != 2020 {
		t.Fatalf("year range: got %d-%d", s.MinYear, s.MaxYear)
	}
}

func TestSummarizeTieBreaksFirstOccurrence(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2020, Title: "First", FleschKincaid: 20},
		{Year: 2020, Title: "Second", FleschKincaid: 20},
	}
	s, err := Summarize(records, DefaultSummarizeOptions())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.MostComplexSong.Title != "First" {
		t.Fatalf("ties go to the first record, got %q", s.MostComplexSong.Title)
	}
	if s.LeastComplexSong.Title != "First" {
		t.Fatalf("ties go to the first record, got %q", s.LeastComplexSong.Title)
	}
}

func TestSummarizeTrendSplit(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2018, FleschKincaid: 40},
		{Year: 2019, FleschKincaid: 50},
		{Year: 2020, FleschKincaid: 60},
		{Year: 2021, FleschKincaid: 70},
	}
	s, err := Summarize(records, SummarizeOptions{BoundaryYear: 2020})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Trend == nil {
		t.Fatal("expected a trend with both partitions populated")
	}
	if s.Trend.RecentAverage != 65 || s.Trend.OlderAverage != 45 {
		t.Fatalf("unexpected averages: %+v", s.Trend)
	}
	if s.Trend.Change != 20 || s.Trend.Direction != "Simpler" {
		t.Fatalf("positive change means simpler lyrics: %+v", s.Trend)
	}
}

func TestSummarizeTrendOmittedWhenPartitionEmpty(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2021, FleschKincaid: 40},
		{Year: 2022, FleschKincaid: 60},
	}
	s, err := Summarize(records, SummarizeOptions{BoundaryYear: 2020})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Trend != nil {
		t.Fatalf("no older records, trend must be omitted: %+v", s.Trend)
	}
}

func TestSummarizeRankGroupingExcludesUnassigned(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2020, Rank: 5, RankCategory: "Top 10", FleschKincaid: 40},
		{Year: 2020, Rank: 8, RankCategory: "Top 10", FleschKincaid: 60},
		{Year: 2020, Rank: 0, RankCategory: "", FleschKincaid: 999},
	}
	s, err := Summarize(records, DefaultSummarizeOptions())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got := s.RankComplexity["Top 10"]; got != 50 {
		t.Fatalf("expected Top 10 mean 50, got %v", got)
	}
	if _, ok := s.RankComplexity[""]; ok {
		t.Fatal("unassigned rank category must be excluded")
	}
}

func TestSummarizeYearlyMeans(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2019, FleschKincaid: 30},
		{Year: 2019, FleschKincaid: 40},
		{Year: 2020, FleschKincaid: 80},
	}
	s, err := Summarize(records, DefaultSummarizeOptions())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.YearlyComplexity[2019] != 35 || s.YearlyComplexity[2020] != 80 {
		t.Fatalf("unexpected yearly means: %v", s.YearlyComplexity)
	}
}

func TestWriteReport(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2019, Title: "Alpha", Rank: 1, RankCategory: "Top 10", FleschKincaid: 30},
		{Year: 2020, Title: "Beta", Rank: 40, RankCategory: "Top 50", FleschKincaid: 70},
	}
	s, err := Summarize(records, DefaultSummarizeOptions())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	var sb strings.Builder
	WriteReport(&sb, s)
	out := sb.String()
	for _, want := range []string{
		"Total songs analyzed: 2",
		"Years covered: 2019-2020",
		"Most complex song: Alpha",
		"Top 10: 30.00",
		"2020: 70.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
