package analysis

import (
	"math"
	"testing"

	"billboard-lyrics/models"
)

func rec(year int, found bool, score float64) models.SongRecord {
	return models.SongRecord{Year: year, LyricsFound: found, FleschKincaid: score}
}

func TestCleanDropsMissingLyrics(t *testing.T) {
	records := []models.SongRecord{
		rec(2020, true, 50),
		rec(2020, false, 50),
		rec(2021, false, 0),
	}
	cleaned := Clean(records, DefaultCleanOptions())
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(cleaned))
	}
}

func TestCleanAllMissingLyrics(t *testing.T) {
	records := make([]models.SongRecord, 100)
	for i := range records {
		records[i] = rec(2015+i%10, false, 0)
	}
	cleaned := Clean(records, DefaultCleanOptions())
	if len(cleaned) != 0 {
		t.Fatalf("expected empty cleaned set, got %d records", len(cleaned))
	}
	if _, err := Summarize(cleaned, DefaultSummarizeOptions()); err != ErrNoData {
		t.Fatalf("expected ErrNoData over the empty set, got %v", err)
	}
}

func TestCleanOutlierBoundaries(t *testing.T) {
	records := []models.SongRecord{
		rec(2020, true, -60),
		rec(2020, true, -50),
		rec(2020, true, 0),
		rec(2020, true, 100),
		rec(2020, true, 150),
	}
	cleaned := Clean(records, DefaultCleanOptions())
	if len(cleaned) != 3 {
		t.Fatalf("expected 3 survivors, got %d", len(cleaned))
	}
	// Closed interval: exactly -50 and 100 stay.
	for _, r := range cleaned {
		if r.FleschKincaid < -50 || r.FleschKincaid > 100 {
			t.Fatalf("outlier %v survived cleaning", r.FleschKincaid)
		}
	}
}

func TestCleanDropsMissingScore(t *testing.T) {
	records := []models.SongRecord{
		rec(2020, true, math.NaN()),
		rec(2020, true, 40),
	}
	cleaned := Clean(records, DefaultCleanOptions())
	if len(cleaned) != 1 || cleaned[0].FleschKincaid != 40 {
		t.Fatalf("record with unparseable score must not pass the outlier check: %+v", cleaned)
	}
}

func TestCleanPreservesOrder(t *testing.T) {
	records := []models.SongRecord{
		{Year: 2020, Rank: 3, LyricsFound: true, FleschKincaid: 10},
		{Year: 2020, Rank: 1, LyricsFound: false},
		{Year: 2020, Rank: 2, LyricsFound: true, FleschKincaid: 20},
	}
	cleaned := Clean(records, DefaultCleanOptions())
	if len(cleaned) != 2 || cleaned[0].Rank != 3 || cleaned[1].Rank != 2 {
		t.Fatalf("survivors must keep insertion order: %+v", cleaned)
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2020", 2020},
		{" 1995 ", 1995},
		{"2018-01-01", 2018},
		{"2016-07-04 12:30:00", 2016},
		{"2021-03-01T00:00:00Z", 2021},
	}
	for _, c := range cases {
		got, err := ParseYear(c.in)
		if err != nil {
			t.Fatalf("ParseYear(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseYear(%q) = %d, want %d", c.in, got, c.want)
		}
	}
	if _, err := ParseYear("not a year"); err == nil {
		t.Fatal("expected error for unparseable year")
	}
}

func TestParseMetric(t *testing.T) {
	if v := ParseMetric("3.25"); v != 3.25 {
		t.Fatalf("ParseMetric(3.25) = %v", v)
	}
	if v := ParseMetric(""); !math.IsNaN(v) {
		t.Fatalf("empty field must be missing, got %v", v)
	}
	if v := ParseMetric("n/a"); !math.IsNaN(v) {
		t.Fatalf("unparseable field must be missing, got %v", v)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"True", "true", "1"} {
		if !ParseBool(s) {
			t.Fatalf("ParseBool(%q) = false", s)
		}
	}
	for _, s := range []string{"False", "false", "", "0", "maybe"} {
		if ParseBool(s) {
			t.Fatalf("ParseBool(%q) = true", s)
		}
	}
}
