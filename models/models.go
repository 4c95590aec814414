package models

// ChartEntry is one row of a year-end chart, before lyrics resolution.
type ChartEntry struct {
	Year   int    `json:"year"`
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// SongMetrics holds the complexity metrics derived from a single lyric text.
type SongMetrics struct {
	UniqueWords       int     `json:"unique_words"`
	TotalWords        int     `json:"total_words"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	FleschKincaid     float64 `json:"flesch_kincaid_score"`
	LexicalDiversity  float64 `json:"lexical_diversity"`
	LyricsFound       bool    `json:"lyrics_found"`
}

// SongRecord is one song/rank/year row of the interchange table.
// Numeric metric fields are float64 with NaN marking a value that could
// not be parsed during cleaning; NaN fields are skipped by aggregates.
type SongRecord struct {
	Year               int     `json:"year"`
	Rank               int     `json:"rank"`
	Title              string  `json:"title"`
	Artist             string  `json:"artist"`
	LyricsFound        bool    `json:"lyrics_found"`
	UniqueWords        float64 `json:"unique_words"`
	TotalWords         float64 `json:"total_words"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	FleschKincaid      float64 `json:"flesch_kincaid_score"`
	LexicalDiversity   float64 `json:"lexical_diversity"`
	ComplexityCategory string  `json:"complexity_category"`
	RankCategory       string  `json:"rank_category"`
}

// MetricStat is mean/std/median of one metric over one group of songs.
type MetricStat struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
}

// YearlyStat is the per-year statistics row. ComplexityTrend is the
// difference between this year's mean readability score and the
// previous present year's (by chronological order of the years in the
// batch); NaN for the first year.
type YearlyStat struct {
	Year             int        `json:"year"`
	FleschKincaid    MetricStat `json:"flesch_kincaid_score"`
	LexicalDiversity MetricStat `json:"lexical_diversity"`
	UniqueWords      MetricStat `json:"unique_words"`
	TotalWords       MetricStat `json:"total_words"`
	ComplexityTrend  float64    `json:"complexity_trend"`
}

// DecadeStat is the per-decade statistics row.
type DecadeStat struct {
	Decade               int     `json:"decade"`
	FleschKincaidMean    float64 `json:"flesch_kincaid_score_mean"`
	LexicalDiversityMean float64 `json:"lexical_diversity_mean"`
	UniqueWordsMean      float64 `json:"unique_words_mean"`
}

// SongRef names a song together with the metric value that singled it out.
type SongRef struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Value  float64 `json:"value"`
}

// ComplexityTrend compares mean readability on either side of a boundary
// year. Direction is "Simpler" when the recent side scores higher.
type ComplexityTrend struct {
	RecentAverage float64 `json:"recent_average"`
	OlderAverage  float64 `json:"older_average"`
	Change        float64 `json:"change"`
	Direction     string  `json:"trend"`
}

// InsightSummary carries the headline findings over a cleaned batch.
// Trend is nil when either side of the boundary-year split is empty.
type InsightSummary struct {
	TotalSongsAnalyzed int                `json:"total_songs_analyzed"`
	MinYear            int                `json:"min_year"`
	MaxYear            int                `json:"max_year"`
	Trend              *ComplexityTrend   `json:"complexity_trend,omitempty"`
	MostComplexSong    SongRef            `json:"most_complex_song"`
	LeastComplexSong   SongRef            `json:"least_complex_song"`
	HighestDiversity   SongRef            `json:"highest_lexical_diversity"`
	MostUniqueWords    SongRef            `json:"most_unique_words"`
	RankComplexity     map[string]float64 `json:"rank_complexity"`
	YearlyComplexity   map[int]float64    `json:"yearly_complexity"`
}
