package analysis

import (
	"math"
	"strings"

	"billboard-lyrics/models"
)

// Compute derives complexity metrics from a single lyric text. An empty
// string means the lyrics provider came up empty: all metrics are zero
// and LyricsFound is false. The function is total over any text,
// including pure whitespace and single-line input.
//
// The readability score is a simplified Flesch-Kincaid variant that uses
// vowel count as a crude syllable proxy. Higher means easier to read.
func Compute(lyrics string) models.SongMetrics {
	if lyrics == "" {
		return models.SongMetrics{}
	}

	words := strings.Fields(lyrics)
	totalWords := len(words)

	seen := make(map[string]struct{}, totalWords)
	for _, w := range words {
		seen[w] = struct{}{}
	}
	uniqueWords := len(seen)

	sentenceCount := 0
	for _, line := range strings.Split(lyrics, "\n") {
		if strings.TrimSpace(line) != "" {
			sentenceCount++
		}
	}

	avgSentenceLength := 0.0
	if sentenceCount > 0 {
		avgSentenceLength = float64(totalWords) / float64(sentenceCount)
	}

	lexicalDiversity := 0.0
	fleschKincaid := 0.0
	if totalWords > 0 {
		lexicalDiversity = float64(uniqueWords) / float64(totalWords)

		vowels := 0
		for _, c := range strings.ToLower(lyrics) {
			switch c {
			case 'a', 'e', 'i', 'o', 'u':
				vowels++
			}
		}
		fleschKincaid = 206.835 -
			1.015*avgSentenceLength -
			84.6*(float64(vowels)/float64(totalWords))
	}

	return models.SongMetrics{
		UniqueWords:       uniqueWords,
		TotalWords:        totalWords,
		AvgSentenceLength: round(avgSentenceLength, 2),
		FleschKincaid:     round(fleschKincaid, 2),
		LexicalDiversity:  round(lexicalDiversity, 3),
		LyricsFound:       true,
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
