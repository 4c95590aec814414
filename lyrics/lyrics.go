// Package lyrics resolves chart entries to lyric text and computes
// per-song complexity metrics at the ingestion boundary. Lookups go to
// lrclib first, then Genius when a token is configured; every result,
// including misses, lands in the SQLite cache.
package lyrics

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"billboard-lyrics/analysis"
	"billboard-lyrics/cache"
	"billboard-lyrics/models"

	"golang.org/x/net/html"
)

type Fetcher struct {
	geniusToken string
	cache       *cache.Cache
	client      *http.Client
}

func NewFetcher(geniusToken string, c *cache.Cache) *Fetcher {
	return &Fetcher{
		geniusToken: geniusToken,
		cache:       c,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchAll resolves lyrics for every entry with a bounded worker pool
// and returns one SongRecord per entry, in entry order. Metric
// computation is stateless and per-song, so workers never interact;
// records are merged by index before the batch moves on to cleaning.
func (f *Fetcher) FetchAll(entries []models.ChartEntry, workers int) []models.SongRecord {
	if workers < 1 {
		workers = 1
	}

	records := make([]models.SongRecord, len(entries))
	jobs := make(chan int, len(entries))

	var wg sync.WaitGroup
	var mu sync.Mutex
	processed, found := 0, 0

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := entries[i]
				text, _ := f.fetchOne(e.Artist, e.Title)
				m := analysis.Compute(text)
				records[i] = recordFrom(e, m)

				mu.Lock()
				processed++
				if m.LyricsFound {
					found++
				}
				if processed%25 == 0 || processed == len(entries) {
					log.Printf("[lyrics] %d/%d processed, %d with lyrics",
						processed, len(entries), found)
				}
				mu.Unlock()
			}
		}()
	}

	for i := range entries {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return records
}

func recordFrom(e models.ChartEntry, m models.SongMetrics) models.SongRecord {
	return models.SongRecord{
		Year:              e.Year,
		Rank:              e.Rank,
		Title:             e.Title,
		Artist:            e.Artist,
		LyricsFound:       m.LyricsFound,
		UniqueWords:       float64(m.UniqueWords),
		TotalWords:        float64(m.TotalWords),
		AvgSentenceLength: m.AvgSentenceLength,
		FleschKincaid:     m.FleschKincaid,
		LexicalDiversity:  m.LexicalDiversity,
	}
}

func (f *Fetcher) fetchOne(artist, title string) (string, bool) {
	cleaned := cleanTitle(title)

	if entry, ok := f.cache.Get(artist, cleaned); ok {
		return entry.Lyrics, entry.Found
	}

	if lyrics, ok := f.tryLrclib(artist, cleaned); ok {
		log.Printf("[lyrics] lrclib hit: %s — %s", artist, cleaned)
		f.cache.Set(artist, cleaned, lyrics, "lrclib", true)
		return lyrics, true
	}

	if f.geniusToken != "" {
		if lyrics, ok := f.tryGenius(artist, cleaned); ok {
			log.Printf("[lyrics] genius hit: %s — %s", artist, cleaned)
			f.cache.Set(artist, cleaned, lyrics, "genius", true)
			return lyrics, true
		}
	}

	log.Printf("[lyrics] not found: %s — %s", artist, cleaned)
	f.cache.Set(artist, cleaned, "", "none", false)
	return "", false
}

type lrclibResult struct {
	PlainLyrics string `json:"plainLyrics"`
}

func (f *Fetcher) tryLrclib(artist, title string) (string, bool) {
	params := url.Values{
		"artist_name": {artist},
		"track_name":  {title},
	}

	req, _ := http.NewRequest("GET",
		"https://lrclib.net/api/search?"+params.Encode(), nil)
	req.Header.Set("User-Agent", "BillboardLyricsPipeline/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var results []lrclibResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", false
	}

	for _, r := range results {
		if r.PlainLyrics != "" {
			return r.PlainLyrics, true
		}
	}
	return "", false
}

type geniusSearch struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL string `json:"url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

func (f *Fetcher) tryGenius(artist, title string) (string, bool) {
	params := url.Values{"q": {artist + " " + title}}

	req, _ := http.NewRequest("GET",
		"https://api.genius.com/search?"+params.Encode(), nil)
	req.Header.Set("Authorization", "Bearer "+f.geniusToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var search geniusSearch
	if err := json.Unmarshal(body, &search); err != nil {
		return "", false
	}
	if len(search.Response.Hits) == 0 {
		return "", false
	}

	songURL := search.Response.Hits[0].Result.URL

	// Rate limit before scraping the song page.
	time.Sleep(300 * time.Millisecond)

	pageReq, _ := http.NewRequest("GET", songURL, nil)
	pageReq.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	pageResp, err := f.client.Do(pageReq)
	if err != nil {
		return "", false
	}
	defer pageResp.Body.Close()

	lyrics := parseGeniusHTML(pageResp.Body)
	if lyrics == "" {
		return "", false
	}
	return lyrics, true
}

func parseGeniusHTML(r io.Reader) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}

	var sb strings.Builder

	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, a := range n.Attr {
				if a.Key == "data-lyrics-container" && a.Val == "true" {
					getText(n, &sb)
					sb.WriteString("\n")
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}

	find(doc)
	return strings.TrimSpace(sb.String())
}

func getText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getText(c, sb)
	}
}

var (
	reParens = regexp.MustCompile(`\s*[\(\[].*?[\)\]]\s*`)

	reSuffix = regexp.MustCompile(
		`(?i)\s*-\s*(remaster|live|demo|remix|deluxe|bonus|edit|version|` +
			`mix|single|acoustic|instrumental|radio|extended|original).*`)
)

func cleanTitle(title string) string {
	title = reParens.ReplaceAllString(title, " ")
	title = reSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}
