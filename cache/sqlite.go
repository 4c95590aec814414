package cache

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// Cache is a SQLite-backed lookup table for fetched lyrics, keyed by
// normalized artist and title. Misses are cached too, so a song no
// provider knows is only searched once.
type Cache struct {
	db *sql.DB
	mu sync.RWMutex
}

type Entry struct {
	Lyrics string
	Source string
	Found  bool
}

func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS lyrics_cache (
			artist     TEXT NOT NULL,
			title      TEXT NOT NULL,
			lyrics     TEXT,
			source     TEXT,
			found      INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (artist, title)
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Println("[cache] SQLite lyrics cache at", dbPath)
	return &Cache{db: db}, nil
}

func (c *Cache) Get(artist, title string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var lyrics, source sql.NullString
	var found int

	err := c.db.QueryRow(
		"SELECT lyrics, source, found FROM lyrics_cache WHERE artist = ? AND title = ?",
		normalize(artist), normalize(title),
	).Scan(&lyrics, &source, &found)
	if err != nil {
		return nil, false
	}

	return &Entry{
		Lyrics: lyrics.String,
		Source: source.String,
		Found:  found == 1,
	}, true
}

func (c *Cache) Set(artist, title, lyrics, source string, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	foundInt := 0
	if found {
		foundInt = 1
	}

	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO lyrics_cache (artist, title, lyrics, source, found)
		 VALUES (?, ?, ?, ?, ?)`,
		normalize(artist), normalize(title), lyrics, source, foundInt,
	)
	if err != nil {
		log.Printf("[cache] write error: %v", err)
	}
}

// Stats reports cache size and how many entries resolved to lyrics.
func (c *Cache) Stats() (total int, found int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.db.QueryRow("SELECT COUNT(*) FROM lyrics_cache").Scan(&total)
	c.db.QueryRow("SELECT COUNT(*) FROM lyrics_cache WHERE found = 1").Scan(&found)
	return
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// normalize lowercases ASCII letters without touching other bytes, so
// cache keys survive odd punctuation in titles.
func normalize(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 32
		}
		b[i] = c
	}
	return string(b)
}
