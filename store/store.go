// Package store loads pipeline outputs into a SQLite database. Each
// load is a full replace of the target table for that run; there is no
// incremental upsert.
package store

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"billboard-lyrics/models"

	_ "github.com/mattn/go-sqlite3"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, err
	}

	log.Println("[store] SQLite sink at", dbPath)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables builds the three output tables and their indexes.
func (s *Store) CreateTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lyrics_complexity (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			lyrics_found INTEGER NOT NULL DEFAULT 0,
			unique_words REAL,
			total_words REAL,
			avg_sentence_length REAL,
			flesch_kincaid_score REAL,
			lexical_diversity REAL,
			complexity_category TEXT,
			rank_category TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS yearly_complexity_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year INTEGER UNIQUE NOT NULL,
			flesch_kincaid_score_mean REAL,
			flesch_kincaid_score_std REAL,
			flesch_kincaid_score_median REAL,
			lexical_diversity_mean REAL,
			lexical_diversity_std REAL,
			lexical_diversity_median REAL,
			unique_words_mean REAL,
			unique_words_std REAL,
			unique_words_median REAL,
			total_words_mean REAL,
			total_words_std REAL,
			total_words_median REAL,
			complexity_trend REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS decade_complexity_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			decade INTEGER UNIQUE NOT NULL,
			flesch_kincaid_score_mean REAL,
			lexical_diversity_mean REAL,
			unique_words_mean REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lyrics_complexity_year ON lyrics_complexity(year)`,
		`CREATE INDEX IF NOT EXISTS idx_lyrics_complexity_rank ON lyrics_complexity(rank)`,
		`CREATE INDEX IF NOT EXISTS idx_lyrics_complexity_artist ON lyrics_complexity(artist)`,
		`CREATE INDEX IF NOT EXISTS idx_lyrics_complexity_category ON lyrics_complexity(complexity_category)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	log.Println("[store] tables ready")
	return nil
}

// ReplaceSongs clears lyrics_complexity and inserts the batch.
func (s *Store) ReplaceSongs(records []models.SongRecord) error {
	return s.replace("lyrics_complexity", len(records), func(tx *sql.Tx) (*sql.Stmt, error) {
		return tx.Prepare(`INSERT INTO lyrics_complexity
			(year, rank, title, artist, lyrics_found, unique_words, total_words,
			 avg_sentence_length, flesch_kincaid_score, lexical_diversity,
			 complexity_category, rank_category)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	}, func(stmt *sql.Stmt, i int) error {
		r := records[i]
		_, err := stmt.Exec(
			r.Year, r.Rank, r.Title, r.Artist, boolInt(r.LyricsFound),
			nullable(r.UniqueWords), nullable(r.TotalWords),
			nullable(r.AvgSentenceLength), nullable(r.FleschKincaid),
			nullable(r.LexicalDiversity),
			nullString(r.ComplexityCategory), nullString(r.RankCategory),
		)
		return err
	})
}

// ReplaceYearlyStats clears yearly_complexity_stats and inserts the rows.
func (s *Store) ReplaceYearlyStats(stats []models.YearlyStat) error {
	return s.replace("yearly_complexity_stats", len(stats), func(tx *sql.Tx) (*sql.Stmt, error) {
		return tx.Prepare(`INSERT INTO yearly_complexity_stats
			(year,
			 flesch_kincaid_score_mean, flesch_kincaid_score_std, flesch_kincaid_score_median,
			 lexical_diversity_mean, lexical_diversity_std, lexical_diversity_median,
			 unique_words_mean, unique_words_std, unique_words_median,
			 total_words_mean, total_words_std, total_words_median,
			 complexity_trend)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	}, func(stmt *sql.Stmt, i int) error {
		st := stats[i]
		_, err := stmt.Exec(
			st.Year,
			nullable(st.FleschKincaid.Mean), nullable(st.FleschKincaid.Std), nullable(st.FleschKincaid.Median),
			nullable(st.LexicalDiversity.Mean), nullable(st.LexicalDiversity.Std), nullable(st.LexicalDiversity.Median),
			nullable(st.UniqueWords.Mean), nullable(st.UniqueWords.Std), nullable(st.UniqueWords.Median),
			nullable(st.TotalWords.Mean), nullable(st.TotalWords.Std), nullable(st.TotalWords.Median),
			nullable(st.ComplexityTrend),
		)
		return err
	})
}

// ReplaceDecadeStats clears decade_complexity_stats and inserts the rows.
func (s *Store) ReplaceDecadeStats(stats []models.DecadeStat) error {
	return s.replace("decade_complexity_stats", len(stats), func(tx *sql.Tx) (*sql.Stmt, error) {
		return tx.Prepare(`INSERT INTO decade_complexity_stats
			(decade, flesch_kincaid_score_mean, lexical_diversity_mean, unique_words_mean)
			VALUES (?, ?, ?, ?)`)
	}, func(stmt *sql.Stmt, i int) error {
		st := stats[i]
		_, err := stmt.Exec(st.Decade,
			nullable(st.FleschKincaidMean),
			nullable(st.LexicalDiversityMean),
			nullable(st.UniqueWordsMean))
		return err
	})
}

func (s *Store) replace(table string, rows int, prepare func(*sql.Tx) (*sql.Stmt, error), insert func(*sql.Stmt, int) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := prepare(tx)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < rows; i++ {
		if err := insert(stmt, i); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[store] replaced %s with %d rows", table, rows)
	return nil
}

// Verify runs sanity queries over the loaded data and logs the results.
func (s *Store) Verify() error {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM lyrics_complexity").Scan(&total); err != nil {
		return fmt.Errorf("verify count: %w", err)
	}
	log.Printf("[store] verify: %d songs loaded", total)
	if total == 0 {
		return nil
	}

	var minYear, maxYear int
	if err := s.db.QueryRow("SELECT MIN(year), MAX(year) FROM lyrics_complexity").Scan(&minYear, &maxYear); err != nil {
		return fmt.Errorf("verify year range: %w", err)
	}
	log.Printf("[store] verify: years %d-%d", minYear, maxYear)

	rows, err := s.db.Query(`
		SELECT rank_category, AVG(flesch_kincaid_score)
		FROM lyrics_complexity
		WHERE rank_category IS NOT NULL
		GROUP BY rank_category
		ORDER BY 2`)
	if err != nil {
		return fmt.Errorf("verify rank means: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cat string
		var avg float64
		if err := rows.Scan(&cat, &avg); err != nil {
			return err
		}
		log.Printf("[store] verify: %s avg complexity %.2f", cat, avg)
	}
	return rows.Err()
}

// SongCount returns the number of rows currently in lyrics_complexity.
func (s *Store) SongCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM lyrics_complexity").Scan(&n)
	return n, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
