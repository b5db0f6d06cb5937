// Package storage provides SQLite-based persistence for the maze run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Store manages the SQLite database connection for the run history.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single recorded run.
type RunEntry struct {
	ID         int64
	Mode       string
	Difficulty string
	Width      int
	Height     int
	Seed       int64
	Ticks      uint64
	Elapsed    time.Duration
	Won        bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(difficulty, won, elapsed_ms);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished or abandoned run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r core.RunSummary) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (mode, difficulty, width, height, seed, ticks, elapsed_ms, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Difficulty, r.Width, r.Height, r.Seed,
		int64(r.Ticks), r.Elapsed.Milliseconds(), r.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, mode, difficulty, width, height, seed, ticks, elapsed_ms, won, created_at`

// RankedMode is the only mode that counts for best times and stats. Demo
// runs are stored but never ranked.
const RankedMode = "play"

// BestRuns retrieves the fastest winning played runs for a difficulty.
// Results are ordered by elapsed time ascending.
func (s *Store) BestRuns(difficulty string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE difficulty = ? AND mode = ? AND won = 1
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		difficulty, RankedMode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recent runs of any outcome, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var ticks, elapsedMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Difficulty, &e.Width, &e.Height,
			&e.Seed, &ticks, &elapsedMS, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Difficulties returns every difficulty that has at least one recorded run,
// in alphabetical order.
func (s *Store) Difficulties() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT difficulty FROM runs ORDER BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query difficulties: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// ClearRuns deletes all runs for the given difficulty.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for a difficulty.
type RunStats struct {
	Difficulty string
	Played     int
	Won        int
	Best       time.Duration // fastest win; zero without wins
	AvgWin     time.Duration
	LastPlayed time.Time
}

// WinRate returns the share of won runs, 0 to 1.
func (st RunStats) WinRate() float64 {
	if st.Played == 0 {
		return 0
	}
	return float64(st.Won) / float64(st.Played)
}

// Stats retrieves aggregated statistics of played runs for one difficulty.
func (s *Store) Stats(difficulty string) (*RunStats, error) {
	stats := &RunStats{Difficulty: difficulty}

	var best, avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        MIN(CASE WHEN won = 1 THEN elapsed_ms END),
		        AVG(CASE WHEN won = 1 THEN elapsed_ms END)
		 FROM runs WHERE difficulty = ? AND mode = ?`,
		difficulty, RankedMode,
	).Scan(&stats.Played, &stats.Won, &best, &avg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if best.Valid {
		stats.Best = time.Duration(best.Float64) * time.Millisecond
	}
	if avg.Valid {
		stats.AvgWin = time.Duration(avg.Float64 * float64(time.Millisecond))
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE difficulty = ? AND mode = ? ORDER BY id DESC LIMIT 1`,
		difficulty, RankedMode,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// AllStats retrieves statistics for every difficulty that has been played.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	names, err := s.Difficulties()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*RunStats, len(names))
	for _, name := range names {
		st, err := s.Stats(name)
		if err != nil {
			return nil, err
		}
		stats[name] = st
	}
	return stats, nil
}
