// Package storage provides SQLite-based persistence for match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match persistence.
type Store struct {
	db *sql.DB
}

// MatchRecord represents one completed match.
type MatchRecord struct {
	ID         int64
	LeftPilot  string
	RightPilot string
	Outcome    string // "tie", "left", "right", "stopped"
	Winner     string // Winning pilot name, empty on tie/stop
	Ticks      uint64
	Duration   int // Duration in seconds
	CreatedAt  time.Time
}

// PilotStats aggregates a pilot's record across all stored matches.
type PilotStats struct {
	Pilot  string
	Wins   int
	Losses int
	Ties   int
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			left_pilot TEXT NOT NULL,
			right_pilot TEXT NOT NULL,
			outcome TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			duration INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(winner);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordMatch inserts a completed match and returns its row ID.
func (s *Store) RecordMatch(rec MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches (left_pilot, right_pilot, outcome, winner, ticks, duration)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.LeftPilot, rec.RightPilot, rec.Outcome, rec.Winner, rec.Ticks, rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record match: %w", err)
	}
	return res.LastInsertId()
}

// RecentMatches returns the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, left_pilot, right_pilot, outcome, winner, ticks, duration, created_at
		 FROM matches ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(
			&rec.ID, &rec.LeftPilot, &rec.RightPilot, &rec.Outcome,
			&rec.Winner, &rec.Ticks, &rec.Duration, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan match row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Stats returns the win/loss/tie record for one pilot.
func (s *Store) Stats(pilot string) (PilotStats, error) {
	stats := PilotStats{Pilot: pilot}

	row := s.db.QueryRow(
		`SELECT
			COUNT(CASE WHEN winner = ? THEN 1 END),
			COUNT(CASE WHEN winner != '' AND winner != ? AND (left_pilot = ? OR right_pilot = ?) THEN 1 END),
			COUNT(CASE WHEN outcome = 'tie' AND (left_pilot = ? OR right_pilot = ?) THEN 1 END)
		 FROM matches`,
		pilot, pilot, pilot, pilot, pilot, pilot,
	)
	if err := row.Scan(&stats.Wins, &stats.Losses, &stats.Ties); err != nil {
		return stats, fmt.Errorf("storage: cannot compute stats for %q: %w", pilot, err)
	}
	return stats, nil
}
