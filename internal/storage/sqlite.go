// Package storage provides the SQLite observation logbook: an append-only
// journal of discoveries across sessions. It is never used to restore a
// game session. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the logbook.
type Store struct {
	db *sql.DB
}

// Entry represents a single logged discovery.
type Entry struct {
	ID            int64
	SessionID     string
	Generation    uint64
	ObjectKey     string
	ObjectName    string
	Category      string
	Level         int
	DiscoveryText string
	MaxPower      int
	CreatedAt     time.Time
}

// ObjectStats contains aggregated discoveries for one object.
type ObjectStats struct {
	ObjectKey  string
	ObjectName string
	Category   string
	Sightings  int
	BestLevel  int
	LastSeen   time.Time
}

// Summary contains logbook-wide totals.
type Summary struct {
	Sessions     int
	Observations int
	Objects      int
	LastSeen     time.Time
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
		CREATE TABLE IF NOT EXISTS observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			object_key TEXT NOT NULL,
			object_name TEXT NOT NULL,
			category TEXT NOT NULL,
			level INTEGER NOT NULL,
			discovery_text TEXT NOT NULL,
			max_power INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_observations_session ON observations(session_id);
		CREATE INDEX IF NOT EXISTS idx_observations_object ON observations(object_key);
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

// SaveObservation appends a discovery to the logbook.
// Returns the ID of the inserted record.
func (s *Store) SaveObservation(e Entry) (int64, error) {
	if e.SessionID == "" || e.ObjectKey == "" {
		return 0, errors.New("storage: observation needs a session and an object key")
	}

	result, err := s.db.Exec(
		`INSERT INTO observations
		 (session_id, generation, object_key, object_name, category, level, discovery_text, max_power)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, int64(e.Generation), e.ObjectKey, e.ObjectName, e.Category,
		e.Level, e.DiscoveryText, e.MaxPower,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save observation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const entryColumns = `id, session_id, generation, object_key, object_name, category, level, discovery_text, max_power, created_at`

// RecentObservations retrieves the latest N discoveries, newest first.
func (s *Store) RecentObservations(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+entryColumns+`
		 FROM observations
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query observations: %w", err)
	}
	return scanEntries(rows)
}

// SessionObservations retrieves every discovery of one session in the order
// they were made.
func (s *Store) SessionObservations(sessionID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT `+entryColumns+`
		 FROM observations
		 WHERE session_id = ?
		 ORDER BY generation ASC, id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session observations: %w", err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var gen int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.SessionID, &gen, &e.ObjectKey, &e.ObjectName,
			&e.Category, &e.Level, &e.DiscoveryText, &e.MaxPower, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Generation = uint64(gen)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ObjectStatistics aggregates discoveries per object, most sighted first.
func (s *Store) ObjectStatistics() ([]ObjectStats, error) {
	rows, err := s.db.Query(
		`SELECT object_key, MAX(object_name), MAX(category), COUNT(*), MAX(level), MAX(created_at)
		 FROM observations
		 GROUP BY object_key
		 ORDER BY COUNT(*) DESC, object_key ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get object stats: %w", err)
	}
	defer rows.Close()

	var stats []ObjectStats
	for rows.Next() {
		var st ObjectStats
		var lastSeen any
		if err := rows.Scan(&st.ObjectKey, &st.ObjectName, &st.Category, &st.Sightings, &st.BestLevel, &lastSeen); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSeen = parseTime(lastSeen)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Summary retrieves logbook-wide totals.
func (s *Store) Summary() (*Summary, error) {
	sum := &Summary{}

	var lastSeen any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT session_id), COUNT(*), COUNT(DISTINCT object_key), MAX(created_at)
		 FROM observations`,
	).Scan(&sum.Sessions, &sum.Observations, &sum.Objects, &lastSeen)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get summary: %w", err)
	}
	sum.LastSeen = parseTime(lastSeen)

	return sum, nil
}

// Clear deletes every logged observation.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM observations"); err != nil {
		return fmt.Errorf("storage: cannot clear logbook: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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
