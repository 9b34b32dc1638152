// Package store persists visit sessions and their category assessments in
// SQLite. It is the collaborator behind the chart and editor callbacks:
// committed levels and parameter lists land here.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// now and newID are swapped in tests for stable timestamps and ids.
var (
	now   = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAmbiguousSession = errors.New("session id prefix is ambiguous")
)

// Source records which path committed a level.
type Source string

const (
	SourceSeed   Source = "seed"
	SourceAdjust Source = "adjust"
	SourceEditor Source = "editor"
	SourceImport Source = "import"
)

type Session struct {
	ID        string    `json:"id"`
	Patient   string    `json:"patient"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LevelChange struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"sessionId"`
	CategoryID string    `json:"categoryId"`
	Level      int       `json:"level"`
	Source     Source    `json:"source"`
	ChangedAt  time.Time `json:"changedAt"`
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the database file and its directory if needed and runs
// migrations.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			patient    TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS assessments (
			session_id  TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			category_id TEXT    NOT NULL,
			level       INTEGER NOT NULL CHECK (level BETWEEN 0 AND 10),
			PRIMARY KEY (session_id, category_id)
		);

		CREATE TABLE IF NOT EXISTS parameter_scores (
			session_id  TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			category_id TEXT    NOT NULL,
			key         TEXT    NOT NULL,
			position    INTEGER NOT NULL,
			label       TEXT    NOT NULL,
			description TEXT    NOT NULL DEFAULT '',
			score       INTEGER NOT NULL,
			max_scale   INTEGER NOT NULL,
			baseline    INTEGER,
			PRIMARY KEY (session_id, category_id, key)
		);

		CREATE TABLE IF NOT EXISTS level_history (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id  TEXT    NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			category_id TEXT    NOT NULL,
			level       INTEGER NOT NULL,
			source      TEXT    NOT NULL,
			changed_at  TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_history_session ON level_history(session_id, category_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// timeLayout is fixed width so stored timestamps sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
