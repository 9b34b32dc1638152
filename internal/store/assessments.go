package store

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/severity"
)

// LoadAssessments returns the stored assessments of a session in registry
// order. Categories without a stored level are omitted; the chart falls back
// to its neutral level for them.
func (s *Store) LoadAssessments(ctx context.Context, sessionID string) ([]category.Assessment, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	levels := map[string]int{}
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id, level FROM assessments WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: load levels: %w", err)
	}
	for rows.Next() {
		var id string
		var level int
		if err := rows.Scan(&id, &level); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: load levels: %w", err)
		}
		levels[id] = level
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("store: load levels: %w", err)
	}
	rows.Close()

	params, err := s.loadParameters(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var out []category.Assessment
	for _, c := range category.Registry() {
		level, ok := levels[c.ID]
		if !ok {
			continue
		}
		out = append(out, category.Assessment{
			CategoryID: c.ID,
			Level:      level,
			Parameters: params[c.ID],
		})
	}
	return out, nil
}

func (s *Store) loadParameters(ctx context.Context, sessionID string) (map[string][]category.ParameterScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, key, label, description, score, max_scale, baseline
		FROM parameter_scores
		WHERE session_id = ?
		ORDER BY category_id, position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: load parameters: %w", err)
	}
	defer rows.Close()

	out := map[string][]category.ParameterScore{}
	for rows.Next() {
		var catID string
		var p category.ParameterScore
		var baseline sql.NullInt64
		if err := rows.Scan(&catID, &p.Key, &p.Label, &p.Description, &p.Score, &p.MaxScale, &baseline); err != nil {
			return nil, fmt.Errorf("store: load parameters: %w", err)
		}
		if baseline.Valid {
			b := int(baseline.Int64)
			p.Baseline = &b
		}
		out[catID] = append(out[catID], p)
	}
	return out, rows.Err()
}

// SaveLevel records a committed level and appends it to the history.
func (s *Store) SaveLevel(ctx context.Context, sessionID, categoryID string, level int, source Source) error {
	if err := validateLevel(categoryID, level); err != nil {
		return err
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touchSession(ctx, tx, sessionID); err != nil {
			return err
		}
		return upsertLevel(ctx, tx, sessionID, categoryID, level, source)
	})
	if err != nil {
		return fmt.Errorf("store: save level: %w", err)
	}
	s.logger.Debug("level saved",
		zap.String("session", sessionID),
		zap.String("category", categoryID),
		zap.Int("level", level),
		zap.String("source", string(source)))
	return nil
}

func validateLevel(categoryID string, level int) error {
	if _, err := category.Lookup(categoryID); err != nil {
		return fmt.Errorf("store: save level: %w", err)
	}
	if !severity.Valid(level) {
		return fmt.Errorf("store: save level: level %d out of range", level)
	}
	return nil
}

// SaveParameters replaces the parameter list of one category. Baselines
// already stored for a key are kept; keys seen for the first time take their
// baseline from the incoming value, or its score when none is given.
func (s *Store) SaveParameters(ctx context.Context, sessionID, categoryID string, params []category.ParameterScore) error {
	if _, err := category.Lookup(categoryID); err != nil {
		return fmt.Errorf("store: save parameters: %w", err)
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := touchSession(ctx, tx, sessionID); err != nil {
			return err
		}
		existing, err := baselines(ctx, tx, sessionID, categoryID)
		if err != nil {
			return err
		}
		merged := category.CloneParameters(params)
		for i := range merged {
			if b, ok := existing[merged[i].Key]; ok {
				v := b
				merged[i].Baseline = &v
				continue
			}
			if merged[i].Baseline == nil {
				v := merged[i].Score
				merged[i].Baseline = &v
			}
		}
		return replaceParameters(ctx, tx, sessionID, categoryID, merged)
	})
	if err != nil {
		return fmt.Errorf("store: save parameters: %w", err)
	}
	s.logger.Debug("parameters saved",
		zap.String("session", sessionID),
		zap.String("category", categoryID),
		zap.Int("count", len(params)))
	return nil
}

// LevelHistory lists committed levels oldest first. An empty categoryID
// returns the history of every category.
func (s *Store) LevelHistory(ctx context.Context, sessionID, categoryID string) ([]LevelChange, error) {
	query := `SELECT id, session_id, category_id, level, source, changed_at FROM level_history WHERE session_id = ?`
	args := []any{sessionID}
	if categoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: level history: %w", err)
	}
	defer rows.Close()

	var out []LevelChange
	for rows.Next() {
		var c LevelChange
		var source, changed string
		if err := rows.Scan(&c.ID, &c.SessionID, &c.CategoryID, &c.Level, &source, &changed); err != nil {
			return nil, fmt.Errorf("store: level history: %w", err)
		}
		c.Source = Source(source)
		if c.ChangedAt, err = parseTime(changed); err != nil {
			return nil, fmt.Errorf("store: level history: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func upsertLevel(ctx context.Context, tx *sql.Tx, sessionID, categoryID string, level int, source Source) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO assessments (session_id, category_id, level) VALUES (?, ?, ?)
		ON CONFLICT(session_id, category_id) DO UPDATE SET level = excluded.level`,
		sessionID, categoryID, level,
	); err != nil {
		return fmt.Errorf("upsert level: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO level_history (session_id, category_id, level, source, changed_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, categoryID, level, string(source), formatTime(now()),
	); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func baselines(ctx context.Context, tx *sql.Tx, sessionID, categoryID string) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT key, baseline FROM parameter_scores WHERE session_id = ? AND category_id = ? AND baseline IS NOT NULL`,
		sessionID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("read baselines: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var b int
		if err := rows.Scan(&key, &b); err != nil {
			return nil, fmt.Errorf("read baselines: %w", err)
		}
		out[key] = b
	}
	return out, rows.Err()
}

func replaceParameters(ctx context.Context, tx *sql.Tx, sessionID, categoryID string, params []category.ParameterScore) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM parameter_scores WHERE session_id = ? AND category_id = ?`, sessionID, categoryID); err != nil {
		return fmt.Errorf("clear parameters: %w", err)
	}
	for i, p := range params {
		var baseline any
		if p.Baseline != nil {
			baseline = *p.Baseline
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO parameter_scores
				(session_id, category_id, key, position, label, description, score, max_scale, baseline)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID, categoryID, p.Key, i, p.Label, p.Description, p.Score, p.MaxScale, baseline,
		); err != nil {
			return fmt.Errorf("insert parameter %s: %w", p.Key, err)
		}
	}
	return nil
}
