package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/score"
)

// CreateSession registers a visit and seeds every category from its default
// parameter template, with the level aggregated from those parameters.
func (s *Store) CreateSession(ctx context.Context, patient, note string) (Session, error) {
	return s.createSession(ctx, patient, note, nil)
}

// ImportSession registers a visit from previously exported assessments.
// Imported categories keep their level, scores and baselines; the rest are
// seeded as in CreateSession.
func (s *Store) ImportSession(ctx context.Context, patient, note string, assessments []category.Assessment) (Session, error) {
	for _, a := range assessments {
		if err := validateLevel(a.CategoryID, a.Level); err != nil {
			return Session{}, err
		}
		for _, p := range a.Parameters {
			if err := p.Validate(); err != nil {
				return Session{}, fmt.Errorf("store: %s: %w", a.CategoryID, err)
			}
		}
	}
	return s.createSession(ctx, patient, note, assessments)
}

func (s *Store) createSession(ctx context.Context, patient, note string, imported []category.Assessment) (Session, error) {
	patient = strings.TrimSpace(patient)
	if patient == "" {
		return Session{}, errors.New("store: patient is required")
	}
	byID := make(map[string]category.Assessment, len(imported))
	for _, a := range imported {
		byID[a.CategoryID] = a
	}
	ts := now()
	sess := Session{
		ID:        newID(),
		Patient:   patient,
		Note:      strings.TrimSpace(note),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, patient, note, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			sess.ID, sess.Patient, sess.Note, formatTime(ts), formatTime(ts),
		); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		for _, c := range category.Registry() {
			params := category.DefaultParameters(c.ID)
			level := score.Aggregate(params)
			source := SourceSeed
			if a, ok := byID[c.ID]; ok {
				params = withBaselines(a.Parameters)
				level = a.Level
				source = SourceImport
			}
			if err := upsertLevel(ctx, tx, sess.ID, c.ID, level, source); err != nil {
				return err
			}
			if err := replaceParameters(ctx, tx, sess.ID, c.ID, params); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("store: create session: %w", err)
	}
	s.logger.Info("session created",
		zap.String("session", sess.ID),
		zap.String("patient", sess.Patient),
		zap.Int("imported", len(byID)))
	return sess, nil
}

// withBaselines copies params, giving any parameter without a baseline its
// current score as the baseline.
func withBaselines(in []category.ParameterScore) []category.ParameterScore {
	out := category.CloneParameters(in)
	for i := range out {
		if out[i].Baseline == nil {
			b := out[i].Score
			out[i].Baseline = &b
		}
	}
	return out
}

func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, patient, note, created_at, updated_at FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return Session{}, fmt.Errorf("store: get session %s: %w", id, err)
	}
	return sess, nil
}

// likeEscaper keeps LIKE wildcards typed by the user literal.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ResolveSession accepts a full id or a unique prefix of one, the way ids
// are typed at the command line.
func (s *Store) ResolveSession(ctx context.Context, ref string) (Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Session{}, fmt.Errorf("%w: empty id", ErrSessionNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, patient, note, created_at, updated_at FROM sessions WHERE id LIKE ? || '%' ESCAPE '\' LIMIT 2`,
		likeEscaper.Replace(ref))
	if err != nil {
		return Session{}, fmt.Errorf("store: resolve session: %w", err)
	}
	defer rows.Close()
	var found []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return Session{}, fmt.Errorf("store: resolve session: %w", err)
		}
		found = append(found, sess)
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("store: resolve session: %w", err)
	}
	switch len(found) {
	case 0:
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return Session{}, fmt.Errorf("%w: %q", ErrAmbiguousSession, ref)
	}
}

// LatestSession returns the most recently updated session.
func (s *Store) LatestSession(ctx context.Context) (Session, error) {
	sessions, err := s.ListSessions(ctx, 1)
	if err != nil {
		return Session{}, err
	}
	if len(sessions) == 0 {
		return Session{}, ErrSessionNotFound
	}
	return sessions[0], nil
}

func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, patient, note, created_at, updated_at FROM sessions ORDER BY updated_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list sessions: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete session %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete session %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.logger.Info("session deleted", zap.String("session", id))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var created, updated string
	if err := row.Scan(&sess.ID, &sess.Patient, &sess.Note, &created, &updated); err != nil {
		return Session{}, err
	}
	var err error
	if sess.CreatedAt, err = parseTime(created); err != nil {
		return Session{}, fmt.Errorf("parse created_at: %w", err)
	}
	if sess.UpdatedAt, err = parseTime(updated); err != nil {
		return Session{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return sess, nil
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func touchSession(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, formatTime(now()), id)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}
