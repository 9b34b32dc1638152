package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/score"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	prev := now
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = prev })

	path := filepath.Join(t.TempDir(), "data", "skinwell.db")
	s, err := Open(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestCreateSessionSeedsEveryCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.CreateSession(ctx, "  Ada  ", "first visit")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Patient != "Ada" {
		t.Fatalf("expected trimmed patient, got %q", sess.Patient)
	}

	got, err := s.LoadAssessments(ctx, sess.ID)
	if err != nil {
		t.Fatalf("load assessments: %v", err)
	}
	if len(got) != category.Count() {
		t.Fatalf("expected %d assessments, got %d", category.Count(), len(got))
	}
	for i, a := range got {
		if a.CategoryID != category.At(i).ID {
			t.Fatalf("assessment %d: expected %s, got %s", i, category.At(i).ID, a.CategoryID)
		}
		want := category.DefaultParameters(a.CategoryID)
		if diff := cmp.Diff(want, a.Parameters); diff != "" {
			t.Fatalf("parameters for %s mismatch (-want +got):\n%s", a.CategoryID, diff)
		}
		if a.Level != score.Aggregate(want) {
			t.Fatalf("level for %s: expected %d, got %d", a.CategoryID, score.Aggregate(want), a.Level)
		}
	}

	history, err := s.LevelHistory(ctx, sess.ID, "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != category.Count() {
		t.Fatalf("expected one seed entry per category, got %d", len(history))
	}
	if history[0].Source != SourceSeed {
		t.Fatalf("expected seed source, got %s", history[0].Source)
	}
}

func TestCreateSessionRequiresPatient(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.CreateSession(context.Background(), "   ", ""); err == nil {
		t.Fatalf("expected error for blank patient")
	}
}

func TestGetSessionNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := s.LoadAssessments(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound from load, got %v", err)
	}
}

func TestSaveLevelUpdatesAndRecordsHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := s.SaveLevel(ctx, sess.ID, "pores", 9, SourceAdjust); err != nil {
		t.Fatalf("save level: %v", err)
	}
	if err := s.SaveLevel(ctx, sess.ID, "pores", 8, SourceEditor); err != nil {
		t.Fatalf("save level: %v", err)
	}

	got, err := s.LoadAssessments(ctx, sess.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[category.Index("pores")].Level != 8 {
		t.Fatalf("expected pores level 8, got %d", got[category.Index("pores")].Level)
	}

	history, err := s.LevelHistory(ctx, sess.ID, "pores")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var sources []Source
	var levels []int
	for _, h := range history {
		sources = append(sources, h.Source)
		levels = append(levels, h.Level)
	}
	if diff := cmp.Diff([]Source{SourceSeed, SourceAdjust, SourceEditor}, sources); diff != "" {
		t.Fatalf("sources mismatch (-want +got):\n%s", diff)
	}
	if levels[1] != 9 || levels[2] != 8 {
		t.Fatalf("unexpected levels %v", levels)
	}
	if !history[1].ChangedAt.Before(history[2].ChangedAt) {
		t.Fatalf("expected history in commit order")
	}
}

func TestSaveLevelRejectsBadInput(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := s.SaveLevel(ctx, sess.ID, "nope", 3, SourceAdjust); !errors.Is(err, category.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if err := s.SaveLevel(ctx, sess.ID, "pores", 11, SourceAdjust); err == nil {
		t.Fatalf("expected out of range error")
	}
	if err := s.SaveLevel(ctx, "missing", "pores", 3, SourceAdjust); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSaveParametersPreservesBaseline(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	params := category.DefaultParameters("redness")
	original := *params[0].Baseline
	params[0].Score = 4
	fake := 3
	params[0].Baseline = &fake
	params = append(params, category.ParameterScore{Key: "flushing", Label: "Flushing", Score: 2, MaxScale: 4})

	if err := s.SaveParameters(ctx, sess.ID, "redness", params); err != nil {
		t.Fatalf("save parameters: %v", err)
	}

	got, err := s.LoadAssessments(ctx, sess.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	stored := got[category.Index("redness")].Parameters
	if len(stored) != len(params) {
		t.Fatalf("expected %d parameters, got %d", len(params), len(stored))
	}
	if stored[0].Score != 4 {
		t.Fatalf("expected updated score 4, got %d", stored[0].Score)
	}
	if stored[0].Baseline == nil || *stored[0].Baseline != original {
		t.Fatalf("expected baseline %d to survive, got %v", original, stored[0].Baseline)
	}
	last := stored[len(stored)-1]
	if last.Key != "flushing" || last.Baseline == nil || *last.Baseline != 2 {
		t.Fatalf("expected new key to take its score as baseline, got %+v", last)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	first, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.CreateSession(ctx, "Grace", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := s.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// Touching the older session moves it to the front.
	if err := s.SaveLevel(ctx, first.ID, "texture", 2, SourceAdjust); err != nil {
		t.Fatalf("save: %v", err)
	}
	latest, err := s.LatestSession(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != first.ID {
		t.Fatalf("expected %s latest, got %s", first.ID, latest.ID)
	}
}

func TestLatestSessionEmpty(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LatestSession(context.Background()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestResolveSessionByPrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.ResolveSession(ctx, sess.ID[:8])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != sess.ID {
		t.Fatalf("expected %s, got %s", sess.ID, got.ID)
	}
	if _, err := s.ResolveSession(ctx, "zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestResolveSessionAmbiguousAndWildcards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ids := []string{"abc-1", "abc-2"}
	prev := newID
	newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	t.Cleanup(func() { newID = prev })

	for _, patient := range []string{"Ada", "Grace"} {
		if _, err := s.CreateSession(ctx, patient, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := s.ResolveSession(ctx, "abc"); !errors.Is(err, ErrAmbiguousSession) {
		t.Fatalf("expected ErrAmbiguousSession, got %v", err)
	}
	if _, err := s.ResolveSession(ctx, "%"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected wildcard to match nothing, got %v", err)
	}
	got, err := s.ResolveSession(ctx, "abc-2")
	if err != nil || got.Patient != "Grace" {
		t.Fatalf("expected Grace, got %+v (%v)", got, err)
	}
}

func TestImportSessionKeepsImportedValues(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	params := category.DefaultParameters("pores")
	params[0].Score = 4
	baseline := 2
	params[0].Baseline = &baseline
	params[1].Baseline = nil
	params[1].Score = 3

	sess, err := s.ImportSession(ctx, "Ada", "imported", []category.Assessment{
		{CategoryID: "pores", Level: 9, Parameters: params},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	got, err := s.LoadAssessments(ctx, sess.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != category.Count() {
		t.Fatalf("expected every category, got %d", len(got))
	}
	pores := got[category.Index("pores")]
	if pores.Level != 9 {
		t.Fatalf("expected imported level 9, got %d", pores.Level)
	}
	if *pores.Parameters[0].Baseline != 2 || *pores.Parameters[1].Baseline != 3 {
		t.Fatalf("unexpected baselines %d %d", *pores.Parameters[0].Baseline, *pores.Parameters[1].Baseline)
	}

	history, err := s.LevelHistory(ctx, sess.ID, "pores")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Source != SourceImport {
		t.Fatalf("expected one import entry, got %+v", history)
	}
	seeded, err := s.LevelHistory(ctx, sess.ID, "texture")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(seeded) != 1 || seeded[0].Source != SourceSeed {
		t.Fatalf("expected one seed entry, got %+v", seeded)
	}
}

func TestImportSessionRejectsBadInput(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if _, err := s.ImportSession(ctx, "Ada", "", []category.Assessment{{CategoryID: "pores", Level: 11}}); err == nil {
		t.Fatalf("expected level error")
	}
	bad := category.DefaultParameters("pores")
	bad[0].Score = 0
	if _, err := s.ImportSession(ctx, "Ada", "", []category.Assessment{{CategoryID: "pores", Level: 1, Parameters: bad}}); err == nil {
		t.Fatalf("expected parameter error")
	}
	sessions, err := s.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(sessions))
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, "Ada", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteSession(ctx, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on second delete, got %v", err)
	}
	history, err := s.LevelHistory(ctx, sess.ID, "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected history removed, got %d rows", len(history))
	}
}
