package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/score"
)

func testAssessment() category.Assessment {
	params := category.DefaultParameters("redness")
	params[0].Score = 3
	params[1].Score = 2
	return category.Assessment{
		CategoryID: "redness",
		Level:      score.Aggregate(params),
		Parameters: params,
	}
}

func openEditor(t *testing.T) (*Editor, category.Assessment) {
	t.Helper()
	a := testAssessment()
	e := &Editor{}
	e.Open("redness", a)
	if !e.IsOpen() {
		t.Fatalf("expected editor to be open")
	}
	return e, a
}

func TestOpenTakesSnapshot(t *testing.T) {
	e, a := openEditor(t)
	if e.HasChanges() {
		t.Fatalf("expected fresh editor to be clean")
	}
	if diff := cmp.Diff(a.Parameters, e.Snapshot().Parameters); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if e.Level() != a.Level {
		t.Fatalf("expected working level %d, got %d", a.Level, e.Level())
	}

	// Mutating the caller's copy after Open must not reach the editor.
	a.Parameters[0].Score = 4
	if e.Parameters()[0].Score == 4 {
		t.Fatalf("editor shares parameter storage with caller")
	}
}

func TestOpenResetsExpandedState(t *testing.T) {
	e, a := openEditor(t)
	e.ToggleExpanded("papules")
	e.Open("redness", a)
	if e.ExpandedKey() != "" {
		t.Fatalf("expected expanded state reset on open, got %q", e.ExpandedKey())
	}
}

func TestParameterEditSyncsLevel(t *testing.T) {
	e, _ := openEditor(t)
	if err := e.SetParameterScore("papules", 4); err != nil {
		t.Fatalf("set score: %v", err)
	}
	want := score.Aggregate(e.Parameters())
	if e.Level() != want {
		t.Fatalf("expected live aggregate %d, got %d", want, e.Level())
	}
	if !e.HasChanges() {
		t.Fatalf("expected changes after parameter edit")
	}
}

func TestParameterEditOverridesManualLevel(t *testing.T) {
	e, _ := openEditor(t)
	_ = e.SetLevel(9)
	_ = e.SetParameterScore("pustules", 2)
	if e.Level() != score.Aggregate(e.Parameters()) {
		t.Fatalf("expected parameter edit to win over manual level, got %d", e.Level())
	}
}

func TestManualLevelDoesNotTouchParameters(t *testing.T) {
	e, a := openEditor(t)
	if err := e.SetLevel(14); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if e.Level() != 10 {
		t.Fatalf("expected level clamped to 10, got %d", e.Level())
	}
	if diff := cmp.Diff(a.Parameters, e.Parameters()); diff != "" {
		t.Fatalf("manual level changed parameters (-want +got):\n%s", diff)
	}
	_ = e.SetLevel(-4)
	if e.Level() != 0 {
		t.Fatalf("expected level clamped to 0, got %d", e.Level())
	}
}

func TestSetParameterScoreErrors(t *testing.T) {
	e, _ := openEditor(t)
	if err := e.SetParameterScore("nope", 2); !errors.Is(err, ErrUnknownParam) {
		t.Fatalf("expected ErrUnknownParam, got %v", err)
	}
	if err := e.SetParameterScore("papules", 5); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if e.HasChanges() {
		t.Fatalf("rejected edits must not dirty the editor")
	}
}

func TestRevertingEditIsClean(t *testing.T) {
	e, a := openEditor(t)
	_ = e.SetParameterScore("diffuse-redness", 1)
	_ = e.SetParameterScore("diffuse-redness", a.Parameters[0].Score)
	if e.HasChanges() {
		t.Fatalf("expected editor clean after reverting the only edit")
	}
}

func TestExpandDoesNotDirty(t *testing.T) {
	e, _ := openEditor(t)
	e.ToggleExpanded("papules")
	if e.ExpandedKey() != "papules" || e.HasChanges() {
		t.Fatalf("expanding a parameter must not count as a change")
	}
	e.ToggleExpanded("papules")
	if e.ExpandedKey() != "" {
		t.Fatalf("expected toggle to collapse")
	}
}

func TestRequestCloseGatedWhileDirty(t *testing.T) {
	e, _ := openEditor(t)
	_ = e.SetLevel(8)
	if e.RequestClose() {
		t.Fatalf("expected close to be refused while dirty")
	}
	if !e.IsOpen() {
		t.Fatalf("expected editor to stay open")
	}
}

func TestRequestCloseWhenClean(t *testing.T) {
	e, _ := openEditor(t)
	if !e.RequestClose() {
		t.Fatalf("expected clean editor to close")
	}
	if e.State() != StateClosed || e.Outcome() != StateCancelled {
		t.Fatalf("expected closed/cancelled, got %s/%s", e.State(), e.Outcome())
	}
}

func TestSaveCommitsWorkingState(t *testing.T) {
	e, a := openEditor(t)
	_ = e.SetParameterScore("papules", 4)
	wantLevel := e.Level()

	c, err := e.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.CategoryID != "redness" || c.Level != wantLevel {
		t.Fatalf("unexpected commit %+v", c)
	}
	if c.LevelChanged != (wantLevel != a.Level) {
		t.Fatalf("expected LevelChanged=%v", wantLevel != a.Level)
	}
	if c.Parameters[2].Score != 4 {
		t.Fatalf("expected papules score 4 in commit")
	}
	if e.IsOpen() || e.Outcome() != StateSaved {
		t.Fatalf("expected editor closed after save")
	}
	if _, err := e.Save(); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen on second save, got %v", err)
	}
}

func TestSaveWithoutLevelChange(t *testing.T) {
	e, _ := openEditor(t)
	c, err := e.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.LevelChanged {
		t.Fatalf("expected LevelChanged=false for untouched level")
	}
}

func TestCancelDiscardsWorkingCopy(t *testing.T) {
	e, a := openEditor(t)
	before := a.Clone()
	_ = e.SetParameterScore("papules", 4)
	_ = e.SetLevel(10)
	e.Cancel()

	if e.IsOpen() || e.Outcome() != StateCancelled {
		t.Fatalf("expected cancelled and closed")
	}
	if diff := cmp.Diff(before, a); diff != "" {
		t.Fatalf("cancel changed the caller's assessment (-want +got):\n%s", diff)
	}

	// The next session starts from a fresh snapshot.
	e.Open("redness", a)
	if e.HasChanges() || e.Level() != a.Level {
		t.Fatalf("expected fresh snapshot after reopen")
	}
}

func TestOpenRejectsMismatchedAssessment(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for mismatched category")
		}
	}()
	e := &Editor{}
	e.Open("pores", category.Assessment{CategoryID: "redness", Level: 2})
}

func TestEditsRequireOpenEditor(t *testing.T) {
	e := &Editor{}
	if err := e.SetLevel(3); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	if err := e.SetParameterScore("a", 1); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
	if e.RequestClose() {
		t.Fatalf("closed editor cannot be closed again")
	}
}
