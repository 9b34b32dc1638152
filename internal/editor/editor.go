// Package editor implements the category detail editor: a small state
// machine that edits one category's parameter scores on a working copy and
// only lets go of that copy through Save, Cancel, or a clean close.
package editor

import (
	"errors"
	"fmt"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/score"
	"github.com/jbonatakis/skinwell/internal/severity"
)

type State int

const (
	StateClosed State = iota
	StateEditing
	StateSaved
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSaved:
		return "saved"
	case StateCancelled:
		return "cancelled"
	default:
		return "closed"
	}
}

var (
	ErrNotOpen         = errors.New("editor is not open")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrScoreOutOfRange = errors.New("score out of range")
)

// Snapshot is the state taken when the editor opens. It is never modified.
type Snapshot struct {
	Level      int
	Parameters []category.ParameterScore
}

// Commit is what Save hands back to the owner.
type Commit struct {
	CategoryID string
	Level      int
	// LevelChanged is false when the saved level equals the snapshot level;
	// owners skip the level callback in that case.
	LevelChanged bool
	Parameters   []category.ParameterScore
}

type Editor struct {
	state       State
	outcome     State
	categoryID  string
	snapshot    Snapshot
	level       int
	params      []category.ParameterScore
	expandedKey string
}

func (e *Editor) State() State {
	return e.state
}

func (e *Editor) IsOpen() bool {
	return e.state == StateEditing
}

func (e *Editor) CategoryID() string {
	return e.categoryID
}

// Level is the working aggregate level.
func (e *Editor) Level() int {
	return e.level
}

func (e *Editor) Parameters() []category.ParameterScore {
	return category.CloneParameters(e.params)
}

func (e *Editor) Snapshot() Snapshot {
	return Snapshot{Level: e.snapshot.Level, Parameters: category.CloneParameters(e.snapshot.Parameters)}
}

// ExpandedKey is the parameter whose description is shown, or "".
func (e *Editor) ExpandedKey() string {
	return e.expandedKey
}

// Open starts editing a category. The incoming assessment is copied twice:
// once into the snapshot and once into the working state.
func (e *Editor) Open(categoryID string, a category.Assessment) {
	category.MustLookup(categoryID)
	severity.MustLevel(a.Level)
	if a.CategoryID != "" && a.CategoryID != categoryID {
		panic(fmt.Sprintf("editor: assessment for %q opened as %q", a.CategoryID, categoryID))
	}
	*e = Editor{
		state:      StateEditing,
		categoryID: categoryID,
		snapshot:   Snapshot{Level: a.Level, Parameters: category.CloneParameters(a.Parameters)},
		level:      a.Level,
		params:     category.CloneParameters(a.Parameters),
	}
}

// SetParameterScore replaces one parameter's score and re-derives the
// working level from the parameters. A parameter edit always overwrites a
// manual level set through SetLevel.
func (e *Editor) SetParameterScore(key string, value int) error {
	if e.state != StateEditing {
		return ErrNotOpen
	}
	for i := range e.params {
		if e.params[i].Key != key {
			continue
		}
		if value < 1 || value > e.params[i].MaxScale {
			return fmt.Errorf("%w: %s=%d (1..%d)", ErrScoreOutOfRange, key, value, e.params[i].MaxScale)
		}
		e.params[i].Score = value
		e.level = score.Aggregate(e.params)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownParam, key)
}

// SetLevel is the coarse manual override. It clamps to [0,10] and never
// touches the parameters, so the working level may disagree with what the
// parameters aggregate to. Do not "fix" this by writing back into the
// parameters: the divergence is the point of the override.
func (e *Editor) SetLevel(level int) error {
	if e.state != StateEditing {
		return ErrNotOpen
	}
	e.level = severity.Clamp(level)
	return nil
}

// ToggleExpanded shows or hides a parameter's description. It is UI state
// only and never makes the editor dirty.
func (e *Editor) ToggleExpanded(key string) {
	if e.expandedKey == key {
		e.expandedKey = ""
		return
	}
	e.expandedKey = key
}

// HasChanges compares the working state with the snapshot: the level, the
// number of parameters, and each parameter's score by position.
func (e *Editor) HasChanges() bool {
	if e.state != StateEditing {
		return false
	}
	if e.level != e.snapshot.Level {
		return true
	}
	if len(e.params) != len(e.snapshot.Parameters) {
		return true
	}
	for i := range e.params {
		if e.params[i].Score != e.snapshot.Parameters[i].Score {
			return true
		}
	}
	return false
}

// RequestClose handles the close icon and backdrop. It is refused while the
// editor has changes; otherwise it behaves like Cancel.
func (e *Editor) RequestClose() bool {
	if e.state != StateEditing || e.HasChanges() {
		return false
	}
	e.Cancel()
	return true
}

// Save ends the session and returns the working state for the owner.
func (e *Editor) Save() (Commit, error) {
	if e.state != StateEditing {
		return Commit{}, ErrNotOpen
	}
	c := Commit{
		CategoryID:   e.categoryID,
		Level:        e.level,
		LevelChanged: e.level != e.snapshot.Level,
		Parameters:   category.CloneParameters(e.params),
	}
	e.reset(StateSaved)
	return c, nil
}

// Cancel discards the working copy. Nothing outside the editor was touched
// while editing, so there is nothing to restore.
func (e *Editor) Cancel() {
	if e.state != StateEditing {
		return
	}
	e.reset(StateCancelled)
}

// reset drops all session state and settles in Closed, remembering how the
// session ended.
func (e *Editor) reset(outcome State) {
	*e = Editor{state: StateClosed, outcome: outcome}
}

// Outcome reports how the last session ended: StateSaved, StateCancelled,
// or StateClosed if no session has ended yet.
func (e *Editor) Outcome() State {
	return e.outcome
}
