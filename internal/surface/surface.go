// Package surface holds the interactive state of the radial chart: which
// segment is active, and how clicks and level adjustments resolve against
// the chart geometry.
package surface

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/severity"
)

// NeutralLevel is drawn for a registered category that has no assessment.
const NeutralLevel = 5

// EventKind says what an Event asks the owner to do.
type EventKind int

const (
	EventNone EventKind = iota
	// EventSelected reports a selection change; CategoryID is "" when cleared.
	EventSelected
	// EventAdjusted carries the full updated assessment array.
	EventAdjusted
	// EventOpenDetails asks the owner to open the detail editor.
	EventOpenDetails
)

// Event is the outcome of a surface interaction; the zero Event means nothing happened.
type Event struct {
	Kind        EventKind
	CategoryID  string
	Assessments []category.Assessment
}

// Surface is the selection state of the chart plus the assessments it draws.
type Surface struct {
	activeID    string
	assessments []category.Assessment
	rounded     bool
	logger      *zap.Logger
}

// New returns a surface with nothing selected. A nil logger is replaced by a no-op.
func New(rounded bool, logger *zap.Logger) Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Surface{rounded: rounded, logger: logger}
}

// ActiveID returns the selected category, or "" when nothing is selected.
func (s Surface) ActiveID() string {
	return s.activeID
}

func (s Surface) Rounded() bool {
	return s.rounded
}

// SetAssessments replaces the data the surface renders. Order of the input
// does not matter; display order always comes from the registry.
func (s *Surface) SetAssessments(in []category.Assessment) {
	for _, a := range in {
		category.MustLookup(a.CategoryID)
		severity.MustLevel(a.Level)
	}
	s.assessments = category.CloneAssessments(in)
}

// Assessments returns one assessment per registered category in display
// order, filling gaps with NeutralLevel.
func (s Surface) Assessments() []category.Assessment {
	byID := make(map[string]category.Assessment, len(s.assessments))
	for _, a := range s.assessments {
		byID[a.CategoryID] = a
	}
	out := make([]category.Assessment, 0, category.Count())
	for _, c := range category.Registry() {
		a, ok := byID[c.ID]
		if !ok {
			a = category.Assessment{CategoryID: c.ID, Level: NeutralLevel}
		}
		out = append(out, a.Clone())
	}
	return out
}

// Level returns the drawn level for id, NeutralLevel when none was supplied.
func (s Surface) Level(id string) int {
	category.MustLookup(id)
	for _, a := range s.assessments {
		if a.CategoryID == id {
			return a.Level
		}
	}
	return NeutralLevel
}

func (s Surface) levels() ([]int, []bool) {
	levels := make([]int, category.Count())
	fallback := make([]bool, category.Count())
	for i := range levels {
		levels[i] = NeutralLevel
		fallback[i] = true
	}
	for _, a := range s.assessments {
		i := category.Index(a.CategoryID)
		levels[i] = a.Level
		fallback[i] = false
	}
	for i, missing := range fallback {
		if missing {
			s.logger.Debug("assessment missing, drawing neutral level",
				zap.String("category", category.At(i).ID),
				zap.Int("level", NeutralLevel))
		}
	}
	return levels, fallback
}

// Select toggles the active segment: selecting the active category clears
// the selection, selecting any other replaces it.
func (s *Surface) Select(id string) Event {
	category.MustLookup(id)
	if s.activeID == id {
		s.activeID = ""
	} else {
		s.activeID = id
	}
	return Event{Kind: EventSelected, CategoryID: s.activeID}
}

// Deselect clears the selection. It reports no event when nothing was active.
func (s *Surface) Deselect() Event {
	if s.activeID == "" {
		return Event{}
	}
	s.activeID = ""
	return Event{Kind: EventSelected}
}

// Adjust moves the active category's level by one step. It is rejected for
// inactive categories and at the ends of the scale. On success the full
// updated array is returned for the owner in display order; the surface keeps
// rendering its current input until the owner supplies the new one. Only
// supplied assessments and the adjusted one appear, so categories still on
// the neutral fallback stay missing.
func (s Surface) Adjust(id string, delta int) Event {
	category.MustLookup(id)
	if delta != 1 && delta != -1 {
		panic(fmt.Sprintf("surface: adjust delta %d must be +1 or -1", delta))
	}
	if id != s.activeID {
		return Event{}
	}
	current := s.Level(id)
	next := severity.Clamp(current + delta)
	if next == current {
		return Event{}
	}
	byID := make(map[string]category.Assessment, len(s.assessments)+1)
	for _, a := range s.assessments {
		byID[a.CategoryID] = a
	}
	adjusted, ok := byID[id]
	if !ok {
		adjusted = category.Assessment{CategoryID: id}
	}
	adjusted.Level = next
	byID[id] = adjusted
	updated := make([]category.Assessment, 0, len(byID))
	for _, c := range category.Registry() {
		if a, ok := byID[c.ID]; ok {
			updated = append(updated, a.Clone())
		}
	}
	return Event{Kind: EventAdjusted, CategoryID: id, Assessments: updated}
}

// CanIncrement reports whether the increment button for id is enabled.
func (s Surface) CanIncrement(id string) bool {
	return id == s.activeID && s.Level(id) < severity.MaxLevel
}

// CanDecrement reports whether the decrement button for id is enabled.
func (s Surface) CanDecrement(id string) bool {
	return id == s.activeID && s.Level(id) > severity.MinLevel
}
