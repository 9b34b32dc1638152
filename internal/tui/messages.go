package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/store"
	"github.com/jbonatakis/skinwell/internal/surface"
)

const persistTimeout = 5 * time.Second

// SegmentSelectedMsg reports a chart selection change. CategoryID is empty
// when the selection was cleared.
type SegmentSelectedMsg struct {
	CategoryID string
}

// LevelAdjustedMsg carries the full assessment array after a +/- control
// changed one level. The chart does not keep it; the model applies it.
type LevelAdjustedMsg struct {
	CategoryID  string
	Assessments []category.Assessment
}

// ViewDetailsMsg asks the model to open the detail editor.
type ViewDetailsMsg struct {
	CategoryID string
}

// LevelCommittedMsg is sent on save only when the saved level differs from
// the level the editor opened with.
type LevelCommittedMsg struct {
	CategoryID string
	Level      int
}

// DetailsCommittedMsg is sent exactly once per save.
type DetailsCommittedMsg struct {
	CategoryID string
	Parameters []category.ParameterScore
}

type SessionLoaded struct {
	Session     store.Session
	Assessments []category.Assessment
	Err         error
}

type PersistComplete struct {
	Action     string
	CategoryID string
	Err        error
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// eventCmd turns a chart event into the message the model reacts to.
func eventCmd(ev surface.Event) tea.Cmd {
	switch ev.Kind {
	case surface.EventSelected:
		return emit(SegmentSelectedMsg{CategoryID: ev.CategoryID})
	case surface.EventAdjusted:
		return emit(LevelAdjustedMsg{CategoryID: ev.CategoryID, Assessments: ev.Assessments})
	case surface.EventOpenDetails:
		return emit(ViewDetailsMsg{CategoryID: ev.CategoryID})
	default:
		return nil
	}
}

func LoadSessionCmd(st Store, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		sess, err := st.GetSession(ctx, sessionID)
		if err != nil {
			return SessionLoaded{Err: err}
		}
		assessments, err := st.LoadAssessments(ctx, sessionID)
		return SessionLoaded{Session: sess, Assessments: assessments, Err: err}
	}
}

func CreateSessionCmd(st Store, patient, note string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		sess, err := st.CreateSession(ctx, patient, note)
		if err != nil {
			return SessionLoaded{Err: err}
		}
		assessments, err := st.LoadAssessments(ctx, sess.ID)
		return SessionLoaded{Session: sess, Assessments: assessments, Err: err}
	}
}

func SaveLevelCmd(st Store, sessionID, categoryID string, level int, source store.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := st.SaveLevel(ctx, sessionID, categoryID, level, source)
		return PersistComplete{Action: "save level", CategoryID: categoryID, Err: err}
	}
}

func SaveParametersCmd(st Store, sessionID, categoryID string, params []category.ParameterScore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		err := st.SaveParameters(ctx, sessionID, categoryID, params)
		return PersistComplete{Action: "save details", CategoryID: categoryID, Err: err}
	}
}
