package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/editor"
	"github.com/jbonatakis/skinwell/internal/store"
	"github.com/jbonatakis/skinwell/internal/surface"
)

// Store is the persistence the model writes committed changes to.
type Store interface {
	CreateSession(ctx context.Context, patient, note string) (store.Session, error)
	GetSession(ctx context.Context, id string) (store.Session, error)
	LoadAssessments(ctx context.Context, sessionID string) ([]category.Assessment, error)
	SaveLevel(ctx context.Context, sessionID, categoryID string, level int, source store.Source) error
	SaveParameters(ctx context.Context, sessionID, categoryID string, params []category.ParameterScore) error
}

type ActionMode int

const (
	ActionModeNone ActionMode = iota
	ActionModeDetails
	ActionModeNewSession
)

type Options struct {
	Store     Store
	SessionID string
	Rounded   bool
	Mouse     bool
	Logger    *zap.Logger
}

type Model struct {
	store        Store
	logger       *zap.Logger
	session      store.Session
	sessionID    string
	assessments  []category.Assessment
	surface      surface.Surface
	editor       editor.Editor
	actionMode   ActionMode
	detailForm   *DetailForm
	sessionForm  *SessionForm
	actionOutput *ActionOutput
	pending      int
	spinner      spinner.Model
	mouse        bool
	windowWidth  int
	windowHeight int
}

// NewModel starts on the given session, or on the new-session form when
// opts.SessionID is empty.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		store:     opts.Store,
		logger:    logger,
		sessionID: opts.SessionID,
		surface:   surface.New(opts.Rounded, logger),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Line)),
		mouse:     opts.Mouse,
	}
	if opts.SessionID == "" {
		form := NewSessionForm()
		m.sessionForm = &form
		m.actionMode = ActionModeNewSession
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.sessionID != "" && m.store != nil {
		return LoadSessionCmd(m.store, m.sessionID)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = typed.Width
		m.windowHeight = typed.Height
		if m.sessionForm != nil {
			m.sessionForm.SetSize(typed.Width, typed.Height)
		}
		return m, nil
	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case SessionLoaded:
		if typed.Err != nil {
			m.logger.Warn("session load failed", zap.Error(typed.Err))
			m.actionOutput = &ActionOutput{Message: fmt.Sprintf("Session load failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		m.session = typed.Session
		m.sessionID = typed.Session.ID
		m.assessments = category.CloneAssessments(typed.Assessments)
		m.surface = surface.New(m.surface.Rounded(), m.logger)
		m.surface.SetAssessments(m.assessments)
		m.editor = editor.Editor{}
		m.detailForm = nil
		m.sessionForm = nil
		m.actionMode = ActionModeNone
		m.logger.Info("session loaded", zap.String("session", m.sessionID), zap.Int("assessments", len(m.assessments)))
		return m, nil
	case SegmentSelectedMsg:
		m.logger.Debug("segment selected", zap.String("category", typed.CategoryID))
		return m, nil
	case LevelAdjustedMsg:
		m.assessments = category.CloneAssessments(typed.Assessments)
		m.surface.SetAssessments(m.assessments)
		level := m.surface.Level(typed.CategoryID)
		m.logger.Info("level adjusted", zap.String("category", typed.CategoryID), zap.Int("level", level))
		return m.persist(func(st Store, sid string) tea.Cmd {
			return SaveLevelCmd(st, sid, typed.CategoryID, level, store.SourceAdjust)
		})
	case ViewDetailsMsg:
		return m.openDetails(typed.CategoryID), nil
	case LevelCommittedMsg:
		a := m.assessmentFor(typed.CategoryID)
		a.Level = typed.Level
		m.assessments = upsertAssessment(m.assessments, a)
		m.surface.SetAssessments(m.assessments)
		m.logger.Info("level committed", zap.String("category", typed.CategoryID), zap.Int("level", typed.Level))
		return m.persist(func(st Store, sid string) tea.Cmd {
			return SaveLevelCmd(st, sid, typed.CategoryID, typed.Level, store.SourceEditor)
		})
	case DetailsCommittedMsg:
		a := m.assessmentFor(typed.CategoryID)
		a.Parameters = category.CloneParameters(typed.Parameters)
		m.assessments = upsertAssessment(m.assessments, a)
		m.surface.SetAssessments(m.assessments)
		m.logger.Info("details committed", zap.String("category", typed.CategoryID), zap.Int("parameters", len(typed.Parameters)))
		params := category.CloneParameters(typed.Parameters)
		return m.persist(func(st Store, sid string) tea.Cmd {
			return SaveParametersCmd(st, sid, typed.CategoryID, params)
		})
	case PersistComplete:
		if m.pending > 0 {
			m.pending--
		}
		if typed.Err != nil {
			m.logger.Error("persist failed", zap.String("action", typed.Action), zap.String("category", typed.CategoryID), zap.Error(typed.Err))
			m.actionOutput = &ActionOutput{Message: fmt.Sprintf("%s failed: %v", typed.Action, typed.Err), IsError: true}
		}
		return m, nil
	case tea.MouseMsg:
		if !m.mouse || typed.Action != tea.MouseActionPress || typed.Button != tea.MouseButtonLeft {
			return m, nil
		}
		switch m.actionMode {
		case ActionModeDetails:
			return HandleDetailClick(m, typed.X, typed.Y)
		case ActionModeNone:
			return m.handleChartClick(typed.X, typed.Y)
		}
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.actionMode {
		case ActionModeDetails:
			return HandleDetailKey(m, typed)
		case ActionModeNewSession:
			return HandleSessionKey(m, typed)
		}
		// Any key acknowledges the last action output.
		m.actionOutput = nil
		return m.handleChartKey(typed.String())
	}
	return m, nil
}

// persist runs a store write when a session is attached and starts the
// spinner for the first write in flight.
func (m Model) persist(build func(st Store, sessionID string) tea.Cmd) (Model, tea.Cmd) {
	if m.store == nil || m.sessionID == "" {
		return m, nil
	}
	cmds := []tea.Cmd{build(m.store, m.sessionID)}
	if m.pending == 0 {
		cmds = append(cmds, m.spinner.Tick)
	}
	m.pending++
	return m, tea.Batch(cmds...)
}

// assessmentFor returns the stored assessment, or the neutral fallback the
// chart draws for a category nothing was stored for.
func (m Model) assessmentFor(id string) category.Assessment {
	for _, a := range m.assessments {
		if a.CategoryID == id {
			return a.Clone()
		}
	}
	return category.Assessment{CategoryID: id, Level: m.surface.Level(id)}
}

func upsertAssessment(in []category.Assessment, a category.Assessment) []category.Assessment {
	out := category.CloneAssessments(in)
	for i := range out {
		if out[i].CategoryID == a.CategoryID {
			out[i] = a
			return out
		}
	}
	return append(out, a)
}

func (m Model) openDetails(id string) Model {
	if m.actionMode != ActionModeNone {
		return m
	}
	m.editor.Open(id, m.assessmentFor(id))
	form := NewDetailForm()
	m.detailForm = &form
	m.actionMode = ActionModeDetails
	m.logger.Debug("details opened", zap.String("category", id))
	return m
}

func (m Model) View() string {
	if m.windowWidth <= 0 || m.windowHeight <= 0 {
		return ""
	}
	if m.windowHeight < minChartHeight {
		return RenderBottomBar(m)
	}

	var content string
	switch m.actionMode {
	case ActionModeDetails:
		content = RenderDetailModal(m)
	case ActionModeNewSession:
		content = RenderSessionModal(m)
	default:
		content = m.renderChartView()
	}
	return content + "\n" + RenderBottomBar(m)
}
