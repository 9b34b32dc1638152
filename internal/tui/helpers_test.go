package tui

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/store"
)

type levelCall struct {
	sessionID  string
	categoryID string
	level      int
	source     store.Source
}

type paramsCall struct {
	sessionID  string
	categoryID string
	params     []category.ParameterScore
}

type fakeStore struct {
	sessions    map[string]store.Session
	assessments map[string][]category.Assessment
	levels      []levelCall
	params      []paramsCall
	saveErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:    map[string]store.Session{},
		assessments: map[string][]category.Assessment{},
	}
}

func (f *fakeStore) CreateSession(_ context.Context, patient, note string) (store.Session, error) {
	if patient == "" {
		return store.Session{}, errors.New("patient is required")
	}
	sess := store.Session{ID: "new-session-id", Patient: patient, Note: note}
	f.sessions[sess.ID] = sess
	f.assessments[sess.ID] = testAssessments(0)
	return sess, nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (store.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return store.Session{}, store.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeStore) LoadAssessments(_ context.Context, id string) ([]category.Assessment, error) {
	return category.CloneAssessments(f.assessments[id]), nil
}

func (f *fakeStore) SaveLevel(_ context.Context, sessionID, categoryID string, level int, source store.Source) error {
	f.levels = append(f.levels, levelCall{sessionID, categoryID, level, source})
	return f.saveErr
}

func (f *fakeStore) SaveParameters(_ context.Context, sessionID, categoryID string, params []category.ParameterScore) error {
	f.params = append(f.params, paramsCall{sessionID, categoryID, category.CloneParameters(params)})
	return f.saveErr
}

func testAssessments(level int) []category.Assessment {
	var out []category.Assessment
	for _, c := range category.Registry() {
		out = append(out, category.Assessment{
			CategoryID: c.ID,
			Level:      level,
			Parameters: category.DefaultParameters(c.ID),
		})
	}
	return out
}

// loadedModel returns a sized model showing a session where every category
// sits at level.
func loadedModel(t *testing.T, fs *fakeStore, level int) Model {
	t.Helper()
	sess := store.Session{ID: "session-1", Patient: "Ada"}
	fs.sessions[sess.ID] = sess
	fs.assessments[sess.ID] = testAssessments(level)

	m := NewModel(Options{Store: fs, SessionID: sess.ID, Mouse: true})
	m = update(t, m, tea.WindowSizeMsg{Width: 240, Height: 80})
	m, _ = drain(t, m, m.Init())
	if m.sessionID != sess.ID {
		t.Fatalf("expected session %s loaded, got %q", sess.ID, m.sessionID)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds every resulting message back into the model.
func press(t *testing.T, m Model, s string) (Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(key(s))
	return drain(t, next.(Model), cmd)
}

func click(t *testing.T, m Model, x, y int) (Model, []tea.Msg) {
	t.Helper()
	next, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return drain(t, next.(Model), cmd)
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// drain runs commands in order, unpacking batches and sequences, and applies
// each produced message to the model. Spinner ticks are dropped so the loop
// terminates.
func drain(t *testing.T, m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if msg == nil {
			continue
		}
		if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
			children := make([]tea.Cmd, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				children = append(children, v.Index(i).Interface().(tea.Cmd))
			}
			queue = append(children, queue...)
			continue
		}
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		if len(seen) > 100 {
			t.Fatalf("drain did not settle")
		}
		seen = append(seen, msg)
		updated, follow := m.Update(msg)
		m = updated.(Model)
		queue = append(queue, follow)
	}
	return m, seen
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
