package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newSessionModel(t *testing.T, fs *fakeStore) Model {
	t.Helper()
	m := NewModel(Options{Store: fs})
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

// typeText feeds runes one key at a time. Cursor blink commands are dropped.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSessionFormCreatesSession(t *testing.T) {
	fs := newFakeStore()
	m := newSessionModel(t, fs)

	m = typeText(t, m, "Grace")
	if m.sessionForm.Patient() != "Grace" {
		t.Fatalf("expected patient Grace, got %q", m.sessionForm.Patient())
	}

	m, msgs := press(t, m, "enter")
	if len(msgs) != 0 || m.sessionForm.focus != sessionFieldNote {
		t.Fatalf("expected first enter to move to the note field")
	}

	m, msgs = press(t, m, "enter")
	loaded, ok := findMsg[SessionLoaded](msgs)
	if !ok || loaded.Err != nil {
		t.Fatalf("expected session loaded, got %+v", msgs)
	}
	if m.sessionID != "new-session-id" || m.session.Patient != "Grace" {
		t.Fatalf("unexpected session %+v", m.session)
	}
	if m.actionMode != ActionModeNone || m.sessionForm != nil {
		t.Fatalf("expected form closed after create")
	}
	if m.surface.Level("redness") != 0 {
		t.Fatalf("expected seeded level 0")
	}
}

func TestSessionFormRequiresPatient(t *testing.T) {
	m := newSessionModel(t, newFakeStore())

	m, msgs := press(t, m, "enter")
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %+v", msgs)
	}
	if m.sessionForm.err == "" {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(m.View(), "Patient name is required") {
		t.Fatalf("expected error in view")
	}

	m = typeText(t, m, "G")
	if m.sessionForm.err != "" {
		t.Fatalf("expected typing to clear the error")
	}
}

func TestSessionFormEscWithoutSessionQuits(t *testing.T) {
	m := newSessionModel(t, newFakeStore())
	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestSessionFormEscReturnsToChart(t *testing.T) {
	m := loadedModel(t, newFakeStore(), 2)
	m, _ = press(t, m, "n")
	if m.actionMode != ActionModeNewSession {
		t.Fatalf("expected new session form")
	}
	m, _ = press(t, m, "esc")
	if m.actionMode != ActionModeNone || m.sessionID != "session-1" {
		t.Fatalf("expected to return to the loaded session")
	}
}

func TestSessionFormTabTogglesFocus(t *testing.T) {
	m := newSessionModel(t, newFakeStore())
	m, _ = press(t, m, "tab")
	if m.sessionForm.focus != sessionFieldNote {
		t.Fatalf("expected note focused")
	}
	m = typeText(t, m, "follow-up")
	if m.sessionForm.Note() != "follow-up" || m.sessionForm.Patient() != "" {
		t.Fatalf("expected typing into note only")
	}
}
