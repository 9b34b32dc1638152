package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionField int

const (
	sessionFieldPatient sessionField = iota
	sessionFieldNote
)

// SessionForm collects the patient name and an optional note for a new
// visit.
type SessionForm struct {
	patient textinput.Model
	note    textinput.Model
	focus   sessionField
	err     string
	width   int
	height  int
}

func NewSessionForm() SessionForm {
	patient := textinput.New()
	patient.Placeholder = "Patient name"
	patient.CharLimit = 120
	patient.Width = 40
	patient.Focus()

	note := textinput.New()
	note.Placeholder = "Visit note (optional)"
	note.CharLimit = 500
	note.Width = 40

	return SessionForm{
		patient: patient,
		note:    note,
		focus:   sessionFieldPatient,
		width:   80,
		height:  24,
	}
}

func (f *SessionForm) SetSize(width, height int) {
	f.width = width
	f.height = height

	fieldWidth := width - 20
	if fieldWidth > 60 {
		fieldWidth = 60
	}
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	f.patient.Width = fieldWidth
	f.note.Width = fieldWidth
}

func (f *SessionForm) toggleFocus() {
	if f.focus == sessionFieldPatient {
		f.focus = sessionFieldNote
		f.patient.Blur()
		f.note.Focus()
		return
	}
	f.focus = sessionFieldPatient
	f.note.Blur()
	f.patient.Focus()
}

func (f SessionForm) Patient() string {
	return strings.TrimSpace(f.patient.Value())
}

func (f SessionForm) Note() string {
	return strings.TrimSpace(f.note.Value())
}

func (f SessionForm) Update(msg tea.Msg) (SessionForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == sessionFieldPatient {
		f.patient, cmd = f.patient.Update(msg)
	} else {
		f.note, cmd = f.note.Update(msg)
	}
	return f, cmd
}

func HandleSessionKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.sessionForm == nil {
		m.actionMode = ActionModeNone
		return m, nil
	}
	form := *m.sessionForm

	switch msg.String() {
	case "esc":
		// With no session loaded there is nothing to go back to.
		if m.sessionID == "" {
			return m, tea.Quit
		}
		m.sessionForm = nil
		m.actionMode = ActionModeNone
		return m, nil
	case "tab", "shift+tab", "up", "down":
		form.toggleFocus()
		m.sessionForm = &form
		return m, nil
	case "enter":
		if form.focus == sessionFieldPatient && form.Note() == "" && form.Patient() != "" {
			form.toggleFocus()
			m.sessionForm = &form
			return m, nil
		}
		if form.Patient() == "" {
			form.err = "Patient name is required"
			m.sessionForm = &form
			return m, nil
		}
		if m.store == nil {
			form.err = "No store configured"
			m.sessionForm = &form
			return m, nil
		}
		form.err = ""
		m.sessionForm = &form
		return m, CreateSessionCmd(m.store, form.Patient(), form.Note())
	}

	updated, cmd := form.Update(msg)
	updated.err = ""
	m.sessionForm = &updated
	return m, cmd
}

func RenderSessionModal(m Model) string {
	if m.sessionForm == nil {
		return ""
	}
	form := *m.sessionForm
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	lines := []string{
		titleStyle.Render("New visit"),
		"",
		labelStyle.Render("Patient"),
		form.patient.View(),
		"",
		labelStyle.Render("Note"),
		form.note.View(),
	}
	if form.err != "" {
		lines = append(lines, "", errorStyle.Render(form.err))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("69")).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.windowWidth, contentAreaHeight(m), lipgloss.Center, lipgloss.Center, box)
}
