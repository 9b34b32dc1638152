package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/severity"
)

const (
	modalMaxWidth = 76
	modalMinWidth = 44
	rowLabelWidth = 22
	// rowValueOffset is where slider cells and score dots start within a row.
	rowValueOffset = 2 + rowLabelWidth + 1

	closeIcon    = "[x]"
	saveButton   = "[ Save ]"
	cancelButton = "[ Cancel ]"
	buttonGap    = 2

	closeTooltip = "Save or cancel your changes before closing."
)

// DetailForm is the view state of the detail modal. Editing state lives in
// the model's editor.
type DetailForm struct {
	cursor      int
	showTooltip bool
}

func NewDetailForm() DetailForm {
	return DetailForm{}
}

type lineKind int

const (
	lineText lineKind = iota
	lineTitle
	lineSlider
	lineParam
	lineDescription
	lineButtons
)

type modalLine struct {
	text string
	kind lineKind
	row  int
}

type modalBox struct {
	left     int
	top      int
	boxWidth int
	width    int
	lines    []modalLine
}

func (b modalBox) height() int {
	return len(b.lines) + 2
}

// contentOrigin is the screen cell of the first content character, inside
// the border and horizontal padding.
func (b modalBox) contentOrigin() (int, int) {
	return b.left + 3, b.top + 1
}

func contentAreaHeight(m Model) int {
	h := m.windowHeight - 2
	if h < 1 {
		h = 1
	}
	return h
}

func detailLayout(m Model) modalBox {
	boxWidth := m.windowWidth - 2
	if boxWidth > modalMaxWidth {
		boxWidth = modalMaxWidth
	}
	if boxWidth < modalMinWidth {
		boxWidth = modalMinWidth
	}
	width := boxWidth - 6
	lines := detailLines(m, width)

	left := (m.windowWidth - boxWidth) / 2
	if left < 0 {
		left = 0
	}
	top := (contentAreaHeight(m) - (len(lines) + 2)) / 2
	if top < 0 {
		top = 0
	}
	return modalBox{left: left, top: top, boxWidth: boxWidth, width: width, lines: lines}
}

func detailLines(m Model, width int) []modalLine {
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	tooltipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	form := DetailForm{}
	if m.detailForm != nil {
		form = *m.detailForm
	}
	c := category.MustLookup(m.editor.CategoryID())
	level := m.editor.Level()
	band := severity.BandFor(level)
	dirty := m.editor.HasChanges()
	params := m.editor.Parameters()

	var lines []modalLine
	add := func(text string, kind lineKind, row int) {
		lines = append(lines, modalLine{text: truncateStyled(text, width), kind: kind, row: row})
	}
	marker := func(row int) string {
		if form.cursor == row {
			return cursorStyle.Render("› ")
		}
		return "  "
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Color)).Render(c.Name)
	iconStyle := textStyle
	if dirty {
		iconStyle = mutedStyle
	}
	gap := width - lipgloss.Width(c.Name) - len(closeIcon)
	if gap < 1 {
		gap = 1
	}
	add(title+strings.Repeat(" ", gap)+iconStyle.Render(closeIcon), lineTitle, 0)

	subtitle := lipgloss.NewStyle().Foreground(lipgloss.Color(band.Color)).Render(severity.Summary(level))
	if dirty {
		subtitle += mutedStyle.Render(" · unsaved changes")
	}
	add(subtitle, lineText, 0)
	add("", lineText, 0)

	slider := marker(0) + textStyle.Render(padRight("Overall level", rowLabelWidth)) + " " +
		sliderBar(level, band.Color) + "  " + textStyle.Render(fmt.Sprintf("%d/%d", level, severity.MaxLevel))
	add(slider, lineSlider, 0)
	add("", lineText, 0)

	if len(params) == 0 {
		add(mutedStyle.Render("No parameters recorded for this category."), lineText, 0)
	}
	for i, p := range params {
		row := i + 1
		text := marker(row) + textStyle.Render(padRight(truncate(p.Label, rowLabelWidth), rowLabelWidth)) + " " +
			scoreDots(p, c.Color) + "  " + mutedStyle.Render(severity.OptionLabel(p.Score, p.MaxScale))
		add(text, lineParam, row)
		if m.editor.ExpandedKey() == p.Key && p.Description != "" {
			wrapped := lipgloss.NewStyle().Width(width - 4).Render(p.Description)
			for _, dl := range strings.Split(wrapped, "\n") {
				add("    "+mutedStyle.Render(strings.TrimRight(dl, " ")), lineDescription, row)
			}
		}
	}

	add("", lineText, 0)
	saveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("69")).Bold(true)
	cancelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240"))
	add(saveStyle.Render(saveButton)+strings.Repeat(" ", buttonGap)+cancelStyle.Render(cancelButton), lineButtons, 0)
	// The tooltip row is always reserved so the box keeps its position.
	tooltip := ""
	if form.showTooltip {
		tooltip = tooltipStyle.Render(closeTooltip)
	}
	add(tooltip, lineText, 0)
	return lines
}

// sliderBar draws one cell per level 0..10 with a knob at the current level.
func sliderBar(level int, color string) string {
	filled := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	var b strings.Builder
	for k := severity.MinLevel; k <= severity.MaxLevel; k++ {
		switch {
		case k < level:
			b.WriteString(filled.Render("━"))
		case k == level:
			b.WriteString(filled.Bold(true).Render("●"))
		default:
			b.WriteString(empty.Render("─"))
		}
	}
	return b.String()
}

// scoreDots draws MaxScale dots separated by spaces, filled up to Score.
func scoreDots(p category.ParameterScore, color string) string {
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	parts := make([]string, 0, p.MaxScale)
	for j := 1; j <= p.MaxScale; j++ {
		if j <= p.Score {
			parts = append(parts, on.Render("●"))
		} else {
			parts = append(parts, off.Render("○"))
		}
	}
	return strings.Join(parts, " ")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func RenderDetailModal(m Model) string {
	if !m.editor.IsOpen() {
		return ""
	}
	box := detailLayout(m)
	c := category.MustLookup(m.editor.CategoryID())

	texts := make([]string, len(box.lines))
	for i, l := range box.lines {
		texts[i] = l.text
	}
	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Color)).
		Padding(0, 2).
		Width(box.boxWidth - 2).
		Render(strings.Join(texts, "\n"))

	area := contentAreaHeight(m)
	out := make([]string, 0, area)
	for i := 0; i < box.top; i++ {
		out = append(out, "")
	}
	indent := strings.Repeat(" ", box.left)
	for _, l := range strings.Split(rendered, "\n") {
		out = append(out, indent+l)
	}
	for len(out) < area {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

func HandleDetailKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.detailForm == nil || !m.editor.IsOpen() {
		return closeDetails(m), nil
	}
	form := *m.detailForm
	key := msg.String()
	if key != "esc" {
		form.showTooltip = false
	}
	params := m.editor.Parameters()
	m.detailForm = &form

	switch key {
	case "ctrl+s":
		return saveDetails(m)
	case "x":
		m.editor.Cancel()
		return closeDetails(m), nil
	case "esc":
		return attemptClose(m), nil
	case "up", "k", "shift+tab":
		if form.cursor > 0 {
			form.cursor--
		}
	case "down", "j", "tab":
		if form.cursor < len(params) {
			form.cursor++
		}
	case "left", "h", "-":
		stepRow(&m, form.cursor, params, -1)
	case "right", "l", "+", "=":
		stepRow(&m, form.cursor, params, 1)
	case "enter", " ":
		if form.cursor > 0 {
			m.editor.ToggleExpanded(params[form.cursor-1].Key)
		}
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			v := int(key[0] - '0')
			if form.cursor == 0 {
				_ = m.editor.SetLevel(v)
			} else {
				_ = m.editor.SetParameterScore(params[form.cursor-1].Key, v)
			}
		}
	}
	m.detailForm = &form
	return m, nil
}

// stepRow moves the slider or a parameter score by one. Parameter scores
// stop at their bounds instead of erroring.
func stepRow(m *Model, row int, params []category.ParameterScore, delta int) {
	if row == 0 {
		_ = m.editor.SetLevel(m.editor.Level() + delta)
		return
	}
	p := params[row-1]
	next := p.Score + delta
	if next < 1 || next > p.MaxScale {
		return
	}
	_ = m.editor.SetParameterScore(p.Key, next)
}

// HandleDetailClick resolves a press while the modal is open. Presses
// outside the box land on the backdrop.
func HandleDetailClick(m Model, x, y int) (Model, tea.Cmd) {
	if m.detailForm == nil || !m.editor.IsOpen() {
		return closeDetails(m), nil
	}
	box := detailLayout(m)
	if x < box.left || x >= box.left+box.boxWidth || y < box.top || y >= box.top+box.height() {
		return attemptClose(m), nil
	}
	ox, oy := box.contentOrigin()
	cx, cy := x-ox, y-oy
	if cy < 0 || cy >= len(box.lines) {
		return m, nil
	}

	form := *m.detailForm
	form.showTooltip = false
	m.detailForm = &form
	params := m.editor.Parameters()

	line := box.lines[cy]
	switch line.kind {
	case lineTitle:
		if cx >= box.width-len(closeIcon) && cx < box.width {
			return attemptClose(m), nil
		}
	case lineSlider:
		form.cursor = 0
		if k := cx - rowValueOffset; k >= severity.MinLevel && k <= severity.MaxLevel {
			_ = m.editor.SetLevel(k)
		}
	case lineParam, lineDescription:
		form.cursor = line.row
		p := params[line.row-1]
		j := cx - rowValueOffset
		if line.kind == lineParam && j >= 0 && j < 2*p.MaxScale-1 && j%2 == 0 {
			_ = m.editor.SetParameterScore(p.Key, j/2+1)
		} else {
			m.editor.ToggleExpanded(p.Key)
		}
	case lineButtons:
		cancelStart := len(saveButton) + buttonGap
		switch {
		case cx >= 0 && cx < len(saveButton):
			return saveDetails(m)
		case cx >= cancelStart && cx < cancelStart+len(cancelButton):
			m.editor.Cancel()
			return closeDetails(m), nil
		}
	}
	m.detailForm = &form
	return m, nil
}

// attemptClose handles the close icon, esc and the backdrop. It closes only
// when nothing changed; otherwise it shows the tooltip.
func attemptClose(m Model) Model {
	if m.editor.RequestClose() {
		return closeDetails(m)
	}
	if m.detailForm != nil {
		form := *m.detailForm
		form.showTooltip = true
		m.detailForm = &form
	}
	return m
}

func closeDetails(m Model) Model {
	m.actionMode = ActionModeNone
	m.detailForm = nil
	return m
}

// saveDetails sends the level message only when the level changed, then the
// details message, in that order.
func saveDetails(m Model) (Model, tea.Cmd) {
	commit, err := m.editor.Save()
	if err != nil {
		return closeDetails(m), nil
	}
	m = closeDetails(m)
	cmds := make([]tea.Cmd, 0, 2)
	if commit.LevelChanged {
		cmds = append(cmds, emit(LevelCommittedMsg{CategoryID: commit.CategoryID, Level: commit.Level}))
	}
	cmds = append(cmds, emit(DetailsCommittedMsg{CategoryID: commit.CategoryID, Parameters: commit.Parameters}))
	return m, tea.Sequence(cmds...)
}
