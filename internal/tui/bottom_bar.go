package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jbonatakis/skinwell/internal/category"
	"github.com/jbonatakis/skinwell/internal/severity"
)

func RenderBottomBar(model Model) string {
	left := strings.Join(actionHints(model), " ")

	right := statusText(model)
	if model.pending > 0 {
		right = fmt.Sprintf("%s saving...", model.spinner.View())
	}

	contentWidth := model.windowWidth
	padding := 1
	if contentWidth > 0 {
		contentWidth = contentWidth - padding*2
		if contentWidth < 0 {
			contentWidth = 0
		}
	}
	bar := layoutBar(left, right, contentWidth)

	style := lipgloss.NewStyle().Reverse(true).Padding(0, padding)
	return style.Render(bar)
}

func actionHints(model Model) []string {
	switch model.actionMode {
	case ActionModeDetails:
		return []string{"[↑/↓]row", "[←/→]change", "[enter]expand", "[ctrl+s]save", "[x]cancel", "[esc]close"}
	case ActionModeNewSession:
		return []string{"[tab]field", "[enter]create", "[esc]back"}
	}
	actions := []string{
		"[←/→]select",
		"[+/-]adjust",
		"[d]etails",
		"[esc]clear",
		"[n]ew",
		"[q]uit",
	}
	if model.surface.ActiveID() == "" {
		actions = removeAction(actions, "[+/-]adjust")
		actions = removeAction(actions, "[d]etails")
		actions = removeAction(actions, "[esc]clear")
	}
	return actions
}

func statusText(model Model) string {
	if model.actionMode == ActionModeDetails && model.editor.IsOpen() {
		if model.editor.HasChanges() {
			return "unsaved changes"
		}
		return "no changes"
	}
	if id := model.surface.ActiveID(); id != "" {
		c := category.MustLookup(id)
		return fmt.Sprintf("%s: %s", c.Name, severity.Summary(model.surface.Level(id)))
	}
	if model.session.ID != "" {
		return model.session.Patient
	}
	return ""
}

func removeAction(actions []string, remove string) []string {
	filtered := make([]string, 0, len(actions))
	for _, action := range actions {
		if action == remove {
			continue
		}
		filtered = append(filtered, action)
	}
	return filtered
}

func layoutBar(left string, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := width - leftWidth - rightWidth
	if gap < 1 {
		availableLeft := width - rightWidth - 1
		if availableLeft < 0 {
			return truncate(right, width)
		}
		left = truncate(left, availableLeft)
		leftWidth = lipgloss.Width(left)
		gap = width - leftWidth - rightWidth
		if gap < 1 {
			gap = 1
		}
	}
	bar := left + strings.Repeat(" ", gap) + right
	return truncate(bar, width)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}

// truncateStyled cuts already styled text to a display width.
func truncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
