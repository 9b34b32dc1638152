package tui

import "github.com/charmbracelet/lipgloss"

// ActionOutput is the one-line result shown above the bottom bar.
type ActionOutput struct {
	Message string
	IsError bool
}

func RenderActionOutput(output *ActionOutput, width int) string {
	if output == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("46")) // green
	if output.IsError {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	}
	return style.Render(truncate(output.Message, width))
}
