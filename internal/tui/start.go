package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Start runs the chart program until the user quits.
func Start(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(NewModel(opts), programOpts...)
	_, err := program.Run()
	return err
}
