// Package tui provides the interactive terminal client.
// It uses Bubble Tea with a single input line, a scrollable log and a footer.
//
// File organization:
// - app.go: Entry point (Run function)
// - model.go: Model struct and message types
// - init.go: Model construction
// - input.go: Parsing the input line into a request
// - update.go: Event handling and state updates
// - view.go: Rendering and display logic
// - keys.go: Keyboard input handling
// - styles.go: Visual styling (colors, borders, etc.)
// - highlight.go: Code block rendering
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = prog.Run()
	return err
}
