package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
    zone "github.com/lrstanley/bubblezone"

	"commas/internal/system"
	"commas/internal/ui"
)

// Start runs the TUI program and returns any error.
func Start() error {
	// The TUI owns the terminal, so logs go to commas.log.
	if c, err := system.LogToFile(); err == nil {
		defer c.Close()
	}
	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	m, err := ui.InitialModel()
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if c, ok := final.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	if err != nil {
		return err
	}
	if e, ok := final.(interface{ Err() error }); ok {
		return e.Err()
	}
	return nil
}

// Main is a helper to use as entry-point from cmd.
func Main() {
	if err := Start(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
