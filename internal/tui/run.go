package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the monitor full screen until the user quits or ctx is done,
// and returns the monitor so callers can report its totals.
func Run(ctx context.Context, src Source, opts Options) (*Monitor, error) {
	if opts.Clipboard == nil {
		opts.Clipboard = CopyToClipboard
	}
	m := NewMonitor(ctx, src, opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	m.cancel()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return m, err
}
