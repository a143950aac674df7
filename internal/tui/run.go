package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// Run starts the program over s and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, s *store.Store, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
		// Click rows are computed from screen coordinates, which only line up
		// with the view in the alternate screen.
		if opts.Mouse {
			progOpts = append(progOpts, tea.WithMouseCellMotion())
		}
	}

	p := tea.NewProgram(New(s, opts), progOpts...)

	// Changes made outside Update (e.g. other goroutines holding the store)
	// still reach the view. Send blocks until the loop reads it, so it must
	// not run on the loop's own goroutine.
	unsubscribe := s.Subscribe(func(store.Action, []model.Item) {
		go p.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	opts.Logger.Debug().Int("items", s.Len()).Msg("starting tui")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	opts.Logger.Debug().Int("items", s.Len()).Msg("tui stopped")
	return nil
}
