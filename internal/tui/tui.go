package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

// RunBoard starts the live board. The store subscription lives exactly as
// long as the program.
func RunBoard(ctx context.Context, st *store.Store, listID string) error {
	sub := st.Subscribe()
	defer sub.Close()

	p := tea.NewProgram(NewBoardModel(ctx, st, sub, listID), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	return nil
}

// RunComposer opens the create-task dialog. It returns the created task, or
// nil when the dialog was cancelled. A failed save is reported even when the
// dialog was left with esc afterwards.
func RunComposer(ctx context.Context, st *store.Store, draft Draft) (*models.Task, error) {
	p := tea.NewProgram(NewComposerModel(ctx, st, draft), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}

	m, ok := final.(ComposerModel)
	if !ok {
		return nil, nil
	}
	return m.Outcome()
}
