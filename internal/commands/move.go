package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task to another board column",
		Long: `Move a task to another status column, the way dragging a card on the board
does. --index is the 0-based position within the target column; past the end
places the task last.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(runMove),
	}
	cmd.Flags().StringP("status", "s", "", "Target status: pending, in-progress, completed, deleted")
	cmd.Flags().IntP("index", "n", -1, "Position in the target column (default: last)")
	return cmd
}

func runMove(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()

	raw, _ := cmd.Flags().GetString("status")
	if raw == "" {
		return errors.New("--status is required")
	}
	status, err := models.ParseStatus(raw)
	if err != nil {
		return err
	}

	index, _ := cmd.Flags().GetInt("index")
	if index < 0 {
		tasks, err := st.Tasks(ctx)
		if err != nil {
			return err
		}
		index = len(tasks)
	}

	task, err := findTask(ctx, st, args[0])
	if err != nil {
		return err
	}
	if err := st.MoveTask(ctx, task.ID, status, index); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s to %s: %s\n", task.ID, status.Label(), task.Title)
	return nil
}
