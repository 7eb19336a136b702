package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			task, err := setStatus(cmd, st, args[0], models.StatusCompleted)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task %s as done: %s\n", task.ID, task.Title)
			return nil
		}),
	}
}

func newUndoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undone <task-id>",
		Short: "Mark a completed task back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			task, err := setStatus(cmd, st, args[0], models.StatusPending)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task %s back to pending: %s\n", task.ID, task.Title)
			return nil
		}),
	}
}

func setStatus(cmd *cobra.Command, st *store.Store, id string, status models.Status) (models.Task, error) {
	ctx := cmd.Context()
	task, err := findTask(ctx, st, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := st.UpdateTask(ctx, id, store.Fields{models.FieldStatus: status}); err != nil {
		return models.Task{}, err
	}
	task.Status = status
	return task, nil
}
