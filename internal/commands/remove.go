package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task permanently. With --soft the task is only marked as deleted
and stays visible in the board's Deleted column and in 'agenda ls --all'.`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(runRemove),
	}
	cmd.Flags().Bool("soft", false, "Mark as deleted instead of removing")
	return cmd
}

func runRemove(cmd *cobra.Command, args []string, st *store.Store) error {
	out := cmd.OutOrStdout()

	if soft, _ := cmd.Flags().GetBool("soft"); soft {
		task, err := setStatus(cmd, st, args[0], models.StatusDeleted)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "🗃️  Marked task %s as deleted: %s\n", task.ID, task.Title)
		return nil
	}

	task, err := findTask(cmd.Context(), st, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteTask(cmd.Context(), task.ID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	fmt.Fprintf(out, "🗑️  Deleted task %s: %s\n", task.ID, task.Title)
	return nil
}
