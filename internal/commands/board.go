package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/tui"
	"github.com/balkashynov/agenda/internal/views"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show tasks as a board with one column per status",
		Long: `Open the interactive board. It refreshes by itself whenever tasks change.

Keys:
  ←/→ h/l    Switch column
  ↑/↓ k/j    Select task
  x          Toggle done
  > / <      Move task to the next / previous column
  d          Mark as deleted
  D          Delete permanently
  q          Quit`,
		Args: cobra.NoArgs,
		RunE: withStore(runBoard),
	}
	cmd.Flags().StringP("list", "l", "", "Only show tasks of this list")
	cmd.Flags().Bool("plain", false, "Print the columns instead of opening the board")
	return cmd
}

func runBoard(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()

	var listID string
	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		list, err := resolveList(ctx, st, ref)
		if err != nil {
			return err
		}
		listID = list.ID
	}

	if plain, _ := cmd.Flags().GetBool("plain"); !plain {
		return tui.RunBoard(ctx, st, listID)
	}

	tasks, err := st.Tasks(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, column := range views.Board(tasks, listID) {
		fmt.Fprintf(out, "== %s (%d) ==\n", column.Status.Label(), len(column.Tasks))
		for _, task := range column.Tasks {
			line := fmt.Sprintf("  %s  %s", task.ID, task.Title)
			if task.DueDate != nil {
				line += "  " + shortDate(task.DueDate)
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}
