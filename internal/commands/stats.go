package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

const priorityLimit = 5

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"overview"},
		Short:   "Show counters, urgent tasks and lists",
		Args:    cobra.NoArgs,
		RunE:    withStore(runStats),
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type listSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Tasks int    `json:"tasks"`
}

func runStats(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	now := st.Now()

	stats, err := st.Statistics(ctx)
	if err != nil {
		return err
	}
	tasks, err := st.Tasks(ctx)
	if err != nil {
		return err
	}
	lists, err := st.Lists(ctx)
	if err != nil {
		return err
	}

	urgent := views.PriorityTasks(tasks, priorityLimit)
	summaries := make([]listSummary, len(lists))
	for i, list := range lists {
		summaries[i] = listSummary{ID: list.ID, Name: list.Name, Icon: list.Icon, Tasks: len(views.ForList(tasks, list.ID))}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, map[string]any{
			"statistics": stats,
			"priority":   urgent,
			"lists":      summaries,
		})
	}

	fmt.Fprintf(out, "📅 Scheduled: %d   🔥 Today: %d   ★ Important: %d   Σ Total: %d\n",
		stats.Scheduled, stats.Today, stats.Important, stats.Total)

	fmt.Fprintln(out, "\nPriority 1:")
	if len(urgent) == 0 {
		fmt.Fprintln(out, "  nothing urgent")
	}
	for _, task := range urgent {
		line := fmt.Sprintf("  %s  %s", task.ID, task.Title)
		if task.DueDate != nil {
			line += "  " + parser.FormatDueDate(task.DueDate, now)
		}
		fmt.Fprintln(out, line)
	}

	fmt.Fprintln(out, "\nLists:")
	if len(summaries) == 0 {
		fmt.Fprintln(out, "  no lists yet, create one with 'agenda list add <name>'")
	}
	for _, s := range summaries {
		fmt.Fprintf(out, "  %s %-24s %d\n", s.Icon, s.Name, s.Tasks)
	}
	return nil
}
