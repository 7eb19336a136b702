package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

func newListTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Long:  "List tasks in stored order with optional filters for list, project, status, tags and due date",
		Args:  cobra.NoArgs,
		RunE:  withStore(runListTasks),
	}

	cmd.Flags().StringP("list", "l", "", "Filter by list name or id")
	cmd.Flags().StringP("project", "p", "", "Filter by project name or id")
	cmd.Flags().StringP("status", "s", "", "Filter by status: pending, in-progress, completed, deleted")
	cmd.Flags().String("tag", "", "Filter by tag")
	cmd.Flags().Bool("today", false, "Show only tasks due today")
	cmd.Flags().Bool("important", false, "Show only important tasks")
	cmd.Flags().Bool("all", false, "Include deleted tasks")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func runListTasks(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	tasks, err := st.Tasks(ctx)
	if err != nil {
		return fmt.Errorf("error fetching tasks: %w", err)
	}

	all, _ := cmd.Flags().GetBool("all")
	if raw, _ := cmd.Flags().GetString("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return err
		}
		tasks = keep(tasks, func(t models.Task) bool { return t.Status == status })
	} else if !all {
		tasks = views.Live(tasks)
	}

	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		list, err := resolveList(ctx, st, ref)
		if err != nil {
			return err
		}
		tasks = keep(tasks, func(t models.Task) bool { return t.ListID == list.ID })
	}
	if ref, _ := cmd.Flags().GetString("project"); ref != "" {
		project, err := resolveProject(ctx, st, ref)
		if err != nil {
			return err
		}
		tasks = keep(tasks, func(t models.Task) bool { return t.ProjectID == project.ID })
	}
	if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
		tasks = keep(tasks, func(t models.Task) bool { return t.HasTag(tag) })
	}
	if today, _ := cmd.Flags().GetBool("today"); today {
		tasks = views.OnDay(tasks, st.Now())
	}
	if important, _ := cmd.Flags().GetBool("important"); important {
		tasks = keep(tasks, func(t models.Task) bool { return t.IsImportant })
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, map[string]any{
			"count": len(tasks),
			"tasks": tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Use 'agenda add \"task title\"' to create one.")
		return nil
	}
	printTaskTable(out, tasks)
	return nil
}

func keep(tasks []models.Task, fn func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if fn(t) {
			out = append(out, t)
		}
	}
	return out
}
