package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/store"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show every detail of a task",
		Args:  cobra.ExactArgs(1),
		RunE:  withStore(runShow),
	}
}

func runShow(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()

	task, err := findTask(ctx, st, args[0])
	if err != nil {
		return err
	}

	var listName, projectName string
	if task.ListID != "" {
		if list, ok, err := st.List(ctx, task.ListID); err == nil && ok {
			listName = list.Icon + " " + list.Name
		}
	}
	if task.ProjectID != "" {
		if project, ok, err := st.Project(ctx, task.ProjectID); err == nil && ok {
			projectName = project.Name
		}
	}

	printTaskDetails(cmd.OutOrStdout(), task, st.Now(), listName, projectName)
	return nil
}
