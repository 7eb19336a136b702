package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
		Long: `Projects collect tasks around one initiative. A task can belong to a list
and a project at the same time.

Projects are referred to by id or by name (case insensitive).`,
	}
	cmd.AddCommand(
		newProjectAddCmd(),
		newProjectLsCmd(),
		newProjectShowCmd(),
		newProjectRmCmd(),
		newProjectMvCmd(),
	)
	return cmd
}

func newProjectAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("project name is required")
			}
			project := st.NewProject(name)
			if desc, _ := cmd.Flags().GetString("desc"); desc != "" {
				project.Description = desc
			}
			if color, _ := cmd.Flags().GetString("color"); color != "" {
				project.Color = color
			}
			if err := st.AddProject(cmd.Context(), project); err != nil {
				return fmt.Errorf("error creating project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", project.ID, project.Name)
			return nil
		}),
	}
	cmd.Flags().StringP("desc", "d", "", "Description")
	cmd.Flags().String("color", "", "Hex color, e.g. #7C3AED")
	return cmd
}

func newProjectLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show all projects in order",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			projects, err := st.Projects(ctx)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet. Use 'agenda project add <name>' to create one.")
				return nil
			}
			tasks, err := st.Tasks(ctx)
			if err != nil {
				return err
			}
			now := st.Now()
			for i, project := range projects {
				fmt.Fprintf(out, "%2d. %-24s %d tasks  created %s  (ID: %s)\n",
					i+1, project.Name, len(views.ForProject(tasks, project.ID)),
					humanize.RelTime(project.CreatedAt, now, "ago", "from now"), project.ID)
			}
			return nil
		}),
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newProjectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project and its tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			project, err := resolveProject(ctx, st, strings.Join(args, " "))
			if err != nil {
				return err
			}
			tasks, err := st.Tasks(ctx)
			if err != nil {
				return err
			}
			tasks = views.ForProject(tasks, project.ID)

			fmt.Fprintf(out, "%s (%d tasks)\n", project.Name, len(tasks))
			if project.Description != "" {
				fmt.Fprintf(out, "%s\n", project.Description)
			}
			fmt.Fprintln(out)
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks in this project.")
				return nil
			}
			printTaskTable(out, tasks)
			return nil
		}),
	}
}

func newProjectRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete a project; its tasks are kept",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			project, err := resolveProject(cmd.Context(), st, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := st.DeleteProject(cmd.Context(), project.ID); err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted project %s\n", project.Name)
			return nil
		}),
	}
}

func newProjectMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <project> <position>",
		Short: "Move a project to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()

			project, err := resolveProject(ctx, st, args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			projects, err := st.Projects(ctx)
			if err != nil {
				return err
			}
			from := -1
			for i, p := range projects {
				if p.ID == project.ID {
					from = i
				}
			}
			if err := st.ReorderProjects(ctx, from, to-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved project %s to position %d\n", project.Name, to)
			return nil
		}),
	}
}
