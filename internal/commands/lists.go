package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/views"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage custom lists",
		Long: `Lists group tasks under a name, an icon and a color.

Lists are referred to by id or by name (case insensitive).`,
	}
	cmd.AddCommand(
		newListAddCmd(),
		newListLsCmd(),
		newListShowCmd(),
		newListRmCmd(),
		newListMvCmd(),
	)
	return cmd
}

func newListAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return fmt.Errorf("list name is required")
			}
			list := st.NewList(name)
			if icon, _ := cmd.Flags().GetString("icon"); icon != "" {
				list.Icon = icon
			}
			if color, _ := cmd.Flags().GetString("color"); color != "" {
				list.Color = color
			}
			if err := st.AddList(cmd.Context(), list); err != nil {
				return fmt.Errorf("error creating list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created list %s: %s %s\n", list.ID, list.Icon, list.Name)
			return nil
		}),
	}
	cmd.Flags().String("icon", "", "Emoji shown next to the name")
	cmd.Flags().String("color", "", "Hex color, e.g. #FF5733")
	return cmd
}

func newListLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show all lists in order",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			lists, err := st.Lists(ctx)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, lists)
			}
			if len(lists) == 0 {
				fmt.Fprintln(out, "No lists yet. Use 'agenda list add <name>' to create one.")
				return nil
			}
			tasks, err := st.Tasks(ctx)
			if err != nil {
				return err
			}
			for i, list := range lists {
				fmt.Fprintf(out, "%2d. %s %-24s %-8s %d tasks  (ID: %s)\n",
					i+1, list.Icon, list.Name, list.Color, len(views.ForList(tasks, list.ID)), list.ID)
			}
			return nil
		}),
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func newListShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <list>",
		Short: "Show the tasks of a list",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			list, err := resolveList(ctx, st, strings.Join(args, " "))
			if err != nil {
				return err
			}
			tasks, err := st.Tasks(ctx)
			if err != nil {
				return err
			}
			tasks = views.ForList(tasks, list.ID)

			fmt.Fprintf(out, "%s %s (%d tasks)\n\n", list.Icon, list.Name, len(tasks))
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks in this list.")
				return nil
			}
			printTaskTable(out, tasks)
			return nil
		}),
	}
}

func newListRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <list>",
		Short: "Delete a list; its tasks are kept",
		Args:  cobra.MinimumNArgs(1),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			list, err := resolveList(cmd.Context(), st, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := st.DeleteList(cmd.Context(), list.ID); err != nil {
				return fmt.Errorf("error deleting list: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted list %s\n", list.Name)
			return nil
		}),
	}
}

func newListMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <list> <position>",
		Short: "Move a list to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: withStore(func(cmd *cobra.Command, args []string, st *store.Store) error {
			ctx := cmd.Context()

			list, err := resolveList(ctx, st, args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			lists, err := st.Lists(ctx)
			if err != nil {
				return err
			}
			from := -1
			for i, l := range lists {
				if l.ID == list.ID {
					from = i
				}
			}
			if err := st.ReorderLists(ctx, from, to-1); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved list %s to position %d\n", list.Name, to)
			return nil
		}),
	}
}
