package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
	"github.com/balkashynov/agenda/internal/tui"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [task title]",
		Short: "Add a new task",
		Long: `Add a new task with optional metadata.

Modes:
  Interactive: agenda add -i (or just 'agenda add' with no arguments)
  Quick: agenda add "Task title" (with optional flags)
  Smart parsing: agenda add "Llamar a Ana el viernes #casa +p1 !"

Smart parsing syntax:
  #tag1,tag2  - Tags (comma-separated or individual)
  +p1..+p4    - Priority
  !           - Mark as important
  due:3days   - Due date (dd/mm/yyyy, X days, X hours, X weeks, hoy, mañana)

Date phrases in the title (hoy, mañana, el lunes, próximo viernes, 25/12/2026)
set the due date unless --due or --no-infer is given.`,
		Args: cobra.ArbitraryArgs,
		RunE: withStore(runAdd),
	}

	cmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	cmd.Flags().StringP("desc", "d", "", "Description")
	cmd.Flags().String("priority", "", "Priority: p1, p2, p3 or p4")
	cmd.Flags().String("due", "", "Due date: dd/mm/yyyy, X days, X hours, X weeks")
	cmd.Flags().String("reminder-end", "", "Keep reminding until this date")
	cmd.Flags().StringP("list", "l", "", "List name or id")
	cmd.Flags().StringP("project", "p", "", "Project name or id")
	cmd.Flags().StringSliceP("tags", "t", []string{}, "Comma-separated tags")
	cmd.Flags().Bool("important", false, "Mark as important")
	cmd.Flags().Bool("no-infer", false, "Do not detect a due date in the title")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	now := st.Now()

	interactive, _ := cmd.Flags().GetBool("interactive")
	if len(args) == 0 || interactive {
		desc, _ := cmd.Flags().GetString("desc")
		due, _ := cmd.Flags().GetString("due")
		task, err := tui.RunComposer(ctx, st, tui.Draft{
			Title:       strings.Join(args, " "),
			Description: desc,
			Due:         due,
		})
		if err != nil {
			return err
		}
		if task == nil {
			fmt.Fprintln(out, "❌ Task creation cancelled.")
			return nil
		}
		fmt.Fprintf(out, "✅ New task %q added - ID: %s\n", task.Title, task.ID)
		return nil
	}

	parsed := parser.ParseTitle(strings.Join(args, " "), now)
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("could not parse task: %s", strings.Join(parsed.Errors, ", "))
	}
	if parsed.Title == "" {
		return fmt.Errorf("task title is required")
	}

	task := st.NewTask(parsed.Title)
	task.Priority = parsed.Priority
	task.IsImportant = parsed.Important
	task.DueDate = parsed.DueDate
	task.Tags = append(task.Tags, parsed.Tags...)

	// Explicit flags take precedence over parsed values
	if desc, _ := cmd.Flags().GetString("desc"); desc != "" {
		task.Description = desc
	}
	if raw, _ := cmd.Flags().GetString("priority"); raw != "" {
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return err
		}
		task.Priority = priority
	}
	if raw, _ := cmd.Flags().GetString("due"); raw != "" {
		due, err := parser.ParseDueDate(raw, now)
		if err != nil {
			return fmt.Errorf("error parsing due date: %w", err)
		}
		task.DueDate = due
	}
	if raw, _ := cmd.Flags().GetString("reminder-end"); raw != "" {
		end, err := parser.ParseDueDate(raw, now)
		if err != nil {
			return fmt.Errorf("error parsing reminder end: %w", err)
		}
		task.ReminderEndDate = end
	}
	if important, _ := cmd.Flags().GetBool("important"); important {
		task.IsImportant = true
	}
	if tags, _ := cmd.Flags().GetStringSlice("tags"); len(tags) > 0 {
		for _, tag := range tags {
			tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
			if tag != "" && !task.HasTag(tag) {
				task.Tags = append(task.Tags, tag)
			}
		}
	}

	var listName, projectName string
	if ref, _ := cmd.Flags().GetString("list"); ref != "" {
		list, err := resolveList(ctx, st, ref)
		if err != nil {
			return err
		}
		task.ListID, listName = list.ID, list.Name
	}
	if ref, _ := cmd.Flags().GetString("project"); ref != "" {
		project, err := resolveProject(ctx, st, ref)
		if err != nil {
			return err
		}
		task.ProjectID, projectName = project.ID, project.Name
	}

	inferred := false
	noInfer, _ := cmd.Flags().GetBool("no-infer")
	if task.DueDate == nil && !noInfer && parsed.SuggestedDate != nil {
		task.DueDate = parsed.SuggestedDate
		inferred = true
	}

	if err := st.AddTask(ctx, task); err != nil {
		return fmt.Errorf("error creating task: %w", err)
	}

	fmt.Fprintf(out, "Created task %s: %s\n", task.ID, task.Title)
	if listName != "" {
		fmt.Fprintf(out, "  List: %s\n", listName)
	}
	if projectName != "" {
		fmt.Fprintf(out, "  Project: %s\n", projectName)
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(out, "  Tags: %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Priority != models.DefaultPriority {
		fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
	}
	if task.IsImportant {
		fmt.Fprintln(out, "  Important: yes")
	}
	if task.DueDate != nil {
		due := parser.FormatDueDate(task.DueDate, now)
		if inferred {
			due += " (detected in title)"
		}
		fmt.Fprintf(out, "  Due: %s\n", due)
	}
	return nil
}
