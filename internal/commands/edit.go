package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/parser"
	"github.com/balkashynov/agenda/internal/store"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit an existing task",
		Long: `Edit an existing task. Only the flags you pass are changed; everything else
is kept as stored. Pass an empty --list or --project to detach the task.

Usage:
  agenda edit 1791973800000 --title "Llamar a Ana" --priority p2
  agenda edit 1791973800000 --clear-due`,
		Args: cobra.ExactArgs(1),
		RunE: withStore(runEdit),
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("desc", "d", "", "New description")
	cmd.Flags().String("priority", "", "Priority: p1, p2, p3 or p4")
	cmd.Flags().StringP("status", "s", "", "Status: pending, in-progress, completed, deleted")
	cmd.Flags().String("due", "", "Due date: dd/mm/yyyy, X days, X hours, X weeks")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().String("reminder-end", "", "Keep reminding until this date")
	cmd.Flags().StringP("list", "l", "", "List name or id")
	cmd.Flags().StringP("project", "p", "", "Project name or id")
	cmd.Flags().StringSliceP("tags", "t", []string{}, "Replace tags")
	cmd.Flags().Bool("important", false, "Mark or unmark as important")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string, st *store.Store) error {
	ctx := cmd.Context()
	flags := cmd.Flags()
	now := st.Now()

	task, err := findTask(ctx, st, args[0])
	if err != nil {
		return err
	}

	fields := store.Fields{}
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		if strings.TrimSpace(title) == "" {
			return errors.New("title cannot be empty")
		}
		fields[models.FieldTitle] = strings.TrimSpace(title)
	}
	if flags.Changed("desc") {
		desc, _ := flags.GetString("desc")
		fields[models.FieldDescription] = desc
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority, err := models.ParsePriority(raw)
		if err != nil {
			return err
		}
		fields[models.FieldPriority] = priority
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status, err := models.ParseStatus(raw)
		if err != nil {
			return err
		}
		fields[models.FieldStatus] = status
	}
	if flags.Changed("due") {
		raw, _ := flags.GetString("due")
		due, err := parser.ParseDueDate(raw, now)
		if err != nil {
			return fmt.Errorf("error parsing due date: %w", err)
		}
		fields[models.FieldDueDate] = due
	}
	if clearDue, _ := flags.GetBool("clear-due"); clearDue {
		if flags.Changed("due") {
			return errors.New("--due and --clear-due cannot be used together")
		}
		fields[models.FieldDueDate] = nil
	}
	if flags.Changed("reminder-end") {
		raw, _ := flags.GetString("reminder-end")
		end, err := parser.ParseDueDate(raw, now)
		if err != nil {
			return fmt.Errorf("error parsing reminder end: %w", err)
		}
		fields[models.FieldReminderEndDate] = end
	}
	if flags.Changed("list") {
		ref, _ := flags.GetString("list")
		fields[models.FieldListID] = nil
		if ref != "" {
			list, err := resolveList(ctx, st, ref)
			if err != nil {
				return err
			}
			fields[models.FieldListID] = list.ID
		}
	}
	if flags.Changed("project") {
		ref, _ := flags.GetString("project")
		fields[models.FieldProjectID] = nil
		if ref != "" {
			project, err := resolveProject(ctx, st, ref)
			if err != nil {
				return err
			}
			fields[models.FieldProjectID] = project.ID
		}
	}
	if flags.Changed("tags") {
		tags, _ := flags.GetStringSlice("tags")
		cleaned := []string{}
		for _, tag := range tags {
			if tag = strings.TrimPrefix(strings.TrimSpace(tag), "#"); tag != "" {
				cleaned = append(cleaned, tag)
			}
		}
		fields[models.FieldTags] = cleaned
	}
	if flags.Changed("important") {
		important, _ := flags.GetBool("important")
		fields[models.FieldIsImportant] = important
	}

	if len(fields) == 0 {
		return errors.New("nothing to change: pass at least one flag")
	}

	if err := st.UpdateTask(ctx, task.ID, fields); err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}

	updated, err := findTask(ctx, st, task.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✏️  Updated task %s: %s\n", updated.ID, updated.Title)
	if updated.DueDate != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  Due: %s\n", parser.FormatDueDate(updated.DueDate, now))
	}
	return nil
}
