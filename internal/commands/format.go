package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/parser"
)

const dateLayout = "02/01/2006"

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func statusMark(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓ done"
	case models.StatusInProgress:
		return "▶ doing"
	case models.StatusDeleted:
		return "✗ deleted"
	default:
		return "· todo"
	}
}

func shortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// printTaskTable prints tasks as a fixed width table
func printTaskTable(out io.Writer, tasks []models.Task) {
	fmt.Fprintf(out, "%-14s %-10s %-36s %-4s %-10s %s\n", "ID", "STATUS", "TITLE", "PRI", "DUE", "TAGS")
	fmt.Fprintln(out, strings.Repeat("-", 88))

	for _, task := range tasks {
		title := task.Title
		if task.IsImportant {
			title = "★ " + title
		}
		fmt.Fprintf(out, "%-14s %-10s %-36s %-4s %-10s %s\n",
			task.ID,
			statusMark(task.Status),
			truncate(title, 36),
			task.Priority,
			shortDate(task.DueDate),
			truncate(strings.Join(task.Tags, ","), 20))
	}
}

// printTaskDetails prints every populated field of a task
func printTaskDetails(out io.Writer, task models.Task, now time.Time, listName, projectName string) {
	fmt.Fprintf(out, "Task %s: %s\n", task.ID, task.Title)
	fmt.Fprintf(out, "  Status:    %s\n", task.Status.Label())
	fmt.Fprintf(out, "  Priority:  %s\n", task.Priority.Label())
	if task.IsImportant {
		fmt.Fprintln(out, "  Important: yes")
	}
	if task.Description != "" {
		fmt.Fprintf(out, "  Notes:     %s\n", task.Description)
	}
	if task.DueDate != nil {
		fmt.Fprintf(out, "  Due:       %s\n", parser.FormatDueDate(task.DueDate, now))
	}
	if task.ReminderEndDate != nil {
		fmt.Fprintf(out, "  Reminder:  until %s\n", task.ReminderEndDate.Format(dateLayout))
	}
	if listName != "" {
		fmt.Fprintf(out, "  List:      %s\n", listName)
	}
	if projectName != "" {
		fmt.Fprintf(out, "  Project:   %s\n", projectName)
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:      %s\n", strings.Join(task.Tags, ", "))
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(out, "  Created:   %s\n", humanize.RelTime(task.CreatedAt, now, "ago", "from now"))
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
