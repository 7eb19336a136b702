// Package views derives what the board, calendar and overview screens show
// from the raw collections. Everything here is pure.
package views

import (
	"sort"
	"time"

	"github.com/jinzhu/now"

	"github.com/balkashynov/agenda/internal/models"
)

// Column is one board column
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Board groups tasks into one column per status, keeping collection order.
// An empty listID means every list.
func Board(tasks []models.Task, listID string) []Column {
	columns := make([]Column, len(models.Statuses))
	for i, status := range models.Statuses {
		columns[i] = Column{Status: status, Tasks: []models.Task{}}
	}
	for _, task := range tasks {
		if listID != "" && task.ListID != listID {
			continue
		}
		for i := range columns {
			if columns[i].Status == task.Status {
				columns[i].Tasks = append(columns[i].Tasks, task)
				break
			}
		}
	}
	return columns
}

// ForList returns the live (not deleted) tasks of a list
func ForList(tasks []models.Task, listID string) []models.Task {
	return filter(tasks, func(t models.Task) bool {
		return t.ListID == listID && t.Status != models.StatusDeleted
	})
}

// ForProject returns the live (not deleted) tasks of a project
func ForProject(tasks []models.Task, projectID string) []models.Task {
	return filter(tasks, func(t models.Task) bool {
		return t.ProjectID == projectID && t.Status != models.StatusDeleted
	})
}

// Live drops tasks with the deleted status
func Live(tasks []models.Task) []models.Task {
	return filter(tasks, func(t models.Task) bool { return t.Status != models.StatusDeleted })
}

// SameDay reports whether t falls on the calendar day of ref, in ref's location
func SameDay(t, ref time.Time) bool {
	return now.With(t.In(ref.Location())).BeginningOfDay().Equal(now.With(ref).BeginningOfDay())
}

// OnDay returns the tasks due on the calendar day of day
func OnDay(tasks []models.Task, day time.Time) []models.Task {
	return filter(tasks, func(t models.Task) bool {
		return t.DueDate != nil && SameDay(*t.DueDate, day)
	})
}

// Month counts due tasks per day of the month containing ref.
// The slice is indexed by day-1.
func Month(tasks []models.Task, ref time.Time) []int {
	first := now.With(ref).BeginningOfMonth()
	last := now.With(ref).EndOfMonth()
	counts := make([]int, last.Day())
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		due := task.DueDate.In(ref.Location())
		if due.Before(first) || due.After(last) {
			continue
		}
		counts[due.Day()-1]++
	}
	return counts
}

// PriorityTasks returns up to limit open p1 tasks, dated ones first by due date
func PriorityTasks(tasks []models.Task, limit int) []models.Task {
	urgent := filter(tasks, func(t models.Task) bool {
		return t.Priority == models.PriorityP1 &&
			t.Status != models.StatusCompleted &&
			t.Status != models.StatusDeleted
	})
	sort.SliceStable(urgent, func(i, j int) bool {
		a, b := urgent[i].DueDate, urgent[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	if limit >= 0 && len(urgent) > limit {
		urgent = urgent[:limit]
	}
	return urgent
}

// Move returns a copy of items with the element at from moved to index to.
// Out of range indexes leave the order unchanged.
func Move[T any](items []T, from, to int) []T {
	out := make([]T, len(items))
	copy(out, items)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}

// PlaceInColumn inserts task so that it becomes the index-th task of its
// status column. An index past the end appends after the column's last task.
func PlaceInColumn(tasks []models.Task, task models.Task, index int) []models.Task {
	if index < 0 {
		index = 0
	}
	pos, seen, lastInColumn := len(tasks), 0, -1
	for i, t := range tasks {
		if t.Status != task.Status {
			continue
		}
		if seen == index {
			pos = i
			break
		}
		seen++
		lastInColumn = i
	}
	if pos == len(tasks) && lastInColumn >= 0 {
		pos = lastInColumn + 1
	}

	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, tasks[:pos]...)
	out = append(out, task)
	return append(out, tasks[pos:]...)
}

func filter(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
