package store

import (
	"context"
	"fmt"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/views"
)

// Tasks returns every task in stored order
func (s *Store) Tasks(ctx context.Context) ([]models.Task, error) {
	return s.tasks.all(ctx)
}

// SaveTasks replaces the whole task collection and notifies subscribers
func (s *Store) SaveTasks(ctx context.Context, tasks []models.Task) error {
	return s.tasks.save(ctx, tasks)
}

// AddTask appends a task
func (s *Store) AddTask(ctx context.Context, task models.Task) error {
	return s.tasks.add(ctx, task)
}

// UpdateTask merges fields over the task with id. Unknown ids are ignored;
// field names the task does not have fail with ErrUnknownField.
func (s *Store) UpdateTask(ctx context.Context, id string, fields Fields) error {
	return s.tasks.update(ctx, id, fields)
}

// DeleteTask removes the task with id from the collection
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.delete(ctx, id)
}

// Task looks a task up by id
func (s *Store) Task(ctx context.Context, id string) (models.Task, bool, error) {
	return s.tasks.find(ctx, id)
}

// ReorderTasks moves the task at position from to position to
func (s *Store) ReorderTasks(ctx context.Context, from, to int) error {
	return s.tasks.reorder(ctx, from, to)
}

// NewTask fills in identity, ownership and defaults for a task about to be added
func (s *Store) NewTask(title string) models.Task {
	return models.Task{
		ID:        s.NewID(),
		Title:     title,
		Status:    models.StatusPending,
		Priority:  models.DefaultPriority,
		UserID:    s.userID,
		CreatedAt: s.clock(),
		Tags:      []string{},
	}
}

// MoveTask gives a task a new status and puts it at index within that
// status column, the way dropping a card on the board does.
func (s *Store) MoveTask(ctx context.Context, id string, status models.Status, index int) error {
	tasks, err := s.tasks.all(ctx)
	if err != nil {
		return err
	}

	for i, task := range tasks {
		if task.ID != id {
			continue
		}
		rest := append(append([]models.Task{}, tasks[:i]...), tasks[i+1:]...)
		task.Status = status
		return s.tasks.save(ctx, views.PlaceInColumn(rest, task, index))
	}
	return fmt.Errorf("task %s not found", id)
}

// ToggleTaskDone flips a task between completed and pending
func (s *Store) ToggleTaskDone(ctx context.Context, id string) (models.Task, error) {
	task, ok, err := s.tasks.find(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if !ok {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}

	next := models.StatusCompleted
	if task.Status == models.StatusCompleted {
		next = models.StatusPending
	}
	if err := s.tasks.update(ctx, id, Fields{models.FieldStatus: next}); err != nil {
		return models.Task{}, err
	}
	task.Status = next
	return task, nil
}
