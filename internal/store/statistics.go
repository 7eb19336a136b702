package store

import (
	"context"
	"time"

	"github.com/balkashynov/agenda/internal/models"
	"github.com/balkashynov/agenda/internal/views"
)

// Statistics summarizes the task collection for the overview
type Statistics struct {
	Scheduled int `json:"scheduled"`
	Today     int `json:"today"`
	Important int `json:"important"`
	Total     int `json:"total"`
}

// Statistics is computed fresh from the stored tasks on every call
func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	tasks, err := s.tasks.all(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return Summarize(tasks, s.clock()), nil
}

// Summarize counts tasks relative to the calendar day of at.
// Time of day is ignored when matching due dates to today.
func Summarize(tasks []models.Task, at time.Time) Statistics {
	stats := Statistics{Total: len(tasks)}
	for _, task := range tasks {
		if task.DueDate != nil {
			stats.Scheduled++
			if views.SameDay(*task.DueDate, at) {
				stats.Today++
			}
		}
		if task.IsImportant {
			stats.Important++
		}
	}
	return stats
}
