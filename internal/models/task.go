package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultUserID is the placeholder owner stamped on every record.
const DefaultUserID = "1"

var (
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
)

// Status is the lifecycle state of a task
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusDeleted    Status = "deleted"
)

// Statuses lists every status in board column order
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusDeleted}

// Label returns the human readable status name
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusDeleted:
		return "Deleted"
	default:
		return string(s)
	}
}

// ParseStatus accepts the canonical values and the legacy Spanish spellings
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo", "pendiente":
		return StatusPending, nil
	case "in-progress", "progress", "doing", "en-progreso":
		return StatusInProgress, nil
	case "completed", "done", "completada":
		return StatusCompleted, nil
	case "deleted", "eliminada":
		return StatusDeleted, nil
	}
	return "", fmt.Errorf("%w %q: use pending, in-progress, completed or deleted", ErrInvalidStatus, s)
}

// Priority is the urgency tier of a task, p1 highest
type Priority string

const (
	PriorityP1 Priority = "p1"
	PriorityP2 Priority = "p2"
	PriorityP3 Priority = "p3"
	PriorityP4 Priority = "p4"
)

// DefaultPriority is assigned when nothing else is requested
const DefaultPriority = PriorityP4

// Label returns the display name of the priority
func (p Priority) Label() string {
	switch p {
	case PriorityP1:
		return "Priority 1"
	case PriorityP2:
		return "Priority 2"
	case PriorityP3:
		return "Priority 3"
	default:
		return "Priority 4"
	}
}

// ParsePriority accepts "p1".."p4" or "1".."4"; empty means the default
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	switch strings.TrimPrefix(s, "p") {
	case "1":
		return PriorityP1, nil
	case "2":
		return PriorityP2, nil
	case "3":
		return PriorityP3, nil
	case "4":
		return PriorityP4, nil
	}
	return "", fmt.Errorf("%w %q: use p1, p2, p3 or p4", ErrInvalidPriority, s)
}

// Persisted task field names, used for partial updates
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldStatus          = "status"
	FieldPriority        = "priority"
	FieldDueDate         = "dueDate"
	FieldReminderEndDate = "reminderEndDate"
	FieldListID          = "listId"
	FieldProjectID       = "projectId"
	FieldTags            = "tags"
	FieldIsImportant     = "isImportant"
	FieldName            = "name"
	FieldIcon            = "icon"
	FieldColor           = "color"
)

// Task represents a todo item
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          Status     `json:"status"`
	Priority        Priority   `json:"priority"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	ReminderEndDate *time.Time `json:"reminderEndDate,omitempty"`
	ListID          string     `json:"listId,omitempty"`
	ProjectID       string     `json:"projectId,omitempty"`
	UserID          string     `json:"userId"`
	CreatedAt       time.Time  `json:"createdAt"`
	Tags            []string   `json:"tags"`
	IsImportant     bool       `json:"isImportant"`
}

// RecordID returns the task identifier
func (t Task) RecordID() string { return t.ID }

// HasTag reports whether the task carries tag (case-insensitive)
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}
