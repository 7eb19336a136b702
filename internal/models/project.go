package models

import "time"

// Project is a named initiative that tasks can belong to, distinct from lists
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

const DefaultProjectColor = "#7C3AED"

func (p Project) RecordID() string { return p.ID }
