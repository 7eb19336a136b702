package models

// CustomList is a user defined grouping of tasks with an icon and color
type CustomList struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	UserID string `json:"userId"`
}

// Defaults used by the list form
const (
	DefaultListIcon  = "📝"
	DefaultListColor = "#FF5733"
)

func (l CustomList) RecordID() string { return l.ID }
