package store

import (
	"context"
	"strings"

	"github.com/balkashynov/agenda/internal/models"
)

// Lists returns every custom list in stored order
func (s *Store) Lists(ctx context.Context) ([]models.CustomList, error) {
	return s.lists.all(ctx)
}

// SaveLists replaces the whole list collection and notifies subscribers
func (s *Store) SaveLists(ctx context.Context, lists []models.CustomList) error {
	return s.lists.save(ctx, lists)
}

// AddList appends a list
func (s *Store) AddList(ctx context.Context, list models.CustomList) error {
	return s.lists.add(ctx, list)
}

// UpdateList merges fields over the list with id
func (s *Store) UpdateList(ctx context.Context, id string, fields Fields) error {
	return s.lists.update(ctx, id, fields)
}

// DeleteList removes the list. Tasks keep their listId.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	return s.lists.delete(ctx, id)
}

// List looks a list up by id
func (s *Store) List(ctx context.Context, id string) (models.CustomList, bool, error) {
	return s.lists.find(ctx, id)
}

// ReorderLists moves the list at position from to position to
func (s *Store) ReorderLists(ctx context.Context, from, to int) error {
	return s.lists.reorder(ctx, from, to)
}

// ResolveList finds a list by id, falling back to a case-insensitive name match
func (s *Store) ResolveList(ctx context.Context, ref string) (models.CustomList, bool, error) {
	lists, err := s.lists.all(ctx)
	if err != nil {
		return models.CustomList{}, false, err
	}
	for _, l := range lists {
		if l.ID == ref {
			return l, true, nil
		}
	}
	for _, l := range lists {
		if strings.EqualFold(l.Name, strings.TrimSpace(ref)) {
			return l, true, nil
		}
	}
	return models.CustomList{}, false, nil
}

// NewList fills in identity, ownership and defaults for a list
func (s *Store) NewList(name string) models.CustomList {
	return models.CustomList{
		ID:     s.NewID(),
		Name:   name,
		Icon:   models.DefaultListIcon,
		Color:  models.DefaultListColor,
		UserID: s.userID,
	}
}
