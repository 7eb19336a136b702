package store

import (
	"context"
	"strings"

	"github.com/balkashynov/agenda/internal/models"
)

// Projects returns every project in stored order
func (s *Store) Projects(ctx context.Context) ([]models.Project, error) {
	return s.projects.all(ctx)
}

// SaveProjects replaces the whole project collection and notifies subscribers
func (s *Store) SaveProjects(ctx context.Context, projects []models.Project) error {
	return s.projects.save(ctx, projects)
}

// AddProject appends a project
func (s *Store) AddProject(ctx context.Context, project models.Project) error {
	return s.projects.add(ctx, project)
}

// UpdateProject merges fields over the project with id
func (s *Store) UpdateProject(ctx context.Context, id string, fields Fields) error {
	return s.projects.update(ctx, id, fields)
}

// DeleteProject removes the project. Tasks keep their projectId.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.projects.delete(ctx, id)
}

// Project looks a project up by id
func (s *Store) Project(ctx context.Context, id string) (models.Project, bool, error) {
	return s.projects.find(ctx, id)
}

// ReorderProjects moves the project at position from to position to
func (s *Store) ReorderProjects(ctx context.Context, from, to int) error {
	return s.projects.reorder(ctx, from, to)
}

// ResolveProject finds a project by id, falling back to a case-insensitive name match
func (s *Store) ResolveProject(ctx context.Context, ref string) (models.Project, bool, error) {
	projects, err := s.projects.all(ctx)
	if err != nil {
		return models.Project{}, false, err
	}
	for _, p := range projects {
		if p.ID == ref {
			return p, true, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			return p, true, nil
		}
	}
	return models.Project{}, false, nil
}

// NewProject fills in identity, ownership and defaults for a project
func (s *Store) NewProject(name string) models.Project {
	return models.Project{
		ID:        s.NewID(),
		Name:      name,
		Color:     models.DefaultProjectColor,
		CreatedAt: s.clock(),
		UserID:    s.userID,
	}
}
