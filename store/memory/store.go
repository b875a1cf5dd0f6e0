package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/esimov/colorwheel/project"
	"github.com/sirupsen/logrus"
)

// memStore keeps the projects in memory. Everything is lost when the process exits.
type memStore struct {
	mu       sync.RWMutex
	projects map[string]*project.Project
}

// NewStore creates a new in-memory store.
func NewStore() *memStore {
	return &memStore{projects: make(map[string]*project.Project)}
}

// List returns a copy of every stored project.
func (s *memStore) List(ctx context.Context) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		list = append(list, p.Clone())
	}
	logrus.Debugf("Listed %d projects", len(list))
	return list, nil
}

// Get returns a copy of the project by its id.
func (s *memStore) Get(ctx context.Context, id string) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := logrus.WithField("project_id", id)
	p, ok := s.projects[id]
	if !ok {
		log.Warn("Project with specified ID not found")
		return nil, fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
	}
	log.Debug("Project retrieved successfully")
	return p.Clone(), nil
}

// Save creates or replaces a project.
func (s *memStore) Save(ctx context.Context, p *project.Project) error {
	if p.ID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[p.ID] = p.Clone()
	logrus.WithFields(logrus.Fields{
		"project_id":   p.ID,
		"image_length": len(p.Image),
	}).Debug("Project saved successfully")
	return nil
}

// Delete removes a project.
func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithField("project_id", id)
	if _, ok := s.projects[id]; !ok {
		log.Warn("Project not found for deletion")
		return fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
	}
	delete(s.projects, id)
	log.Debug("Project deleted successfully")
	return nil
}

// Close is a no-op.
func (s *memStore) Close() error {
	return nil
}
