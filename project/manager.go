package project

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager implements the project list operations on top of a Store.
type Manager struct {
	store Store
	now   func() time.Time
	log   logrus.FieldLogger
}

// ManagerOption customizes a Manager.
type ManagerOption func(*Manager)

// WithClock replaces the time source, mostly useful in tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger used by the manager.
func WithLogger(l logrus.FieldLogger) ManagerOption {
	return func(m *Manager) { m.log = l }
}

// NewManager creates a manager backed by store.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultName is the name given to projects created without one.
func DefaultName(t time.Time) string {
	return "Project " + t.Format("02/01/2006")
}

// Create stores a new project holding the image. A blank name is replaced by DefaultName.
func (m *Manager) Create(ctx context.Context, name, image string) (*Project, error) {
	now := m.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName(now)
	}
	p := New(name, image, now)
	if err := m.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("unable to create project: %w", err)
	}
	m.log.WithFields(logrus.Fields{"project_id": p.ID, "name": p.Name}).Debug("project created")
	return p, nil
}

// List returns the stored projects, newest first.
func (m *Manager) List(ctx context.Context) ([]*Project, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list projects: %w", err)
	}
	slices.SortStableFunc(list, func(a, b *Project) int {
		if a.Timestamp != b.Timestamp {
			if a.Timestamp > b.Timestamp {
				return -1
			}
			return 1
		}
		return strings.Compare(b.ID, a.ID)
	})
	return list, nil
}

// Get returns the project with the given id.
func (m *Manager) Get(ctx context.Context, id string) (*Project, error) {
	return m.store.Get(ctx, id)
}

// Save writes back an existing project.
func (m *Manager) Save(ctx context.Context, p *Project) error {
	if p.ID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	if err := m.store.Save(ctx, p); err != nil {
		return fmt.Errorf("unable to save project %s: %w", p.ID, err)
	}
	m.log.WithFields(logrus.Fields{"project_id": p.ID, "image_length": len(p.Image)}).Debug("project saved")
	return nil
}

// Duplicate stores a copy of the project under a new id.
func (m *Manager) Duplicate(ctx context.Context, id string) (*Project, error) {
	src, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := m.now()

	dup := src.Clone()
	dup.ID = NewID(now)
	dup.Name = src.Name + " (Copy)"
	dup.Timestamp = now.UnixMilli()

	if err := m.store.Save(ctx, dup); err != nil {
		return nil, fmt.Errorf("unable to duplicate project %s: %w", id, err)
	}
	m.log.WithFields(logrus.Fields{"project_id": dup.ID, "source_id": id}).Debug("project duplicated")
	return dup, nil
}

// Rename changes the display name of a project. Surrounding blanks are trimmed.
func (m *Manager) Rename(ctx context.Context, id, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	p, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = name
	if err := m.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("unable to rename project %s: %w", id, err)
	}
	return p, nil
}

// Delete removes a project.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	m.log.WithField("project_id", id).Debug("project deleted")
	return nil
}

// Export writes the project as indented JSON.
func (m *Manager) Export(ctx context.Context, id string, w io.Writer) error {
	p, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Import reads a project previously written by Export and stores it.
// A project without id gets a fresh one.
func (m *Manager) Import(ctx context.Context, r io.Reader) (*Project, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("unable to decode project: %w", err)
	}
	now := m.now()
	if p.ID == "" {
		p.ID = NewID(now)
	}
	if p.Timestamp == 0 {
		p.Timestamp = now.UnixMilli()
	}
	if p.Colors == nil {
		p.Colors = map[string]string{}
	}
	if err := m.store.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("unable to import project: %w", err)
	}
	return &p, nil
}

// ExportName returns the file name a project is exported under.
func ExportName(p *Project) string {
	return p.Name + "-colorwheel.json"
}
