// Package project defines the recoloring project model, the key-value store contract
// its persistence backends implement and a manager wrapping the common operations.
package project

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrNotFound is returned when no project exists with the requested id.
	ErrNotFound = errors.New("project not found")
	// ErrEmptyName is returned when renaming a project to a blank name.
	ErrEmptyName = errors.New("project name cannot be empty")
)

type (
	// Project is a recoloring job: a source photo and its painted result.
	//
	// Image holds the encoded photo as a data URL. Colors maps painted region ids
	// to the hex color used for them; it is kept for compatibility only and
	// has no effect on rendering.
	Project struct {
		ID        string            `json:"id"`
		Name      string            `json:"name"`
		Image     string            `json:"image"`
		Colors    map[string]string `json:"colors"`
		Timestamp int64             `json:"timestamp"`
	}

	// Store defines the persistence layer for projects. Implementations
	// must hand out copies, so callers can never mutate stored state.
	Store interface {
		// List returns every stored project, in no particular order.
		List(ctx context.Context) ([]*Project, error)

		// Get returns a single project by its id or ErrNotFound.
		Get(ctx context.Context, id string) (*Project, error)

		// Save creates or replaces a project.
		Save(ctx context.Context, p *Project) error

		// Delete removes a project or returns ErrNotFound.
		Delete(ctx context.Context, id string) error
	}

	// Saver is the subset of Store an editor session writes its result to.
	Saver interface {
		Save(ctx context.Context, p *Project) error
	}
)

// New creates a project with a fresh id and an empty color map.
func New(name, image string, now time.Time) *Project {
	return &Project{
		ID:        NewID(now),
		Name:      name,
		Image:     image,
		Colors:    map[string]string{},
		Timestamp: now.UnixMilli(),
	}
}

// NewID returns a lexically sortable unique id.
func NewID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	c.Colors = maps.Clone(p.Colors)
	if c.Colors == nil {
		c.Colors = map[string]string{}
	}
	return &c
}

// CreatedAt returns the creation time of the project.
func (p *Project) CreatedAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}
