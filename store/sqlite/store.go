package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/esimov/colorwheel/project"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	image TEXT NOT NULL,
	colors TEXT NOT NULL DEFAULT '{}',
	timestamp INTEGER NOT NULL
);`

type sqliteStore struct {
	db *sql.DB
}

// NewStore opens the SQLite database and creates the projects table if missing.
func NewStore(dataSourceName string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create projects table: %w", err)
	}
	return &sqliteStore{db}, nil
}

// List returns every stored project, newest first.
func (s *sqliteStore) List(ctx context.Context) ([]*project.Project, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, image, colors, timestamp FROM projects ORDER BY timestamp DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*project.Project{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logrus.Debugf("Listed %d projects", len(list))
	return list, nil
}

// Get returns a project by its id.
func (s *sqliteStore) Get(ctx context.Context, id string) (*project.Project, error) {
	log := logrus.WithField("project_id", id)

	row := s.db.QueryRowContext(ctx, "SELECT id, name, image, colors, timestamp FROM projects WHERE id = ?", id)
	p, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Project with specified ID not found")
			return nil, fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
		}
		log.WithError(err).Error("Failed to retrieve project")
		return nil, err
	}
	log.Debug("Project retrieved successfully")
	return p, nil
}

// Save inserts or replaces a project.
func (s *sqliteStore) Save(ctx context.Context, p *project.Project) error {
	if p.ID == "" {
		return fmt.Errorf("project id cannot be empty")
	}
	colors := p.Colors
	if colors == nil {
		colors = map[string]string{}
	}
	data, err := json.Marshal(colors)
	if err != nil {
		return fmt.Errorf("failed to encode project colors: %w", err)
	}

	log := logrus.WithFields(logrus.Fields{
		"project_id":   p.ID,
		"image_length": len(p.Image),
	})
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO projects (id, name, image, colors, timestamp) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		image = excluded.image,
		colors = excluded.colors,
		timestamp = excluded.timestamp`,
		p.ID, p.Name, p.Image, string(data), p.Timestamp,
	)
	if err != nil {
		log.WithError(err).Error("Failed to save project")
		return err
	}
	log.Debug("Project saved successfully")
	return nil
}

// Delete removes a project by its id.
func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	log := logrus.WithField("project_id", id)

	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		log.WithError(err).Error("Failed to delete project")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("Project not found for deletion")
		return fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
	}
	log.Debug("Project deleted successfully")
	return nil
}

// Close closes the underlying database.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*project.Project, error) {
	var (
		p      project.Project
		colors string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &colors, &p.Timestamp); err != nil {
		return nil, err
	}
	p.Colors = map[string]string{}
	if colors != "" {
		if err := json.Unmarshal([]byte(colors), &p.Colors); err != nil {
			return nil, fmt.Errorf("failed to decode colors of project %s: %w", p.ID, err)
		}
	}
	return &p, nil
}
