package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/esimov/colorwheel/project"
	"github.com/sirupsen/logrus"
)

const ext = ".json"

// fsStore keeps one JSON file per project inside basePath.
type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem based store, creating the base directory if needed.
func NewStore(basePath string) (*fsStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &fsStore{basePath: basePath}, nil
}

func (s *fsStore) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid project id %q", id)
	}
	return filepath.Join(s.basePath, id+ext), nil
}

// List reads every project file. Unreadable files are skipped.
func (s *fsStore) List(ctx context.Context) ([]*project.Project, error) {
	log := logrus.WithField("path", s.basePath)

	files, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*project.Project{}, nil
		}
		log.WithError(err).Error("Failed to read project directory")
		return nil, err
	}

	list := make([]*project.Project, 0, len(files))
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ext {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.read(filepath.Join(s.basePath, file.Name()))
		if err != nil {
			log.WithError(err).Warnf("Failed to read project file %s, skipping", file.Name())
			continue
		}
		list = append(list, p)
	}
	log.Debugf("Listed %d projects", len(list))
	return list, nil
}

// Get returns the project stored under id.
func (s *fsStore) Get(ctx context.Context, id string) (*project.Project, error) {
	filePath, err := s.path(id)
	if err != nil {
		return nil, err
	}
	log := logrus.WithFields(logrus.Fields{"project_id": id, "file_path": filePath})

	p, err := s.read(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("Project with specified ID not found")
			return nil, fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
		}
		log.WithError(err).Error("Failed to retrieve project")
		return nil, err
	}
	log.Debug("Project retrieved successfully")
	return p, nil
}

// Save writes the project file atomically.
func (s *fsStore) Save(ctx context.Context, p *project.Project) error {
	filePath, err := s.path(p.ID)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"project_id": p.ID, "file_path": filePath})

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}

	tmp, err := os.CreateTemp(s.basePath, "."+p.ID+"-*")
	if err != nil {
		log.WithError(err).Error("Failed to save project")
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		log.WithError(err).Error("Failed to save project")
		return err
	}
	log.Debug("Project saved successfully")
	return nil
}

// Delete removes the project file.
func (s *fsStore) Delete(ctx context.Context, id string) error {
	filePath, err := s.path(id)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"project_id": id, "file_path": filePath})

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			log.Warn("Project not found for deletion")
			return fmt.Errorf("project with id %s: %w", id, project.ErrNotFound)
		}
		log.WithError(err).Error("Failed to delete project")
		return err
	}
	log.Debug("Project deleted successfully")
	return nil
}

// Close is a no-op.
func (s *fsStore) Close() error {
	return nil
}

func (s *fsStore) read(filePath string) (*project.Project, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	if p.Colors == nil {
		p.Colors = map[string]string{}
	}
	return &p, nil
}
