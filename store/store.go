// Package store selects and opens the project persistence backend.
package store

import (
	"fmt"
	"io"

	"github.com/esimov/colorwheel/project"
	"github.com/esimov/colorwheel/store/filesystem"
	"github.com/esimov/colorwheel/store/memory"
	"github.com/esimov/colorwheel/store/sqlite"
	"github.com/sirupsen/logrus"
)

// Supported storage kinds.
const (
	Memory     = "memory"
	Filesystem = "filesystem"
	SQLite     = "sqlite"
)

// Store is a project store which may hold resources to release.
type Store interface {
	project.Store
	io.Closer
}

// Config selects the backend. Path is used by the filesystem store, DSN by the sqlite one.
type Config struct {
	Kind string
	Path string
	DSN  string
}

// Open returns the store described by cfg.
func Open(cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	fields := logrus.Fields{"storageType": cfg.Kind}

	switch cfg.Kind {
	case Filesystem, "":
		basePath := cfg.Path
		if basePath == "" {
			basePath = "./data"
		}
		fields["storageType"] = Filesystem
		fields["basePath"] = basePath
		s, err = filesystem.NewStore(basePath)
	case SQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "colorwheel.db"
		}
		fields["dataSourceName"] = dsn
		s, err = sqlite.NewStore(dsn)
	case Memory:
		s = memory.NewStore()
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	logrus.WithFields(fields).Debug("Use storage")
	return s, nil
}
