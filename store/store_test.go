package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	for _, cfg := range []Config{
		{Kind: Memory},
		{Kind: Filesystem, Path: filepath.Join(dir, "data")},
		{Kind: "", Path: filepath.Join(dir, "default")},
		{Kind: SQLite, DSN: filepath.Join(dir, "colorwheel.db")},
	} {
		s, err := Open(cfg)
		require.NoError(t, err, cfg.Kind)
		assert.NoError(t, s.Close())
	}

	_, err := Open(Config{Kind: "s3"})
	assert.Error(t, err)
}
