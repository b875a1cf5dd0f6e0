package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/esimov/colorwheel/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqliteStore {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSqliteStore(t *testing.T) {
	storetest.Run(t, setupTestDB(t))
}

func TestSqliteStore_TableCreated(t *testing.T) {
	s := setupTestDB(t)

	var name string
	err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='projects'").Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "projects", name)
}
