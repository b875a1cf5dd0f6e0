// Package storetest provides a conformance suite shared by the project store backends.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/esimov/colorwheel/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the project.Store contract against s. The store must be empty.
func Run(t *testing.T, s project.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

	t.Run("Empty", func(t *testing.T) {
		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	first := project.New("Red car", "data:image/png;base64,AAAA", now)
	first.Colors["area_1"] = "#FF0000"
	second := project.New("Blue van", "data:image/jpeg;base64,BBBB", now.Add(time.Minute))

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, first))
		require.NoError(t, s.Save(ctx, second))

		got, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("ReturnsCopies", func(t *testing.T) {
		got, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		got.Name = "changed"
		got.Colors["area_2"] = "#00FF00"

		again, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Red car", again.Name)
		assert.Len(t, again.Colors, 1)
	})

	t.Run("Update", func(t *testing.T) {
		upd := first.Clone()
		upd.Image = "data:image/png;base64,CCCC"
		upd.Colors["area_2"] = "#00FF00"
		require.NoError(t, s.Save(ctx, upd))

		got, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
		assert.ErrorIs(t, err, project.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "01HZZZZZZZZZZZZZZZZZZZZZZZ"), project.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, second.ID))

		_, err := s.Get(ctx, second.ID)
		assert.ErrorIs(t, err, project.ErrNotFound)

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID, list[0].ID)
	})
}
