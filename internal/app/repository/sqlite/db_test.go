package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		db, err := Open(ctx, ":memory:")
		require.NoError(t, err)
		defer db.Close()

		var fk int
		require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, fk)
	})

	t.Run("file in nested directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "audioscribe.db")
		db, err := Open(ctx, path)
		require.NoError(t, err)
		defer db.Close()

		_, err = db.Exec("CREATE TABLE t (id INTEGER)")
		assert.NoError(t, err)
		assert.FileExists(t, path)
	})
}
