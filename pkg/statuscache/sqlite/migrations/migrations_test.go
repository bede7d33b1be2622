package migrations

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"path/filepath"
	"testing"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "status.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := openDB(t)
	log := zap.NewNop().Sugar()

	version, err := Migrate(db, log)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	version, err = Migrate(db, log)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	_, err = db.Exec(`insert into status (id, text, tooltip, updated_at) values (1, 'o', 'app: a', 0)`)
	assert.NoError(t, err)
}

func TestMigrateRefusesDirtySchema(t *testing.T) {
	db := openDB(t)
	log := zap.NewNop().Sugar()

	_, err := Migrate(db, log)
	require.NoError(t, err)

	_, err = db.Exec(`update schema_migrations set dirty = 1`)
	require.NoError(t, err)

	_, err = Migrate(db, log)
	assert.ErrorIs(t, err, ErrDirtySchema)
}
