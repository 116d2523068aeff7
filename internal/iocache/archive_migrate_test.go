package iocache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/debtboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateArchive_NoneBackend(t *testing.T) {
	err := MigrateArchive(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateArchive_UnsupportedBackend(t *testing.T) {
	err := MigrateArchive(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateArchive_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version (version 2)
	err := MigrateArchive(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Running again is a no-op
	err = MigrateArchive(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Step back to version 1, then roll everything back
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to version 2
	err = MigrateArchive(schema.SQLiteBackend, dbPath, 2)
	assert.NoError(t, err)
}

func TestMigrateArchive_SchemaMatchesStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateArchive(schema.SQLiteBackend, dbPath, -1))

	// A store opened on a migrated database can read and write immediately
	store, err := NewArchiveStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.SaveReport(schema.MockReport(), "sample", time.Now())
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalReports)
	assert.Equal(t, 9, status.TotalFileRows)
}

func TestMigrateArchive_SQLiteInMemory(t *testing.T) {
	err := MigrateArchive(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}

func TestMigrationFiles(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 4, backend)
	}
}
