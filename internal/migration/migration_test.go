package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/phoenix-rise/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range m {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func TestCurrentVersion(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), files(nil))

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	require.NoError(t, runner.SetVersion(ctx, 5))
	version, err = runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, version)
}

func TestMigrationsSortedAndFiltered(t *testing.T) {
	runner := NewRunner(setupTestDB(t), files(map[string]string{
		"002_second.sql": "CREATE TABLE b (id INTEGER);",
		"001_first.sql":  "CREATE TABLE a (id INTEGER);",
		"README.md":      "ignored",
	}))

	got, err := runner.Migrations()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, 2, got[1].Version)
}

func TestApplyFromScratchThenNoOp(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_kv.sql":    "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT);",
		"002_index.sql": "CREATE INDEX kv_value ON kv(value);",
	}))

	var logs []string
	applied, err := runner.Apply(ctx, func(s string) { logs = append(logs, s) })
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.NotEmpty(t, logs)

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	applied, err = runner.Apply(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, files(map[string]string{
		"001_ok.sql":  "CREATE TABLE ok (id INTEGER);",
		"002_bad.sql": "CREATE TABLE broken (;",
	}))

	applied, err := runner.Apply(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, 1, applied)

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestValidateRejectsNewerDatabase(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), files(map[string]string{
		"001_init.sql": "CREATE TABLE t (id INTEGER);",
	}))
	require.NoError(t, runner.SetVersion(ctx, 9))

	err := runner.Validate(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")

	_, err = runner.Apply(ctx, nil)
	assert.Error(t, err)
}

func TestMigrationFilenameErrors(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{name: "no underscore", files: map[string]string{"001.sql": "SELECT 1;"}},
		{name: "non-numeric version", files: map[string]string{"abc_init.sql": "SELECT 1;"}},
		{name: "zero version", files: map[string]string{"000_init.sql": "SELECT 1;"}},
		{name: "duplicate version", files: map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(setupTestDB(t), files(tt.files)).Migrations()
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	ctx := context.Background()
	sub, err := fs.Sub(migrations.FS, "sqlite")
	require.NoError(t, err)

	runner := NewRunner(setupTestDB(t), sub)
	_, err = runner.Apply(ctx, nil)
	require.NoError(t, err)

	latest, err := runner.LatestVersion()
	require.NoError(t, err)
	current, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latest, current)
}

func TestDollarPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", Dollar(1))
	assert.Equal(t, "?", Question(3))
}
