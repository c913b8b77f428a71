package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")

	database, err := OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.Ping())
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	// OpenDB already migrated; running again must not fail.
	require.NoError(t, Migrate(database))

	var count int
	err = database.QueryRow(`SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('tasks', 'dependencies')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO dependencies (predecessor_id, successor_id)
		VALUES ('no-such', 'nope')`)
	assert.Error(t, err)
}

func TestStatusCheckConstraint(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO tasks (id, title, status, estimated_hours, progress, created_at, updated_at)
		VALUES ('t1', 'Bad status', 'blocked', 8, 0, '2026-03-02T00:00:00Z', '2026-03-02T00:00:00Z')`)
	assert.Error(t, err)
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	uow := NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	insert := func(tx DBTX, id string) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO tasks (id, title, status, estimated_hours, progress, created_at, updated_at)
			VALUES (?, 'T', 'todo', 8, 0, '2026-03-02T00:00:00Z', '2026-03-02T00:00:00Z')`, id)
		return err
	}

	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		return insert(tx, "committed")
	}))

	boom := errors.New("boom")
	err = uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if err := insert(tx, "rolled-back"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count))
	assert.Equal(t, 1, count, "only the committed row survives")
}
