package sqlite

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyTasksTable = `
CREATE TABLE tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    done INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT (datetime('now', 'localtime'))
)`

func schemaVersion(t *testing.T, db *database) (int, bool) {
	t.Helper()

	var version int
	var dirty bool
	require.NoError(t, db.Conn().QueryRow("SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty))
	return version, dirty
}

func TestMigrate_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Migrate(Migrations))

	for _, col := range []string{"id", "text", "done", "created_at", "finished_at"} {
		ok, err := db.hasColumn("tasks", col)
		require.NoError(t, err)
		assert.True(t, ok, "missing column %s", col)
	}
	version, dirty := schemaVersion(t, db)
	assert.Equal(t, versionAddFinishedAt, version)
	assert.False(t, dirty)
}

func TestMigrate_Idempotent(t *testing.T) {
	r, db := newTestRepo(t)
	id := mustCreateTask(t, r, "survives")

	require.NoError(t, db.Migrate(Migrations))
	require.NoError(t, db.Migrate(Migrations))

	task, err := r.GetTask(testContext(t), id)
	require.NoError(t, err)
	assert.Equal(t, "survives", task.Text)
}

func TestMigrate_BaselinesTableWithoutFinishedAt(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Conn().Exec(legacyTasksTable)
	require.NoError(t, err)
	_, err = db.Conn().Exec(`INSERT INTO tasks (text, done) VALUES ('old', 1)`)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(Migrations))

	ok, err := db.hasColumn("tasks", "finished_at")
	require.NoError(t, err)
	assert.True(t, ok)
	version, _ := schemaVersion(t, db)
	assert.Equal(t, versionAddFinishedAt, version)

	r := NewTaskRepo(db.Conn(), testLogger())
	tasks, err := r.ListTasks(testContext(t))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "old", tasks[0].Text)
	assert.True(t, tasks[0].Done)
	assert.True(t, tasks[0].FinishedAt.IsZero())
}

func TestMigrate_BaselinesTableWithFinishedAt(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Conn().Exec(legacyTasksTable)
	require.NoError(t, err)
	_, err = db.Conn().Exec(`ALTER TABLE tasks ADD COLUMN finished_at DATETIME`)
	require.NoError(t, err)

	// re-adding finished_at would fail with a duplicate column error
	require.NoError(t, db.Migrate(Migrations))

	version, dirty := schemaVersion(t, db)
	assert.Equal(t, versionAddFinishedAt, version)
	assert.False(t, dirty)
}

func TestMigrate_FailurePropagates(t *testing.T) {
	t.Run("broken statement", func(t *testing.T) {
		db := openTestDB(t)
		migrations := fstest.MapFS{
			"migrations/000001_broken.up.sql": {Data: []byte("CREATE TABLE (")},
		}

		assert.Error(t, db.Migrate(migrations))
	})

	t.Run("no migrations dir", func(t *testing.T) {
		db := openTestDB(t)

		assert.Error(t, db.Migrate(fstest.MapFS{}))
	})
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(t.TempDir()+"/missing/dir/todo.db", testLogger())
	assert.Error(t, err)
}
