package sqlite

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
)

var testClock = time.Date(2026, 10, 19, 9, 30, 15, 0, time.Local)

func testLogger() todo.Logger {
	return charmlog.NewLogger(charmlog.Options{Writer: io.Discard, Level: "debug"})
}

// openTestDB opens an unmigrated in-memory database.
func openTestDB(t *testing.T) *database {
	t.Helper()

	db, err := Open(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newTestRepo(t *testing.T) (*taskRepo, *database) {
	t.Helper()

	db := openTestDB(t)
	require.NoError(t, db.Migrate(Migrations))

	r := NewTaskRepo(db.Conn(), testLogger()).(*taskRepo)
	r.now = func() time.Time { return testClock }
	return r, db
}

func mustCreateTask(t *testing.T, r *taskRepo, text string) int {
	t.Helper()

	id, err := r.CreateTask(testContext(t), text)
	require.NoError(t, err)
	return id
}

// rawRow renders a stored row as text, bypassing the driver's time parsing.
func rawRow(t *testing.T, db *database, id int) string {
	t.Helper()

	var s string
	err := db.Conn().QueryRow(
		`SELECT id || '|' || text || '|' || done || '|' || IFNULL(created_at, 'NULL') || '|' || IFNULL(finished_at, 'NULL') FROM tasks WHERE id = ?`,
		id,
	).Scan(&s)
	require.NoError(t, err)
	return s
}

func ids(tasks []todo.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// testContext stands in for testing.T.Context (Go 1.24+): the returned
// context is canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
