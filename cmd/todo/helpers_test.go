package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/benjamonnguyen/todo/sqlite"
)

var errStorage = errors.New("disk I/O error")

func testLogger() todo.Logger {
	return charmlog.NewLogger(charmlog.Options{Writer: io.Discard, Level: "debug"})
}

func testConfig() todo.Config {
	return todo.Config{
		TimeFormat: todo.DefaultTimeFormat,
		CmdTimeout: time.Second,
	}
}

func newTestSvc(t *testing.T) TaskSvc {
	t.Helper()

	db, err := sqlite.Open(":memory:", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	require.NoError(t, db.Migrate(sqlite.Migrations))

	return NewTaskSvc(sqlite.NewTaskRepo(db.Conn(), testLogger()))
}

// newTestModel returns a sized model that has completed its initial load.
func newTestModel(t *testing.T, svc TaskSvc) model {
	t.Helper()

	m := newModel(svc, testLogger(), testConfig())
	m, _ = m.updateParent(tea.WindowSizeMsg{Width: 80, Height: 24})
	return run(t, m, m.reload)
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()

	require.NotNil(t, cmd)
	m, next := m.updateParent(cmd())
	require.Nil(t, next)
	return m
}

func enter(t *testing.T, m model, input string) (model, tea.Cmd) {
	t.Helper()

	m.userinput.SetValue(input)
	return m.updateParent(tea.KeyMsg{Type: tea.KeyEnter})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func texts(tasks []todo.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Text)
	}
	return out
}

// stubSvc serves a fixed snapshot and fails every mutation with err.
type stubSvc struct {
	tasks []todo.Task
	err   error
}

func (s *stubSvc) GetAllTasks(context.Context) ([]todo.Task, error) {
	return s.tasks, nil
}

func (s *stubSvc) AddTask(context.Context, string) (int, error) {
	return 0, s.err
}

func (s *stubSvc) EditTask(context.Context, int, string) error {
	return s.err
}

func (s *stubSvc) ToggleTask(context.Context, todo.Task) error {
	return s.err
}

func (s *stubSvc) DeleteTask(context.Context, int) error {
	return s.err
}

// testContext stands in for testing.T.Context (Go 1.24+): the returned
// context is canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
