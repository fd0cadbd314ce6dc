package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
)

const (
	SelectAll = "SELECT id, text, done, created_at, finished_at FROM tasks"
)

var ErrNotFound = errors.New("not found")

type taskEntity struct {
	ID         int
	Text       string
	Done       int
	CreatedAt  datetime
	FinishedAt datetime
}

// taskRepo
type taskRepo struct {
	db  *sql.DB
	l   todo.Logger
	now func() time.Time
}

var _ todo.TaskRepo = (*taskRepo)(nil)

func NewTaskRepo(db *sql.DB, logger todo.Logger) todo.TaskRepo {
	return &taskRepo{
		db:  db,
		l:   logger,
		now: time.Now,
	}
}

func (r *taskRepo) GetTask(ctx context.Context, id int) (todo.Task, error) {
	if id == 0 {
		return todo.Task{}, fmt.Errorf("provide id")
	}

	row := r.db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAll), id,
	)

	t, err := extractTask(row)
	if err != nil {
		return todo.Task{}, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return t, nil
}

func (r *taskRepo) ListTasks(ctx context.Context) ([]todo.Task, error) {
	query := SelectAll + " ORDER BY id DESC"
	r.l.Debug("listing tasks", "query", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	return extractTasks(rows)
}

func (r *taskRepo) CreateTask(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("provide required field 'Text'")
	}

	query := "INSERT INTO tasks (text, done, created_at) VALUES (?, 0, ?)"
	args := []any{text, formatTimestamp(r.now())}
	r.l.Debug("creating task", "query", query, "args", args)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *taskRepo) UpdateTask(ctx context.Context, id int, patch todo.TaskPatch) error {
	if patch.IsEmpty() {
		r.l.Debug("skipping empty update", "id", id)
		return nil
	}
	if patch.Text != nil && *patch.Text == "" {
		return fmt.Errorf("provide required field 'Text'")
	}

	var sets []string
	var args []any
	if patch.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *patch.Text)
	}
	if patch.Done != nil {
		if *patch.Done {
			sets = append(sets, "done = 1", "finished_at = ?")
			args = append(args, formatTimestamp(r.now()))
		} else {
			sets = append(sets, "done = 0", "finished_at = NULL")
		}
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	r.l.Debug("updating task", "query", query, "args", args)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.l.Debug("update matched no task", "id", id)
	}
	return nil
}

func (r *taskRepo) DeleteTask(ctx context.Context, id int) error {
	query := "DELETE FROM tasks WHERE id = ?"
	r.l.Debug("deleting task", "query", query, "id", id)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.l.Debug("delete matched no task", "id", id)
	}
	return nil
}

func extractTasks(rows *sql.Rows) ([]todo.Task, error) {
	var tasks []todo.Task
	for rows.Next() {
		task, err := extractTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func extractTask(s scannable) (todo.Task, error) {
	var e taskEntity
	if err := s.Scan(&e.ID, &e.Text, &e.Done, &e.CreatedAt, &e.FinishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return todo.Task{}, ErrNotFound
		}
		return todo.Task{}, err
	}

	return mapToTask(e), nil
}

func mapToTask(e taskEntity) todo.Task {
	t := todo.Task{
		ID:   e.ID,
		Text: e.Text,
		Done: e.Done != 0,
	}
	if e.CreatedAt.Valid {
		t.CreatedAt = e.CreatedAt.Time
	}
	if e.FinishedAt.Valid {
		t.FinishedAt = e.FinishedAt.Time
	}
	return t
}
