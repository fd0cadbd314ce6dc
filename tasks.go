package todo

import (
	"context"
)

type TaskRepo interface {
	GetTask(ctx context.Context, id int) (Task, error)
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, text string) (int, error)
	// UpdateTask applies the non-nil fields of the patch. An empty patch or an
	// unknown id is a no-op.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) error
	// DeleteTask removes the task. An unknown id is a no-op.
	DeleteTask(ctx context.Context, id int) error
}
