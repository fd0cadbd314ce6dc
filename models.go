package todo

import (
	"time"
)

type Task struct {
	ID         int
	Text       string
	Done       bool
	CreatedAt  time.Time
	FinishedAt time.Time
}

// TaskPatch holds the fields of an update. Nil fields are left untouched.
type TaskPatch struct {
	Text *string
	Done *bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Done == nil
}

func (p TaskPatch) WithText(text string) TaskPatch {
	p.Text = &text
	return p
}

func (p TaskPatch) WithDone(done bool) TaskPatch {
	p.Done = &done
	return p
}
