package main

import (
	"context"
	"errors"
	"strings"

	"github.com/benjamonnguyen/todo"
)

var ErrBlankText = errors.New("task text is blank")

type TaskSvc interface {
	GetAllTasks(ctx context.Context) ([]todo.Task, error)
	AddTask(ctx context.Context, text string) (int, error)
	EditTask(ctx context.Context, id int, text string) error
	ToggleTask(ctx context.Context, t todo.Task) error
	DeleteTask(ctx context.Context, id int) error
}

// impl
type taskSvc struct {
	repo todo.TaskRepo
}

func NewTaskSvc(taskRepo todo.TaskRepo) TaskSvc {
	return &taskSvc{
		repo: taskRepo,
	}
}

func (s *taskSvc) GetAllTasks(ctx context.Context) ([]todo.Task, error) {
	return s.repo.ListTasks(ctx)
}

func (s *taskSvc) AddTask(ctx context.Context, text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrBlankText
	}
	return s.repo.CreateTask(ctx, text)
}

func (s *taskSvc) EditTask(ctx context.Context, id int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrBlankText
	}
	return s.repo.UpdateTask(ctx, id, todo.TaskPatch{}.WithText(text))
}

func (s *taskSvc) ToggleTask(ctx context.Context, t todo.Task) error {
	return s.repo.UpdateTask(ctx, t.ID, todo.TaskPatch{}.WithDone(!t.Done))
}

func (s *taskSvc) DeleteTask(ctx context.Context, id int) error {
	return s.repo.DeleteTask(ctx, id)
}
