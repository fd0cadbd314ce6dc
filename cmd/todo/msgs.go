package main

import (
	"fmt"

	"github.com/benjamonnguyen/todo"
)

// TasksLoadedMsg carries a fresh snapshot of every task.
type TasksLoadedMsg struct {
	tasks []todo.Task
	// submitted is set when the snapshot follows a successful submit
	submitted bool
}

type ErrorMsg struct {
	err error
}

func errorMsg(format string, args ...any) ErrorMsg {
	return ErrorMsg{
		err: fmt.Errorf(format, args...),
	}
}
