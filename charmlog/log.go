// Package charmlog provides an implementation of todo.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/log"
)

type Options struct {
	Writer io.Writer
	Level  string
	// Prefix is prepended to every line, e.g. "todo".
	Prefix string
}

func NewLogger(opts Options) todo.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
}
