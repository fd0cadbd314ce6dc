package main

import (
	"fmt"
	"strings"

	"github.com/benjamonnguyen/todo"
	"github.com/dustin/go-humanize"
)

func renderTask(t todo.Task, selected, editing bool, timeFormat string) string {
	var sb strings.Builder
	if selected {
		sb.WriteString(colorize(colorCyan, "> "))
	} else {
		sb.WriteString("  ")
	}

	if t.Done {
		sb.WriteString(colorize(colorGreen, "[x] "))
		sb.WriteString(doneStyle.Render(t.Text))
	} else {
		sb.WriteString("[ ] ")
		sb.WriteString(t.Text)
	}

	if t.Done && !t.FinishedAt.IsZero() {
		sb.WriteString(faintStyle.Render(fmt.Sprintf(
			"  done %s (%s)",
			t.FinishedAt.Format(timeFormat),
			humanize.Time(t.FinishedAt),
		)))
	}
	if editing {
		sb.WriteString(colorize(colorYellow, "  (editing)"))
	}

	return sb.String()
}
