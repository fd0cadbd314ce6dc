package todo

import (
	"fmt"
	"strings"
)

type Filter int

const (
	FilterAll Filter = iota
	FilterDone
	FilterUndone
)

var filterNames = [...]string{
	FilterAll:    "ALL",
	FilterDone:   "DONE",
	FilterUndone: "UNDONE",
}

// Filters lists every filter in selector order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterDone, FilterUndone}
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters() {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return Filter((int(f) + 1) % len(filterNames))
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterDone:
		return t.Done
	case FilterUndone:
		return !t.Done
	default:
		return true
	}
}

// VisibleTasks returns the tasks matching f in their original order.
// The input slice is never modified.
func VisibleTasks(tasks []Task, f Filter) []Task {
	visible := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			visible = append(visible, t)
		}
	}
	return visible
}
