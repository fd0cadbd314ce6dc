package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benjamonnguyen/todo"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const logo = `
	████████╗ ██████╗ ██████╗  ██████╗
	╚══██╔══╝██╔═══██╗██╔══██╗██╔═══██╗
	   ██║   ██║   ██║██║  ██║██║   ██║
	   ██║   ██║   ██║██║  ██║██║   ██║
	   ██║   ╚██████╔╝██████╔╝╚██████╔╝
	   ╚═╝    ╚═════╝ ╚═════╝  ╚═════╝`

const programUsage = `Usage:
  todo: open the task list
  todo <task>: open the task list with <task> in the input
  todo /a <task>: add a task and exit
  todo /h: show this message`

const commandHelp = `COMMANDS:
  <task>: add a task, or save the task being edited
  /t: toggle done for the selected task
  /e: edit the selected task
  /x: delete the selected task
  /f [all|done|undone]: filter tasks; if no filter is provided, cycle to the next one
  /h: show this help

KEYS:
  up/down: select task
  tab: cycle filter
  esc: cancel edit
  ctrl+c: quit
`

const (
	addPrompt  = "add> "
	editPrompt = "edit> "
)

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model

	// supplied
	l       todo.Logger
	taskSvc TaskSvc

	// state
	tasks         []todo.Task
	editingID     int
	filter        todo.Filter
	cursor        int
	pendingDelete *todo.Task
	busy          bool
	alerts        []string
	quitting      bool
	h             int

	// configuration
	cmdTimeout time.Duration
	timeFormat string
}

func newModel(taskSvc TaskSvc, l todo.Logger, conf todo.Config) model {
	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.Placeholder = "What needs doing?"
	userinput.PromptStyle = promptStyle

	m := model{
		l:          l,
		taskSvc:    taskSvc,
		timeFormat: conf.TimeFormat,
		cmdTimeout: conf.CmdTimeout,
		userinput:  userinput,
		vp:         viewport.New(0, 0),
	}
	m.setPrompt()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.reload, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, cmd tea.Cmd

	// the confirmation prompt swallows the key it is answered with
	confirming := m.pendingDelete != nil

	m, cmd = m.updateParent(msg)

	// update children

	switch msg.(type) {
	case tea.KeyMsg:
		if !confirming {
			m.userinput, tiCmd = m.userinput.Update(msg)
		}
		// vp updates on KeyMsg would fight the cursor for the scroll offset
	default:
		m.userinput, tiCmd = m.userinput.Update(msg)
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.busy = false
		m.l.Error("command failed", "error", msg.err)
		m.addAlert(msg.err.Error(), colorRed)
		m.refresh()
		return m, nil
	case TasksLoadedMsg:
		m.busy = false
		m.tasks = msg.tasks
		if msg.submitted {
			m.userinput.Reset()
			m.editingID = 0
		}
		if m.editingID != 0 && m.findTask(m.editingID) == nil {
			m.cancelEdit()
		}
		m.setPrompt()
		m.clampCursor()
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.pendingDelete != nil {
			return m.answerDelete(msg)
		}

		switch msg.Type {
		case tea.KeyEnter:
			input := strings.TrimSpace(m.userinput.Value())
			if strings.HasPrefix(input, "/") {
				m.userinput.Reset()
				m.alerts = nil
				var cmd tea.Cmd
				m, cmd = m.handleCommand(input)
				m.refresh()
				return m, cmd
			}
			return m.submit()
		case tea.KeyUp, tea.KeyCtrlP:
			m.moveCursor(-1)
		case tea.KeyDown, tea.KeyCtrlN:
			m.moveCursor(1)
		case tea.KeyTab:
			m.setFilter(m.filter.Next())
		case tea.KeyEsc:
			m.cancelEdit()
			m.refresh()
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// reload lists every task and yields a TasksLoadedMsg.
func (m model) reload() tea.Msg {
	timeout, cancel := m.newTimeout()
	defer cancel()

	tasks, err := m.taskSvc.GetAllTasks(timeout)
	if err != nil {
		return errorMsg("failed to load tasks: %w", err)
	}

	return TasksLoadedMsg{
		tasks: tasks,
	}
}

// mutate runs op and then reloads, all within one command timeout.
func (m model) mutate(submitted bool, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		timeout, cancel := m.newTimeout()
		defer cancel()

		if err := op(timeout); err != nil {
			return ErrorMsg{
				err: err,
			}
		}

		tasks, err := m.taskSvc.GetAllTasks(timeout)
		if err != nil {
			return errorMsg("failed to load tasks: %w", err)
		}

		return TasksLoadedMsg{
			tasks:     tasks,
			submitted: submitted,
		}
	}
}

func (m model) submit() (model, tea.Cmd) {
	text := strings.TrimSpace(m.userinput.Value())
	if text == "" || m.busy {
		return m, nil
	}

	m.busy = true
	m.alerts = nil
	if id := m.editingID; id != 0 {
		m.l.Debug("editing task", "id", id, "text", text)
		return m, m.mutate(true, func(ctx context.Context) error {
			return m.taskSvc.EditTask(ctx, id, text)
		})
	}

	m.l.Debug("adding task", "text", text)
	return m, m.mutate(true, func(ctx context.Context) error {
		_, err := m.taskSvc.AddTask(ctx, text)
		return err
	})
}

func (m model) toggle(t todo.Task) (model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	m.busy = true
	return m, m.mutate(false, func(ctx context.Context) error {
		return m.taskSvc.ToggleTask(ctx, t)
	})
}

func (m *model) beginEdit(t todo.Task) {
	m.editingID = t.ID
	m.userinput.SetValue(t.Text)
	m.userinput.CursorEnd()
	m.setPrompt()
}

func (m *model) cancelEdit() {
	if m.editingID == 0 {
		return
	}
	m.editingID = 0
	m.userinput.Reset()
	m.setPrompt()
}

func (m *model) requestDelete(t todo.Task) {
	m.pendingDelete = &t
}

func (m model) confirmDelete() (model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	id := m.pendingDelete.ID
	m.pendingDelete = nil
	m.busy = true
	m.refresh()
	return m, m.mutate(false, func(ctx context.Context) error {
		return m.taskSvc.DeleteTask(ctx, id)
	})
}

func (m *model) cancelDelete() {
	m.pendingDelete = nil
	m.refresh()
}

func (m model) answerDelete(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.confirmDelete()
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	default:
		m.cancelDelete()
		return m, nil
	}
}

func (m model) visibleTasks() []todo.Task {
	return todo.VisibleTasks(m.tasks, m.filter)
}

func (m model) selectedTask() *todo.Task {
	visible := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return &visible[m.cursor]
}

func (m model) findTask(id int) *todo.Task {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i]
		}
	}
	return nil
}

func (m *model) setFilter(f todo.Filter) {
	m.filter = f
	m.cursor = 0
	m.refresh()
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.refresh()
}

func (m *model) clampCursor() {
	n := len(m.visibleTasks())
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m *model) setPrompt() {
	if m.editingID != 0 {
		m.userinput.Prompt = editPrompt
		return
	}
	m.userinput.Prompt = addPrompt
}

func (m model) handleCommand(input string) (model, tea.Cmd) {
	parts := strings.SplitN(input, " ", 2)
	switch parts[0] {
	case "/t":
		t := m.selectedTask()
		if t == nil {
			m.addAlert("no task selected", colorRed)
			return m, nil
		}
		return m.toggle(*t)
	case "/e":
		t := m.selectedTask()
		if t == nil {
			m.addAlert("no task selected", colorRed)
			return m, nil
		}
		m.beginEdit(*t)
		return m, nil
	case "/x":
		t := m.selectedTask()
		if t == nil {
			m.addAlert("no task selected", colorRed)
			return m, nil
		}
		m.requestDelete(*t)
		return m, nil
	case "/f":
		if len(parts) < 2 {
			m.setFilter(m.filter.Next())
			return m, nil
		}
		f, err := todo.ParseFilter(parts[1])
		if err != nil {
			m.addAlert("usage: /f [all|done|undone]", colorYellow)
			return m, nil
		}
		m.setFilter(f)
		return m, nil
	case "/h":
		m.addAlert(commandHelp, colorYellow)
		return m, nil
	default:
		m.addAlert(fmt.Sprintf("unknown command %q; enter /h for help", parts[0]), colorRed)
		return m, nil
	}
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	if m.pendingDelete != nil {
		footer.WriteString(colorize(colorRed, fmt.Sprintf("Delete %q? [y/N]", m.pendingDelete.Text)))
	} else {
		footer.WriteString(m.userinput.View())
	}
	footer.WriteString("\n\n")

	footer.WriteString(m.renderFilters())
	footer.WriteString("\n\n")

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
		return footer.String()
	}

	footer.WriteString(faintStyle.Render("(/h for help, ctrl+c to quit)"))
	footer.WriteRune('\n')
	return footer.String()
}

func (m model) renderFilters() string {
	var parts []string
	for _, f := range todo.Filters() {
		label := fmt.Sprintf("%s (%d)", f, len(todo.VisibleTasks(m.tasks, f)))
		if f == m.filter {
			parts = append(parts, colorize(colorCyan, label))
		} else {
			parts = append(parts, faintStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m model) renderVisibleTasks() string {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return faintStyle.Render(fmt.Sprintf("No tasks (%s).", m.filter))
	}

	lines := make([]string, 0, len(visible))
	for i, t := range visible {
		lines = append(lines, renderTask(t, i == m.cursor, t.ID == m.editingID, m.timeFormat))
	}
	return strings.Join(lines, "\n")
}

func (m model) View() string {
	return lipgloss.JoinVertical(0, m.vp.View(), m.renderFooter())
}

func (m model) newTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cmdTimeout)
}

func (m *model) addAlert(alert string, c string) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

func (m *model) refresh() {
	m.vp.SetContent(m.renderVisibleTasks())
	m.resizeViewport()
	m.scrollToCursor()
}

func (m *model) resizeViewport() {
	tasksHeight := lipgloss.Height(m.renderVisibleTasks())
	footerHeight := lipgloss.Height(m.renderFooter())
	m.vp.Height = max(0, min(tasksHeight, m.h-footerHeight))
}

func (m *model) scrollToCursor() {
	if m.vp.Height == 0 {
		return
	}
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}
