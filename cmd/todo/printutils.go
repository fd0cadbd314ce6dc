package main

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
)

func colorize(color string, s string) string {
	return color + s + colorReset
}
