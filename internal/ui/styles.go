package ui

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)
