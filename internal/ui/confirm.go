package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmModel struct {
	message   string
	value     bool
	done      bool
	cancelled bool
}

func newConfirmModel(message string, def bool) *confirmModel {
	return &confirmModel{message: message, value: def}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.value = !m.value
	}
	return m, nil
}

func (m *confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.value {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s %s\n", questionStyle.Render("?"), m.message, answerStyle.Render(answer))
	}
	if m.cancelled {
		return fmt.Sprintf("%s %s\n", questionStyle.Render("?"), m.message)
	}

	choices := "y/N"
	if m.value {
		choices = "Y/n"
	}
	return fmt.Sprintf("%s %s %s ", questionStyle.Render("?"), m.message, hintStyle.Render("("+choices+")"))
}
