package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputModel struct {
	message   string
	def       string
	field     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(message, def string) *inputModel {
	field := textinput.New()
	field.Prompt = ""
	field.Placeholder = def
	field.SetValue(def)
	field.CursorEnd()
	field.Focus()

	return &inputModel{message: message, def: def, field: field}
}

func (m *inputModel) Init() tea.Cmd { return textinput.Blink }

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

// Value returns the entered text, or the default when left empty.
func (m *inputModel) Value() string {
	if v := strings.TrimSpace(m.field.Value()); v != "" {
		return v
	}
	return m.def
}

func (m *inputModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s %s\n", questionStyle.Render("?"), m.message, answerStyle.Render(m.Value()))
	}
	if m.cancelled {
		return fmt.Sprintf("%s %s\n", questionStyle.Render("?"), m.message)
	}
	return fmt.Sprintf("%s %s %s", questionStyle.Render("?"), m.message, m.field.View())
}
