package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const pageSize = 12

type multiSelectModel struct {
	title     string
	choices   []string
	selected  map[int]bool
	cursor    int
	offset    int
	done      bool
	cancelled bool
}

func newMultiSelectModel(title string, choices []string) *multiSelectModel {
	return &multiSelectModel{
		title:    title,
		choices:  choices,
		selected: make(map[int]bool),
	}
}

func (m *multiSelectModel) Init() tea.Cmd { return nil }

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	if len(m.choices) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.choices)) % len(m.choices)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.choices)
	case " ", "x":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.Selected()) == len(m.choices)
		for i := range m.choices {
			m.selected[i] = !all
		}
	}

	// keep the cursor inside the visible page
	if m.cursor < m.offset {
		m.offset = m.cursor
	} else if m.cursor >= m.offset+pageSize {
		m.offset = m.cursor - pageSize + 1
	}
	return m, nil
}

// Selected returns the chosen items in list order.
func (m *multiSelectModel) Selected() []string {
	var out []string
	for i, c := range m.choices {
		if m.selected[i] {
			out = append(out, c)
		}
	}
	return out
}

func (m *multiSelectModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", questionStyle.Render("?"), m.title)

	if m.done || m.cancelled {
		if sel := m.Selected(); m.done && len(sel) > 0 {
			fmt.Fprintf(&b, " %s", answerStyle.Render(strings.Join(sel, ", ")))
		}
		b.WriteString("\n")
		return b.String()
	}

	fmt.Fprintf(&b, " %s\n", hintStyle.Render("- Space to select, a to toggle all, Enter to confirm"))

	end := m.offset + pageSize
	if end > len(m.choices) {
		end = len(m.choices)
	}
	for i := m.offset; i < end; i++ {
		pointer := " "
		if i == m.cursor {
			pointer = cursorStyle.Render("❯")
		}
		box := "◯"
		if m.selected[i] {
			box = selectedStyle.Render("◉")
		}
		fmt.Fprintf(&b, "%s %s %s\n", pointer, box, m.choices[i])
	}
	if len(m.choices) > pageSize {
		fmt.Fprintf(&b, "%s\n", hintStyle.Render(fmt.Sprintf("(%d/%d)", m.cursor+1, len(m.choices))))
	}
	return b.String()
}
