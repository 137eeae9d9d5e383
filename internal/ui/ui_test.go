package ui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roketin/r-component-cli/internal/installer"
	"github.com/roketin/r-component-cli/internal/logger"
)

func keys(s ...string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, k := range s {
		switch k {
		case "enter":
			out = append(out, tea.KeyMsg{Type: tea.KeyEnter})
		case "down":
			out = append(out, tea.KeyMsg{Type: tea.KeyDown})
		case "up":
			out = append(out, tea.KeyMsg{Type: tea.KeyUp})
		case "space":
			out = append(out, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		case "esc":
			out = append(out, tea.KeyMsg{Type: tea.KeyEsc})
		default:
			out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
	return out
}

func press(m tea.Model, msgs ...tea.KeyMsg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestMultiSelect(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		want   []string
		cancel bool
	}{
		{"pick second", []string{"down", "space", "enter"}, []string{"r-card"}, false},
		{"wrap up to last", []string{"up", "space", "enter"}, []string{"r-input"}, false},
		{"toggle all", []string{"a", "enter"}, []string{"r-btn", "r-card", "r-input"}, false},
		{"toggle all twice", []string{"a", "a", "enter"}, nil, false},
		{"nothing", []string{"enter"}, nil, false},
		{"cancel", []string{"space", "esc"}, []string{"r-btn"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newMultiSelectModel("Select components to add:", []string{"r-btn", "r-card", "r-input"}), keys(tt.keys...)...).(*multiSelectModel)
			if m.cancelled != tt.cancel {
				t.Errorf("cancelled = %v", m.cancelled)
			}
			if got := m.Selected(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiSelect_View(t *testing.T) {
	m := newMultiSelectModel("Select components to add:", []string{"r-btn", "r-card"})
	view := m.View()
	if !strings.Contains(view, "Select components to add:") || !strings.Contains(view, "r-card") {
		t.Errorf("unexpected view:\n%s", view)
	}

	m = press(m, keys("space", "enter")...).(*multiSelectModel)
	if view := m.View(); !strings.Contains(view, "r-btn") || strings.Contains(view, "r-card") {
		t.Errorf("final view should show only the answer:\n%s", view)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name   string
		def    bool
		keys   []string
		want   bool
		cancel bool
	}{
		{"enter keeps default yes", true, []string{"enter"}, true, false},
		{"enter keeps default no", false, []string{"enter"}, false, false},
		{"y", false, []string{"y"}, true, false},
		{"n", true, []string{"n"}, false, false},
		{"toggle", true, []string{"l", "enter"}, false, false},
		{"esc", true, []string{"esc"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newConfirmModel("Proceed with installation?", tt.def), keys(tt.keys...)...).(*confirmModel)
			if m.value != tt.want || m.cancelled != tt.cancel {
				t.Errorf("value = %v cancelled = %v", m.value, m.cancelled)
			}
		})
	}
}

func TestInput(t *testing.T) {
	m := press(newInputModel("Component subdirectory name:", "base"), keys("enter")...).(*inputModel)
	if !m.done || m.Value() != "base" {
		t.Errorf("default not kept: %q", m.Value())
	}

	m = newInputModel("Component subdirectory name:", "")
	m = press(m, keys("c", "o", "r", "e", "enter")...).(*inputModel)
	if m.Value() != "core" {
		t.Errorf("Value() = %q, want core", m.Value())
	}
}

func TestDefaults(t *testing.T) {
	var d Defaults
	ctx := context.Background()
	if sel, _ := d.Select(ctx, "x", []string{"a"}); sel != nil {
		t.Errorf("Select() = %v", sel)
	}
	if ok, _ := d.Confirm(ctx, "x", true); !ok {
		t.Error("Confirm() should return the default")
	}
	if v, _ := d.Input(ctx, "x", "src/components"); v != "src/components" {
		t.Errorf("Input() = %q", v)
	}
}

type lines struct {
	logger.Nop
	out []string
}

func (l *lines) Success(msg string) { l.out = append(l.out, "ok "+msg) }
func (l *lines) Skip(msg string)    { l.out = append(l.out, "skip "+msg) }
func (l *lines) Error(msg string)   { l.out = append(l.out, "error "+msg) }
func (l *lines) Log(msg string)     { l.out = append(l.out, msg) }

func TestPrintSummary(t *testing.T) {
	l := &lines{}
	PrintSummary(l, &installer.Stats{
		Created: 2,
		Skipped: 1,
		Errors:  []installer.FileError{{File: "libs/x.ts", Err: errors.New("404")}},
	})

	want := []string{
		"ok Created 2 file(s)",
		"skip Skipped 1 existing file(s)",
		"error Failed 1 file(s):",
		"  - libs/x.ts: 404",
	}
	if !reflect.DeepEqual(l.out, want) {
		t.Errorf("summary = %q, want %q", l.out, want)
	}
}

func TestRenderOutcomes(t *testing.T) {
	out := RenderOutcomes([]installer.Outcome{
		{File: "libs/utils.ts", Type: "lib", Target: "/p/src/libs/utils.ts", Status: installer.StatusCreated},
		{File: "a.tsx", Type: "component", Target: "/p/src/components/base/a.tsx", Status: installer.StatusSkipped, Reason: installer.ReasonExists},
		{File: "b.tsx", Type: "component", Target: "/p/src/components/base/b.tsx", Status: installer.StatusFailed, Reason: "boom"},
	}, "/p")

	for _, want := range []string{"src/libs/utils.ts", "(exists)", "boom", "✖ failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if RenderOutcomes(nil, "/p") != "" {
		t.Error("no outcomes should render nothing")
	}
}

func TestRunSpinnerTo(t *testing.T) {
	var out strings.Builder
	want := errors.New("boom")
	err := RunSpinnerTo(context.Background(), &out, "Installing dependencies...", func() error { return want })
	if !errors.Is(err, want) {
		t.Errorf("RunSpinnerTo() = %v, want %v", err, want)
	}
}
