package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user leaves a prompt with esc or ctrl+c.
var ErrAborted = errors.New("prompt aborted")

// Selector picks any number of items from a list.
type Selector interface {
	Select(ctx context.Context, title string, choices []string) ([]string, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// Inputter asks for a line of text.
type Inputter interface {
	Input(ctx context.Context, message, def string) (string, error)
}

// Asker is every prompt kind together.
type Asker interface {
	Selector
	Confirmer
	Inputter
}

// Prompter runs the prompts as Bubble Tea programs.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter on the given streams, the terminal when nil.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, out: out}
}

// Select shows a multi-select list.
func (p *Prompter) Select(ctx context.Context, title string, choices []string) ([]string, error) {
	final, err := p.run(ctx, newMultiSelectModel(title, choices))
	if err != nil {
		return nil, err
	}
	m := final.(*multiSelectModel)
	if m.cancelled {
		return nil, ErrAborted
	}
	return m.Selected(), nil
}

// Confirm shows a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(message, def))
	if err != nil {
		return false, err
	}
	m := final.(*confirmModel)
	if m.cancelled {
		return false, ErrAborted
	}
	return m.value, nil
}

// Input shows a text field prefilled with def.
func (p *Prompter) Input(ctx context.Context, message, def string) (string, error) {
	final, err := p.run(ctx, newInputModel(message, def))
	if err != nil {
		return "", err
	}
	m := final.(*inputModel)
	if m.cancelled {
		return "", ErrAborted
	}
	return m.Value(), nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Defaults answers every prompt with its default. It stands in for the
// terminal when the process is not interactive.
type Defaults struct{}

// Select selects nothing.
func (Defaults) Select(ctx context.Context, title string, choices []string) ([]string, error) {
	return nil, nil
}

// Confirm returns def.
func (Defaults) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return def, nil
}

// Input returns def.
func (Defaults) Input(ctx context.Context, message, def string) (string, error) {
	return def, nil
}
