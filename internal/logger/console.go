package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlight    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dim          = lipgloss.NewStyle().Faint(true)
	bold         = lipgloss.NewStyle().Bold(true)
)

// Highlight renders text in the accent color used for names and commands.
func Highlight(text string) string { return highlight.Render(text) }

// Dim renders secondary text.
func Dim(text string) string { return dim.Render(text) }

// Bold renders a heading.
func Bold(text string) string { return bold.Render(text) }

// Console is the leveled terminal logger used by the CLI commands.
// Messages logged while a spinner runs replace the spinner text instead of
// interleaving with the animation.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	spinner *uiSpinner
}

// NewConsole creates a console logger writing to out (stdout when nil).
func NewConsole(out io.Writer, verbose bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{out: out, verbose: verbose}
}

// IsInteractive reports whether stdout is attached to a terminal.
// Used to decide when to use interactive UI elements like spinners and prompts.
func IsInteractive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	// If it's a pipe or regular file, it's not interactive
	if (fi.Mode() & os.ModeCharDevice) == 0 {
		return false
	}
	return true
}

func (c *Console) Logf(format string, args ...interface{}) {
	c.emit(fmt.Sprintf(format, args...), false)
}

func (c *Console) Log(msg string) {
	c.emit(msg, true)
}

func (c *Console) Info(msg string)    { c.Log(infoStyle.Render("ℹ") + " " + msg) }
func (c *Console) Success(msg string) { c.Log(successStyle.Render("✔") + " " + msg) }
func (c *Console) Warn(msg string)    { c.Log(warnStyle.Render("⚠") + " " + msg) }
func (c *Console) Error(msg string)   { c.Log(errorStyle.Render("✖") + " " + msg) }
func (c *Console) Skip(msg string)    { c.Log(skipStyle.Render("○") + " " + msg) }
func (c *Console) Break()             { c.Log("") }

// Debugf prints only when verbose output was requested.
func (c *Console) Debugf(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.Log(dim.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) emit(msg string, newline bool) {
	c.mu.Lock()
	s := c.spinner
	out := c.out
	c.mu.Unlock()
	if s != nil {
		text := strings.TrimSuffix(msg, "\n")
		text = strings.ReplaceAll(text, "\n", " ")
		s.Update(text)
		return
	}
	if newline {
		fmt.Fprintln(out, msg)
		return
	}
	fmt.Fprint(out, msg)
}

// StartSpinner begins an animated status line. On non-interactive output it
// prints the text once and returns a spinner that only reports the outcome.
func (c *Console) StartSpinner(text string) Spinner {
	if !IsInteractive() {
		return &plainSpinner{parent: c, text: text}
	}
	c.mu.Lock()
	if c.spinner != nil {
		c.spinner.internalStop(false)
		c.spinner = nil
	}
	s := &uiSpinner{parent: c, text: text, stopped: make(chan struct{}), done: make(chan struct{})}
	c.spinner = s
	c.mu.Unlock()
	go s.loop()
	return s
}

// plainSpinner reports the final state of an operation without animation.
type plainSpinner struct {
	parent *Console
	text   string
}

func (p *plainSpinner) Update(text string) { p.text = text }
func (p *plainSpinner) Stop()              { p.parent.Success(p.text) }
func (p *plainSpinner) Fail()              { p.parent.Error(p.text) }

// uiSpinner is a minimal spinner implementation suitable for simple CLI UIs.
// It uses a background goroutine to animate while printing to the console.
type uiSpinner struct {
	parent  *Console
	mu      sync.Mutex
	text    string
	stopped chan struct{}
	done    chan struct{}
	failed  bool
}

func (s *uiSpinner) loop() {
	defer close(s.done)
	frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
	i := 0
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	out := s.parent.out
	clear := func() { fmt.Fprint(out, "\r\033[2K") }
	for {
		select {
		case <-s.stopped:
			clear()
			return
		case <-ticker.C:
			s.mu.Lock()
			text := s.text
			s.mu.Unlock()
			clear()
			fmt.Fprintf(out, "%c %s", frames[i%len(frames)], text)
			i++
		}
	}
}

func (s *uiSpinner) Update(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *uiSpinner) internalStop(failed bool) {
	s.mu.Lock()
	s.failed = failed
	s.mu.Unlock()
	select {
	case <-s.stopped:
		// already stopped
	default:
		close(s.stopped)
	}
}

func (s *uiSpinner) finish(failed bool) {
	s.internalStop(failed)
	<-s.done
	s.parent.mu.Lock()
	if s.parent.spinner == s {
		s.parent.spinner = nil
	}
	s.parent.mu.Unlock()

	s.mu.Lock()
	text := s.text
	s.mu.Unlock()
	if failed {
		s.parent.Error(text)
		return
	}
	s.parent.Success(text)
}

func (s *uiSpinner) Stop() { s.finish(false) }
func (s *uiSpinner) Fail() { s.finish(true) }
