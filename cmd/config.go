package cmd

import (
	"io"
	"os"

	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/metrics"
	"github.com/roketin/r-component-cli/internal/ui"
)

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Logger  *logger.Console
	Metrics *metrics.Recorder

	// Output format for command results: text, json or yaml
	Output string

	// Registry index URL from --registry; empty defers to env and config
	Registry string

	// Prometheus textfile written when the command finishes
	MetricsFile string

	// Prompts are shown only when attached to a terminal
	Interactive bool

	in  io.Reader
	out io.Writer
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(in io.Reader, out io.Writer) *AppConfig {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &AppConfig{
		Logger:  logger.NewConsole(out, false),
		Metrics: metrics.New(metrics.WithConstLabels(map[string]string{"cli": "r-component"})),
		Output:  outputText,
		in:      in,
		out:     out,
	}
}

// Prompter returns terminal prompts, or defaults when not interactive.
func (c *AppConfig) Prompter() ui.Asker {
	if !c.Interactive {
		return ui.Defaults{}
	}
	return ui.NewPrompter(c.in, c.out)
}

// Structured reports whether results are emitted as json or yaml.
func (c *AppConfig) Structured() bool {
	return c.Output != outputText
}
