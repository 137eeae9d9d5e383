package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roketin/r-component-cli/internal/installer"
	"github.com/roketin/r-component-cli/internal/logger"
)

// PrintSummary reports the counts of an install run and every failure.
func PrintSummary(l logger.Leveled, stats *installer.Stats) {
	if stats == nil {
		return
	}

	if stats.Created > 0 {
		l.Success(fmt.Sprintf("Created %d file(s)", stats.Created))
	}
	if stats.Planned > 0 {
		l.Info(fmt.Sprintf("Would create %d file(s)", stats.Planned))
	}
	if stats.Skipped > 0 {
		l.Skip(fmt.Sprintf("Skipped %d existing file(s)", stats.Skipped))
	}
	if len(stats.Errors) > 0 {
		l.Error(fmt.Sprintf("Failed %d file(s):", len(stats.Errors)))
		for _, e := range stats.Errors {
			l.Log(fmt.Sprintf("  - %s: %v", e.File, e.Err))
		}
	}
	if stats.Created+stats.Planned+stats.Skipped+len(stats.Errors) == 0 {
		l.Info("Nothing to install")
	}
}

// RenderOutcomes returns a per-file table of an install run.
func RenderOutcomes(outcomes []installer.Outcome, cwd string) string {
	if len(outcomes) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Files\n")
	b.WriteString(strings.Repeat("-", 5))
	b.WriteString("\n")

	for _, o := range outcomes {
		target := o.Target
		if rel, err := filepath.Rel(cwd, o.Target); err == nil {
			target = rel
		}
		fmt.Fprintf(&b, "  %s %-8s %-10s %s", statusGlyph(o.Status), o.Status, o.Type, target)
		if o.Reason != "" && o.Status != installer.StatusFailed {
			fmt.Fprintf(&b, " %s", hintStyle.Render("("+o.Reason+")"))
		}
		b.WriteString("\n")
		if o.Status == installer.StatusFailed {
			fmt.Fprintf(&b, "    %s\n", o.Reason)
		}
	}

	return b.String()
}

func statusGlyph(s installer.Status) string {
	switch s {
	case installer.StatusCreated:
		return "✔"
	case installer.StatusSkipped:
		return "○"
	case installer.StatusFailed:
		return "✖"
	default:
		return "•"
	}
}
