// Package installer writes registry files into a consumer project.
package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/roketin/r-component-cli/internal/aggregate"
	"github.com/roketin/r-component-cli/internal/config"
	"github.com/roketin/r-component-cli/internal/imports"
	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/registry"
	"github.com/roketin/r-component-cli/internal/transform"
)

// FileSource fetches raw registry files by registry-relative path.
type FileSource interface {
	FetchFile(ctx context.Context, path string) (string, error)
}

// Options control one Install run.
type Options struct {
	Cwd       string
	Overwrite bool
	// DryRun computes outcomes without fetching or writing
	DryRun bool
	// Concurrency bounds parallel installs; values below 1 mean sequential
	Concurrency int
}

// Status of a single file after Install.
type Status string

const (
	StatusCreated Status = "created"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned"
)

// Outcome records what happened to one file.
type Outcome struct {
	File   string `json:"file" yaml:"file"`
	Type   string `json:"type" yaml:"type"`
	Target string `json:"target" yaml:"target"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	err    error
}

// FileError is a per-file failure. It never aborts the batch.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.File, e.Err) }

func (e FileError) Unwrap() error { return e.Err }

type fileErrorDoc struct {
	File  string `json:"file" yaml:"file"`
	Error string `json:"error" yaml:"error"`
}

func (e FileError) doc() fileErrorDoc {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return fileErrorDoc{File: e.File, Error: msg}
}

// MarshalJSON renders the error as its message.
func (e FileError) MarshalJSON() ([]byte, error) { return json.Marshal(e.doc()) }

// MarshalYAML renders the error as its message.
func (e FileError) MarshalYAML() (interface{}, error) { return e.doc(), nil }

// Stats summarizes one Install run.
type Stats struct {
	Created int         `json:"created" yaml:"created"`
	Skipped int         `json:"skipped" yaml:"skipped"`
	Planned int         `json:"planned,omitempty" yaml:"planned,omitempty"`
	Errors  []FileError `json:"errors" yaml:"errors"`
	Files   []Outcome   `json:"files" yaml:"files"`
}

// Installer fetches, rewrites and writes files.
type Installer struct {
	source      FileSource
	config      *config.Config
	transformer *transform.Transformer
	scanner     *imports.Scanner
	logger      logger.Leveled
	tracer      trace.Tracer
}

// New creates an installer for the project described by cfg.
func New(source FileSource, cfg *config.Config, l logger.Logger) *Installer {
	return &Installer{
		source:      source,
		config:      cfg,
		transformer: transform.New(cfg),
		scanner:     imports.NewScanner(),
		logger:      logger.AsLeveled(l),
		tracer:      otel.Tracer("github.com/roketin/r-component-cli/internal/installer"),
	}
}

type job struct {
	entry  registry.FileEntry
	target string
	slot   int
}

// Install processes files in install order: libs, ui, then components.
// Failures are collected in the returned stats.
func (i *Installer) Install(ctx context.Context, files aggregate.Files, opts Options) *Stats {
	ctx, span := i.tracer.Start(ctx, "installer.install", trace.WithAttributes(
		attribute.Int("files", files.Len()),
		attribute.Bool("dry_run", opts.DryRun),
	))
	defer span.End()

	entries := files.All()
	outcomes := make([]Outcome, len(entries))

	// targets are claimed up front so a flattened name collision always
	// loses to the file that comes first in install order
	claimed := make(map[string]string)
	var jobs []job
	for n, entry := range entries {
		target := TargetPath(opts.Cwd, i.config, entry)
		outcomes[n] = Outcome{File: entry.Path, Type: typeLabel(entry.Type), Target: target}

		if first, ok := claimed[target]; ok {
			outcomes[n].Status = StatusSkipped
			outcomes[n].Reason = ReasonDuplicate
			i.logger.Warn(fmt.Sprintf("%s resolves to the same file as %s, skipping", entry.Path, first))
			continue
		}
		claimed[target] = entry.Path
		jobs = append(jobs, job{entry: entry, target: target, slot: n})
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			outcomes[j.slot] = i.installOne(ctx, j, opts)
			return nil
		})
	}
	_ = g.Wait()

	stats := &Stats{Files: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case StatusCreated:
			stats.Created++
		case StatusSkipped:
			stats.Skipped++
		case StatusPlanned:
			stats.Planned++
		case StatusFailed:
			stats.Errors = append(stats.Errors, FileError{File: o.File, Err: o.err})
		}
	}

	span.SetAttributes(
		attribute.Int("created", stats.Created),
		attribute.Int("skipped", stats.Skipped),
		attribute.Int("failed", len(stats.Errors)),
	)
	return stats
}

func (i *Installer) installOne(ctx context.Context, j job, opts Options) Outcome {
	out := Outcome{File: j.entry.Path, Type: typeLabel(j.entry.Type), Target: j.target}
	display := i.display(opts.Cwd, j.target)

	fail := func(err error) Outcome {
		out.Status = StatusFailed
		out.Reason = err.Error()
		out.err = err
		i.logger.Error(fmt.Sprintf("Failed to install %s: %v", j.entry.Path, err))
		return out
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if !opts.Overwrite && exists(j.target) {
		out.Status = StatusSkipped
		out.Reason = ReasonExists
		i.logger.Skip(fmt.Sprintf("Skipped %s (already exists)", display))
		return out
	}

	if opts.DryRun {
		out.Status = StatusPlanned
		i.logger.Info(fmt.Sprintf("Would write %s", display))
		return out
	}

	content, err := i.source.FetchFile(ctx, j.entry.Path)
	if err != nil {
		return fail(err)
	}

	content = i.transformer.Transform(content)
	i.audit(ctx, j.target, content)

	res, err := Write(j.target, content, opts.Overwrite)
	if err != nil {
		return fail(err)
	}
	if !res.Written {
		out.Status = StatusSkipped
		out.Reason = res.Reason
		i.logger.Skip(fmt.Sprintf("Skipped %s (already exists)", display))
		return out
	}

	out.Status = StatusCreated
	i.logger.Success(fmt.Sprintf("Created %s", display))
	return out
}

// audit warns about internal imports the transformer left untouched.
func (i *Installer) audit(ctx context.Context, target, content string) {
	found, err := i.scanner.Scan(ctx, target, []byte(content))
	if err != nil {
		i.logger.Debugf("import audit of %s failed: %v", target, err)
		return
	}
	for _, imp := range imports.Unresolved(found, transform.InternalRoot) {
		i.logger.Warn(fmt.Sprintf("%s:%d imports %s, which has no alias in this project", filepath.Base(target), imp.Line, imp.Path))
	}
}

func (i *Installer) display(cwd, target string) string {
	if rel, err := filepath.Rel(cwd, target); err == nil {
		return rel
	}
	return target
}

func typeLabel(t registry.FileType) string {
	if t == registry.FileTypeUnknown {
		return registry.FileTypeComponent.String()
	}
	return t.String()
}
