// Package engine runs the add and list flows: fetch the registry index,
// select and validate components, resolve their dependency closure, and
// install the aggregated files.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roketin/r-component-cli/internal/aggregate"
	"github.com/roketin/r-component-cli/internal/config"
	"github.com/roketin/r-component-cli/internal/installer"
	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/metrics"
	"github.com/roketin/r-component-cli/internal/registry"
	"github.com/roketin/r-component-cli/internal/resolver"
	"github.com/roketin/r-component-cli/internal/ui"
)

var (
	ErrNothingSelected   = errors.New("no components selected")
	ErrNoValidComponents = errors.New("no valid components to add")
	ErrCancelled         = errors.New("installation cancelled")
)

// Request describes one add invocation.
type Request struct {
	Components  []string
	All         bool
	Yes         bool
	Overwrite   bool
	DryRun      bool
	Cwd         string
	Concurrency int
}

// Report is the result of a completed add.
type Report struct {
	// Requested components that matched the index, by canonical name
	Components []string `json:"components" yaml:"components"`

	// Every component in the dependency closure, in resolution order
	Resolved []string `json:"resolved" yaml:"resolved"`

	// Requested names missing from the index
	Invalid []string `json:"invalid" yaml:"invalid"`

	// Registry dependencies that could not be resolved
	Skipped []string `json:"skipped" yaml:"skipped"`

	Files        aggregate.Files  `json:"files" yaml:"files"`
	Dependencies []string         `json:"dependencies" yaml:"dependencies"`
	Stats        *installer.Stats `json:"stats" yaml:"stats"`
	DryRun       bool             `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
}

// Options configure an Engine.
type Options struct {
	// Registry holds explicit URL overrides. An empty IndexURL falls back to
	// the environment, then the project config, then the published registry.
	Registry  registry.Options
	Fetcher   registry.Fetcher
	Logger    logger.Logger
	Selector  ui.Selector
	Confirmer ui.Confirmer
	Metrics   *metrics.Recorder
}

// Engine runs one invocation at a time.
type Engine struct {
	opts   Options
	log    logger.Leveled
	state  State
	tracer trace.Tracer
}

// New creates an engine.
func New(opts Options) *Engine {
	if opts.Fetcher == nil {
		opts.Fetcher = registry.NewDefaultFetcher()
	}
	if opts.Confirmer == nil {
		opts.Confirmer = ui.Defaults{}
	}
	return &Engine{
		opts:   opts,
		log:    logger.AsLeveled(opts.Logger),
		tracer: otel.Tracer("github.com/roketin/r-component-cli/internal/engine"),
	}
}

// State returns the state the last invocation reached.
func (e *Engine) State() State { return e.state }

// Add installs the requested components and their dependencies into the
// project at req.Cwd. Aborts return a nil report unless names were
// validated, in which case the report carries the invalid names.
func (e *Engine) Add(ctx context.Context, req Request) (report *Report, err error) {
	started := time.Now()
	ctx, span := e.tracer.Start(ctx, "engine.add", trace.WithAttributes(
		attribute.StringSlice("components", req.Components),
		attribute.Bool("all", req.All),
	))
	defer func() {
		if err != nil {
			e.state = Aborted
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		e.opts.Metrics.ObserveDuration("add", time.Since(started))
		span.End()
	}()

	e.state = Idle
	cwd, err := resolveCwd(req.Cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			e.log.Error(fmt.Sprintf("Configuration file %s not found.", logger.Highlight(config.FileName)))
			e.log.Info(fmt.Sprintf("Run %s first.", logger.Highlight("npx r-component init")))
		}
		return nil, err
	}

	catalog, err := e.fetchCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	e.state = IndexFetched

	requested, err := e.selectComponents(ctx, catalog, req)
	if err != nil {
		return nil, err
	}

	report = &Report{DryRun: req.DryRun}
	report.Components, report.Invalid = validate(catalog, requested)
	e.opts.Metrics.ObserveSelection(len(report.Components), len(report.Invalid))
	if len(report.Invalid) > 0 {
		e.log.Warn(fmt.Sprintf("Unknown components: %s", strings.Join(report.Invalid, ", ")))
	}
	if len(report.Components) == 0 {
		e.log.Error("No valid components to add.")
		return report, ErrNoValidComponents
	}

	e.state = Resolving
	set, skipped, err := resolver.New(catalog, e.log).ResolveAll(ctx, report.Components)
	if err != nil {
		return report, err
	}
	report.Resolved = set.Names()
	report.Skipped = skipped

	files := aggregate.Aggregate(set)
	report.Files = files
	report.Dependencies = files.Dependencies
	e.state = Aggregated
	e.opts.Metrics.ObserveResolution(set.Len(), len(skipped), len(files.Dependencies))

	e.logPlan(report)

	if !req.Yes && !req.DryRun {
		proceed, err := e.opts.Confirmer.Confirm(ctx, "Proceed with installation?", true)
		if err != nil && !errors.Is(err, ui.ErrAborted) {
			return report, err
		}
		if !proceed || err != nil {
			e.log.Skip("Installation cancelled.")
			return report, ErrCancelled
		}
	}

	e.state = Installing
	inst := installer.New(catalog, cfg, e.log)
	report.Stats = inst.Install(ctx, files, installer.Options{
		Cwd:         cwd,
		Overwrite:   req.Overwrite,
		DryRun:      req.DryRun,
		Concurrency: req.Concurrency,
	})
	for _, o := range report.Stats.Files {
		e.opts.Metrics.ObserveFile(o.Type, string(o.Status))
	}

	e.state = Reported
	span.SetAttributes(
		attribute.Int("files.created", report.Stats.Created),
		attribute.Int("files.skipped", report.Stats.Skipped),
		attribute.Int("files.failed", len(report.Stats.Errors)),
	)
	return report, nil
}

// List fetches the registry index. The project config at cwd, when present,
// may override the registry URL.
func (e *Engine) List(ctx context.Context, cwd string) (index *registry.Index, err error) {
	started := time.Now()
	ctx, span := e.tracer.Start(ctx, "engine.list")
	defer func() {
		if err != nil {
			e.state = Aborted
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		e.opts.Metrics.ObserveDuration("list", time.Since(started))
		span.End()
	}()

	e.state = Idle
	cwd, err = resolveCwd(cwd)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if config.Exists(cwd) {
		if cfg, err = config.Load(cwd); err != nil {
			return nil, err
		}
	}

	catalog, err := e.fetchCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	e.state = IndexFetched
	return catalog.Index(), nil
}

func (e *Engine) fetchCatalog(ctx context.Context, cfg *config.Config) (*registry.Catalog, error) {
	opts := e.opts.Registry
	opts.IndexURL = config.RegistryURL(opts.IndexURL, cfg)
	client := registry.NewClient(opts, e.opts.Fetcher, e.log)

	spinner := logger.StartSpinner(e.log, "Fetching component registry...")
	index, err := client.FetchIndex(ctx)
	if err != nil {
		spinner.Update("Failed to fetch registry")
		spinner.Fail()
		e.log.Error(err.Error())
		return nil, err
	}
	spinner.Update("Registry loaded")
	spinner.Stop()

	return registry.NewCatalog(client, index), nil
}

func (e *Engine) selectComponents(ctx context.Context, catalog *registry.Catalog, req Request) ([]string, error) {
	if req.All {
		return catalog.Names(), nil
	}
	if len(req.Components) > 0 {
		return req.Components, nil
	}

	var selected []string
	if e.opts.Selector != nil {
		var err error
		selected, err = e.opts.Selector.Select(ctx, "Select components to add:", catalog.Names())
		if err != nil && !errors.Is(err, ui.ErrAborted) {
			return nil, err
		}
	}
	if len(selected) == 0 {
		e.log.Skip("No components selected.")
		return nil, ErrNothingSelected
	}
	return selected, nil
}

// validate splits requested names into canonical index names and unknowns.
// Both lists keep request order without duplicates.
func validate(catalog *registry.Catalog, requested []string) (valid, invalid []string) {
	seen := make(map[string]bool)
	for _, name := range requested {
		canonical, ok := catalog.Canonical(name)
		if !ok {
			if !seen["!"+name] {
				seen["!"+name] = true
				invalid = append(invalid, name)
			}
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			valid = append(valid, canonical)
		}
	}
	return valid, invalid
}

func (e *Engine) logPlan(report *Report) {
	e.log.Info(fmt.Sprintf("Components to add: %s", logger.Highlight(strings.Join(report.Components, ", "))))
	if extra := len(report.Resolved) - len(report.Components); extra > 0 {
		e.log.Debugf("dependency closure: %s", strings.Join(report.Resolved, ", "))
	}
	if libs := paths(report.Files.Libs); len(libs) > 0 {
		e.log.Info(fmt.Sprintf("Required libs: %s", logger.Dim(strings.Join(libs, ", "))))
	}
	if uiFiles := paths(report.Files.UI); len(uiFiles) > 0 {
		e.log.Info(fmt.Sprintf("Required ui: %s", logger.Dim(strings.Join(uiFiles, ", "))))
	}
	if len(report.Dependencies) > 0 {
		e.log.Info(fmt.Sprintf("Required npm packages: %s", logger.Dim(strings.Join(report.Dependencies, ", "))))
	}
	e.log.Break()
}

func paths(entries []registry.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func resolveCwd(cwd string) (string, error) {
	if cwd != "" {
		return cwd, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return wd, nil
}
