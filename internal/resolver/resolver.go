// Package resolver computes the transitive closure of component dependencies.
package resolver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/roketin/r-component-cli/internal/logger"
	"github.com/roketin/r-component-cli/internal/registry"
)

// ErrUnknownComponent is reported for dependency names with no registry entry.
var ErrUnknownComponent = registry.ErrUnknownComponent

// ComponentSource supplies component definitions by name.
type ComponentSource interface {
	Lookup(ctx context.Context, name string) (*registry.ComponentDefinition, error)
}

// Canonicalizer is implemented by sources that can map aliases to index
// names without a lookup. Resolver uses it to key the visited set so an
// alias and its canonical name cost one lookup, not two.
type Canonicalizer interface {
	Canonical(name string) (string, bool)
}

// ResolvedSet holds the definitions reached by one or more resolutions, in
// the order they were first visited.
type ResolvedSet struct {
	order   []string
	defs    map[string]*registry.ComponentDefinition
	visited map[string]bool
}

// NewResolvedSet creates an empty set. Share one set across roots so common
// dependencies are looked up once per invocation.
func NewResolvedSet() *ResolvedSet {
	return &ResolvedSet{
		defs:    make(map[string]*registry.ComponentDefinition),
		visited: make(map[string]bool),
	}
}

func (s *ResolvedSet) Len() int { return len(s.order) }

// Names returns the resolved component names in visit order.
func (s *ResolvedSet) Names() []string { return append([]string(nil), s.order...) }

// Get returns the definition stored under a canonical name.
func (s *ResolvedSet) Get(name string) (*registry.ComponentDefinition, bool) {
	d, ok := s.defs[name]
	return d, ok
}

// Definitions returns the definitions in visit order.
func (s *ResolvedSet) Definitions() []*registry.ComponentDefinition {
	out := make([]*registry.ComponentDefinition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.defs[name])
	}
	return out
}

func (s *ResolvedSet) add(def *registry.ComponentDefinition) {
	if _, ok := s.defs[def.Name]; ok {
		return
	}
	s.defs[def.Name] = def
	s.order = append(s.order, def.Name)
}

// Resolver walks registryDependencies edges.
type Resolver struct {
	source ComponentSource
	logger logger.Leveled
	tracer trace.Tracer
}

// New creates a resolver over source.
func New(source ComponentSource, l logger.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: logger.AsLeveled(l),
		tracer: otel.Tracer("github.com/roketin/r-component-cli/internal/resolver"),
	}
}

// Resolve adds root and everything it depends on to set. The walk is depth
// first in declaration order and visits each distinct name once, so cycles
// and diamonds are safe. Names that cannot be resolved are logged, returned
// in skipped, and their branch is dropped; the rest of the walk continues.
// The only error is context cancellation.
func (r *Resolver) Resolve(ctx context.Context, root string, set *ResolvedSet) (skipped []string, err error) {
	ctx, span := r.tracer.Start(ctx, "resolver.resolve", trace.WithAttributes(attribute.String("component", root)))
	defer span.End()

	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return skipped, err
		}

		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key, ok := r.canonical(name)
		if set.visited[key] {
			continue
		}
		set.visited[key] = true

		if !ok {
			r.skip(name, fmt.Errorf("%w: %s", ErrUnknownComponent, name))
			skipped = append(skipped, name)
			continue
		}

		def, err := r.source.Lookup(ctx, key)
		if err != nil {
			r.skip(name, err)
			skipped = append(skipped, name)
			continue
		}

		// the definition's own name wins over the requested alias
		set.visited[def.Name] = true
		set.add(def)
		r.logger.Debugf("resolved %s (%d files, %d deps)", def.Name, len(def.Files), len(def.RegistryDependencies))

		deps := def.RegistryDependencies
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, deps[i])
		}
	}

	span.SetAttributes(attribute.Int("resolved", set.Len()), attribute.Int("skipped", len(skipped)))
	return skipped, nil
}

// ResolveAll resolves every root into one shared set.
func (r *Resolver) ResolveAll(ctx context.Context, roots []string) (*ResolvedSet, []string, error) {
	set := NewResolvedSet()
	var skipped []string
	for _, root := range roots {
		s, err := r.Resolve(ctx, root, set)
		skipped = append(skipped, s...)
		if err != nil {
			return set, skipped, err
		}
	}
	return set, skipped, nil
}

func (r *Resolver) canonical(name string) (string, bool) {
	if c, ok := r.source.(Canonicalizer); ok {
		if canonical, found := c.Canonical(name); found {
			return canonical, true
		}
		return name, false
	}
	return name, true
}

func (r *Resolver) skip(name string, err error) {
	r.logger.Warn(fmt.Sprintf("Skipping %s: %v", name, err))
}
