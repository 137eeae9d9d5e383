package registry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/roketin/r-component-cli/internal/logger"
)

const (
	// DefaultIndexURL is the published registry index
	DefaultIndexURL = "https://raw.githubusercontent.com/roketin/r-component/main/registry.json"
	// DefaultBaseURL is where the published registry's files live
	DefaultBaseURL = "https://raw.githubusercontent.com/roketin/r-component/main"

	tracerName = "github.com/roketin/r-component-cli/internal/registry"
)

var (
	// ErrRegistryUnreachable means the index could not be fetched or parsed.
	// Nothing can be installed without it.
	ErrRegistryUnreachable = errors.New("registry unreachable")
	// ErrComponentNotFound means a component definition could not be fetched.
	ErrComponentNotFound = errors.New("component not found")
	// ErrUnknownComponent means a name has no entry in the index.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrFileFetch means a raw file could not be fetched.
	ErrFileFetch = errors.New("file fetch failed")
)

// Options locates a registry. Empty fields fall back to what the index
// document declares, then to values derived from IndexURL.
type Options struct {
	IndexURL      string
	BaseURL       string
	ComponentsURL string
}

// DefaultOptions points at the published registry.
func DefaultOptions() Options {
	return Options{IndexURL: DefaultIndexURL}
}

// Client talks to one registry. It performs no retries and caches nothing.
type Client struct {
	opts    Options
	fetcher Fetcher
	logger  logger.Leveled
	tracer  trace.Tracer
}

// NewClient creates a registry client. A nil fetcher uses NewDefaultFetcher.
func NewClient(opts Options, fetcher Fetcher, l logger.Logger) *Client {
	if opts.IndexURL == "" {
		opts.IndexURL = DefaultIndexURL
		if opts.BaseURL == "" {
			opts.BaseURL = DefaultBaseURL
		}
	}
	if fetcher == nil {
		fetcher = NewDefaultFetcher()
	}
	return &Client{
		opts:    opts,
		fetcher: fetcher,
		logger:  logger.AsLeveled(l),
		tracer:  otel.Tracer(tracerName),
	}
}

// IndexURL returns the index location this client reads.
func (c *Client) IndexURL() string { return c.opts.IndexURL }

// FetchIndex downloads and decodes the registry index, and settles the base
// and components URLs used by later calls.
func (c *Client) FetchIndex(ctx context.Context) (*Index, error) {
	indexURL := c.opts.IndexURL

	data, err := c.fetch(ctx, "index", indexURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch registry from %s: %w", ErrRegistryUnreachable, indexURL, err)
	}

	idx, err := DecodeIndex(data, formatOf(indexURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRegistryUnreachable, indexURL, err)
	}

	if c.opts.BaseURL != "" {
		idx.BaseURL = c.opts.BaseURL
	}
	if idx.BaseURL == "" {
		idx.BaseURL = parentURL(indexURL)
	}
	if c.opts.ComponentsURL != "" {
		idx.ComponentsURL = c.opts.ComponentsURL
	}
	if idx.ComponentsURL == "" {
		idx.ComponentsURL = joinURL(idx.BaseURL, "components")
	}

	c.logger.Debugf("registry %s: %d components (eager=%t)", indexURL, len(idx.Components), idx.Eager)
	return idx, nil
}

// FetchComponent downloads the definition document <componentsURL>/<name>.json.
// An empty componentsURL uses the client options.
func (c *Client) FetchComponent(ctx context.Context, name, componentsURL string) (*ComponentDefinition, error) {
	if componentsURL == "" {
		componentsURL = c.componentsURL()
	}
	defURL := joinURL(componentsURL, name+".json")

	data, err := c.fetch(ctx, "component", defURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrComponentNotFound, name, err)
	}

	def, err := DecodeComponent(data, "json")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrComponentNotFound, name, err)
	}
	if def.Name == "" {
		def.Name = name
	}
	if err := def.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrComponentNotFound, name, err)
	}
	return def, nil
}

// FetchFile downloads the text of a registry file from <baseURL>/<path>.
// An empty baseURL uses the client options.
func (c *Client) FetchFile(ctx context.Context, path, baseURL string) (string, error) {
	if baseURL == "" {
		baseURL = c.baseURL()
	}
	data, err := c.fetch(ctx, "file", joinURL(baseURL, path))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFileFetch, path, err)
	}
	return string(data), nil
}

func (c *Client) baseURL() string {
	if c.opts.BaseURL != "" {
		return c.opts.BaseURL
	}
	return parentURL(c.opts.IndexURL)
}

func (c *Client) componentsURL() string {
	if c.opts.ComponentsURL != "" {
		return c.opts.ComponentsURL
	}
	return joinURL(c.baseURL(), "components")
}

func (c *Client) fetch(ctx context.Context, kind, rawURL string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "registry.fetch", trace.WithAttributes(
		attribute.String("registry.kind", kind),
		attribute.String("registry.url", rawURL),
	))
	defer span.End()

	data, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("registry.bytes", len(data)))
	return data, nil
}
