package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// StatusError reports a non-success response from a transport.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

// HTTPFetcher fetches http and https URLs.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher with a 30 second timeout
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewHTTPFetcherWithClient creates a fetcher around a custom client
func NewHTTPFetcherWithClient(c *http.Client) *HTTPFetcher {
	return &HTTPFetcher{httpClient: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FileFetcher serves file:// URLs and plain filesystem paths, for local or
// vendored registries.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	p := rawURL
	if strings.HasPrefix(rawURL, "file://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		p = filepath.FromSlash(u.Path)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &StatusError{URL: rawURL, StatusCode: http.StatusNotFound}
		}
		return nil, err
	}
	return data, nil
}

// MuxFetcher dispatches on the URL scheme. URLs without a scheme are local
// paths.
type MuxFetcher struct {
	schemes map[string]Fetcher
}

// NewMuxFetcher creates an empty scheme router.
func NewMuxFetcher() *MuxFetcher {
	return &MuxFetcher{schemes: make(map[string]Fetcher)}
}

// Handle registers f for a scheme ("" means local paths).
func (m *MuxFetcher) Handle(scheme string, f Fetcher) *MuxFetcher {
	m.schemes[strings.ToLower(scheme)] = f
	return m
}

func (m *MuxFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	scheme := schemeOf(rawURL)
	f, ok := m.schemes[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported URL scheme %q in %s", scheme, rawURL)
	}
	return f.Fetch(ctx, rawURL)
}

// NewDefaultFetcher routes http(s) to HTTPFetcher, s3 to an S3Fetcher
// configured from the environment, and file URLs or paths to FileFetcher.
func NewDefaultFetcher() *MuxFetcher {
	h := NewHTTPFetcher()
	return NewMuxFetcher().
		Handle("http", h).
		Handle("https", h).
		Handle("s3", NewS3FetcherFromEnv()).
		Handle("file", FileFetcher{}).
		Handle("", FileFetcher{})
}

func schemeOf(rawURL string) string {
	i := strings.Index(rawURL, "://")
	// a single letter before ':' is a Windows drive, not a scheme
	if i <= 1 {
		return ""
	}
	return strings.ToLower(rawURL[:i])
}

// joinURL appends a relative path to a base URL or directory.
func joinURL(base, p string) string {
	if base == "" {
		return p
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// parentURL drops the last path segment, e.g. the index file name.
func parentURL(rawURL string) string {
	i := strings.LastIndex(rawURL, "/")
	if i < 0 {
		return ""
	}
	if scheme := schemeOf(rawURL); scheme != "" && i < len(scheme)+len("://") {
		return rawURL
	}
	return rawURL[:i]
}
