package registry

import (
	"context"
	"fmt"
	"strings"
)

// NamePrefix is prepended to short names, so "btn" finds "r-btn".
const NamePrefix = "r-"

// Catalog answers component lookups for one fetched index: embedded
// definitions come straight from the index, lazy ones through the client.
type Catalog struct {
	client *Client
	index  *Index
}

// NewCatalog binds an index to the client that fetched it.
func NewCatalog(client *Client, index *Index) *Catalog {
	return &Catalog{client: client, index: index}
}

// Index returns the underlying index.
func (c *Catalog) Index() *Index { return c.index }

// Names lists every component in registry order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.index.Components...)
}

// Canonical maps a requested name to its index entry, trying the name as
// given and then with NamePrefix.
func (c *Catalog) Canonical(name string) (string, bool) {
	if c.index.Has(name) {
		return name, true
	}
	if !strings.HasPrefix(name, NamePrefix) && c.index.Has(NamePrefix+name) {
		return NamePrefix + name, true
	}
	return "", false
}

// Lookup returns the definition of a component. Names missing from the index
// fail with ErrUnknownComponent; failed fetches with ErrComponentNotFound.
func (c *Catalog) Lookup(ctx context.Context, name string) (*ComponentDefinition, error) {
	canonical, ok := c.Canonical(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}

	if c.index.Eager {
		def, ok := c.index.Entries[canonical]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrComponentNotFound, canonical)
		}
		return &def, nil
	}

	return c.client.FetchComponent(ctx, canonical, c.index.ComponentsURL)
}

// FetchFile downloads a registry file relative to the index base URL.
func (c *Catalog) FetchFile(ctx context.Context, path string) (string, error) {
	return c.client.FetchFile(ctx, path, c.index.BaseURL)
}
