// Package registry fetches the component registry: the index document, the
// per-component definitions and the raw source files they reference.
//
// Two index shapes are understood:
//
//	{"components": ["r-btn", "r-card"], "baseUrl": "...", "componentsUrl": "..."}
//	{"components": [{"name": "r-btn", "files": [...]}, ...]}
//
// The first lists names only and definitions are fetched lazily from
// <componentsUrl>/<name>.json. The second embeds every definition. Documents
// from older registry releases are migrated to the current schema while they
// are decoded, so nothing past decoding branches on the schema version.
//
// Transport is pluggable through Fetcher. NewDefaultFetcher routes http(s),
// s3 and file URLs.
package registry
