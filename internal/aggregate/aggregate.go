// Package aggregate flattens a resolved component set into install buckets.
package aggregate

import (
	"github.com/roketin/r-component-cli/internal/registry"
	"github.com/roketin/r-component-cli/internal/resolver"
)

// Files is the deduplicated install plan of a resolved set.
type Files struct {
	Components   []registry.FileEntry `json:"components" yaml:"components"`
	Libs         []registry.FileEntry `json:"libs" yaml:"libs"`
	UI           []registry.FileEntry `json:"ui" yaml:"ui"`
	Dependencies []string             `json:"dependencies" yaml:"dependencies"`
}

// Len returns the number of files across all buckets.
func (f Files) Len() int {
	return len(f.Components) + len(f.Libs) + len(f.UI)
}

// All returns every file in install order: libs, then ui, then components.
func (f Files) All() []registry.FileEntry {
	out := make([]registry.FileEntry, 0, f.Len())
	out = append(out, f.Libs...)
	out = append(out, f.UI...)
	out = append(out, f.Components...)
	return out
}

// Aggregate classifies every file of set by type. A path is kept once, in
// the bucket of its first occurrence. Package dependencies are unioned in
// first-seen order.
func Aggregate(set *resolver.ResolvedSet) Files {
	var files Files
	seenPaths := make(map[string]bool)
	seenDeps := make(map[string]bool)

	for _, def := range set.Definitions() {
		for _, entry := range def.Files {
			if seenPaths[entry.Path] {
				continue
			}
			seenPaths[entry.Path] = true

			switch entry.Type {
			case registry.FileTypeLib:
				files.Libs = append(files.Libs, entry)
			case registry.FileTypeUI:
				files.UI = append(files.UI, entry)
			case registry.FileTypeComponent, registry.FileTypeUnknown:
				files.Components = append(files.Components, entry)
			}
		}

		for _, dep := range def.Dependencies {
			if dep == "" || seenDeps[dep] {
				continue
			}
			seenDeps[dep] = true
			files.Dependencies = append(files.Dependencies, dep)
		}
	}

	return files
}
