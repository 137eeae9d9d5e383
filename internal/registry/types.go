package registry

import (
	"fmt"
	"strings"
)

// FileType classifies a registry file into an install bucket.
type FileType int

const (
	// FileTypeUnknown covers missing or unrecognized tags. Such files are
	// installed with the components.
	FileTypeUnknown FileType = iota
	FileTypeComponent
	FileTypeLib
	FileTypeUI
)

// ParseFileType maps a registry type tag such as "registry:lib" or "lib" to a
// FileType. Unrecognized tags yield FileTypeUnknown.
func ParseFileType(tag string) FileType {
	tag = strings.ToLower(strings.TrimSpace(tag))
	tag = strings.TrimPrefix(tag, "registry:")
	switch tag {
	case "component", "hook", "block":
		return FileTypeComponent
	case "lib":
		return FileTypeLib
	case "ui":
		return FileTypeUI
	default:
		return FileTypeUnknown
	}
}

func (t FileType) String() string {
	switch t {
	case FileTypeComponent:
		return "component"
	case FileTypeLib:
		return "lib"
	case FileTypeUI:
		return "ui"
	default:
		return "unknown"
	}
}

// MarshalText writes the registry tag form, e.g. "registry:lib".
func (t FileType) MarshalText() ([]byte, error) {
	if t == FileTypeUnknown {
		return []byte(""), nil
	}
	return []byte("registry:" + t.String()), nil
}

// UnmarshalText accepts any tag ParseFileType does.
func (t *FileType) UnmarshalText(text []byte) error {
	*t = ParseFileType(string(text))
	return nil
}

// FileEntry is one file of a component.
type FileEntry struct {
	// Registry-relative source path; also the identity for deduplication
	Path string `json:"path" yaml:"path"`

	Type FileType `json:"type,omitempty" yaml:"type,omitempty"`

	// Suggested location in the registry's own project. Informational only.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// ComponentDefinition describes one installable component.
type ComponentDefinition struct {
	Name                 string      `json:"name" yaml:"name"`
	Files                []FileEntry `json:"files" yaml:"files"`
	Dependencies         []string    `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	RegistryDependencies []string    `json:"registryDependencies,omitempty" yaml:"registryDependencies,omitempty"`
}

func (d *ComponentDefinition) validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("component definition is missing a name")
	}
	for i, f := range d.Files {
		if strings.TrimSpace(f.Path) == "" {
			return fmt.Errorf("component %s: file %d has no path", d.Name, i)
		}
	}
	return nil
}

// Index is the registry's table of contents.
type Index struct {
	// Component names in registry order
	Components []string `json:"components" yaml:"components"`

	// Base URL raw files are fetched from
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// URL per-component definitions are fetched from
	ComponentsURL string `json:"componentsUrl,omitempty" yaml:"componentsUrl,omitempty"`

	// Eager reports whether definitions were embedded in the index document
	Eager bool `json:"-" yaml:"-"`

	// Embedded definitions keyed by name; nil for lazy registries
	Entries map[string]ComponentDefinition `json:"-" yaml:"-"`
}

// Has reports whether name is listed in the index.
func (i *Index) Has(name string) bool {
	for _, n := range i.Components {
		if n == name {
			return true
		}
	}
	return false
}
