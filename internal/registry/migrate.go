package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// wireDefinition is the union of every field any registry release has used
// for a component. The older eager schema listed files as plain strings and
// kept libs, component edges and npm packages in separate fields.
type wireDefinition struct {
	Name                 string            `json:"name"`
	Files                []json.RawMessage `json:"files"`
	Dependencies         []string          `json:"dependencies"`
	RegistryDependencies []string          `json:"registryDependencies"`

	Libs                  []string `json:"libs"`
	ComponentDependencies []string `json:"componentDependencies"`
	NpmDependencies       []string `json:"npmDependencies"`
}

type wireIndex struct {
	Components    []json.RawMessage `json:"components"`
	BaseURL       string            `json:"baseUrl"`
	ComponentsURL string            `json:"componentsUrl"`
}

// UnmarshalJSON decodes a component definition in any known schema.
func (d *ComponentDefinition) UnmarshalJSON(data []byte) error {
	var w wireDefinition
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	def := ComponentDefinition{
		Name:                 w.Name,
		Dependencies:         appendUnique(w.Dependencies, w.NpmDependencies...),
		RegistryDependencies: appendUnique(w.RegistryDependencies, w.ComponentDependencies...),
	}

	for _, raw := range w.Files {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '"' {
			var p string
			if err := json.Unmarshal(raw, &p); err != nil {
				return err
			}
			def.Files = append(def.Files, FileEntry{Path: p, Type: FileTypeComponent})
			continue
		}
		var fe FileEntry
		if err := json.Unmarshal(raw, &fe); err != nil {
			return fmt.Errorf("component %s: invalid file entry: %w", w.Name, err)
		}
		def.Files = append(def.Files, fe)
	}
	for _, lib := range w.Libs {
		def.Files = append(def.Files, FileEntry{Path: lib, Type: FileTypeLib})
	}

	*d = def
	return nil
}

// DecodeIndex parses an index document in either shape. format is "json" or
// "yaml".
func DecodeIndex(data []byte, format string) (*Index, error) {
	data, err := normalize(data, format)
	if err != nil {
		return nil, err
	}

	var w wireIndex
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("invalid registry index: %w", err)
	}
	if w.Components == nil {
		return nil, fmt.Errorf("invalid registry index: missing components list")
	}

	idx := &Index{
		BaseURL:       w.BaseURL,
		ComponentsURL: w.ComponentsURL,
	}

	for i, raw := range w.Components {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '"' {
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return nil, fmt.Errorf("invalid registry index: component %d: %w", i, err)
			}
			if name == "" {
				return nil, fmt.Errorf("invalid registry index: component %d has an empty name", i)
			}
			idx.Components = append(idx.Components, name)
			continue
		}

		var def ComponentDefinition
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("invalid registry index: component %d: %w", i, err)
		}
		if err := def.validate(); err != nil {
			return nil, fmt.Errorf("invalid registry index: %w", err)
		}
		if idx.Entries == nil {
			idx.Entries = make(map[string]ComponentDefinition)
		}
		if _, dup := idx.Entries[def.Name]; dup {
			continue
		}
		idx.Eager = true
		idx.Entries[def.Name] = def
		idx.Components = append(idx.Components, def.Name)
	}

	return idx, nil
}

// DecodeComponent parses a single component definition document.
func DecodeComponent(data []byte, format string) (*ComponentDefinition, error) {
	data, err := normalize(data, format)
	if err != nil {
		return nil, err
	}

	var def ComponentDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("invalid component definition: %w", err)
	}
	return &def, nil
}

// normalize converts YAML documents to JSON so a single decoder handles both.
func normalize(data []byte, format string) ([]byte, error) {
	if format != "yaml" {
		return data, nil
	}
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("unsupported YAML document: %w", err)
	}
	return out, nil
}

// formatOf guesses the document format from the URL extension.
func formatOf(rawURL string) string {
	u := strings.ToLower(rawURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if strings.HasSuffix(u, ".yaml") || strings.HasSuffix(u, ".yml") {
		return "yaml"
	}
	return "json"
}

func appendUnique(dst []string, more ...string) []string {
	seen := make(map[string]bool, len(dst)+len(more))
	var out []string
	for _, s := range append(append([]string{}, dst...), more...) {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
