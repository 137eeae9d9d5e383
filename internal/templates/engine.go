// Package templates renders the hint blocks printed after a command.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/roketin/r-component-cli/internal/logger"
)

//go:embed *.tmpl
var templateFS embed.FS

// Template names.
const (
	AddDependencies = "add_dependencies"
	InitNextSteps   = "init_next_steps"
	ListFooter      = "list_footer"
)

// DependencyData feeds the add_dependencies template.
type DependencyData struct {
	// Alternative install command lines, preferred first
	Commands []string `json:"commands"`
}

// CommandData feeds templates that print example invocations.
type CommandData struct {
	Binary string `json:"binary"`
}

// TemplateEngine handles template loading and execution
type TemplateEngine struct {
	templates map[string]*template.Template
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() (*TemplateEngine, error) {
	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	if err := engine.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return engine, nil
}

// Render executes the named template. Trailing newlines are dropped.
func (e *TemplateEngine) Render(name string, data interface{}) (string, error) {
	tmpl, exists := e.templates[name]
	if !exists {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template %s execution failed: %w", name, err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}

// DependencyHint lists the commands that install the given packages.
func (e *TemplateEngine) DependencyHint(commands []string) (string, error) {
	return e.Render(AddDependencies, DependencyData{Commands: commands})
}

func (e *TemplateEngine) loadTemplates() error {
	entries, err := templateFS.ReadDir(".")
	if err != nil {
		return err
	}

	funcs := template.FuncMap{
		"highlight": logger.Highlight,
		"dim":       logger.Dim,
		"bold":      logger.Bold,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		templateName := entry.Name()

		content, err := templateFS.ReadFile(templateName)
		if err != nil {
			return err
		}

		key := strings.TrimSuffix(templateName, ".tmpl")
		tmpl, err := template.New(key).Funcs(funcs).Parse(string(content))
		if err != nil {
			return err
		}

		e.templates[key] = tmpl
	}

	return nil
}

// GetAvailableTemplates returns all available template keys
func (e *TemplateEngine) GetAvailableTemplates() []string {
	var keys []string
	for key := range e.templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
