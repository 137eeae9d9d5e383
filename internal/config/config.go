package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the consumer config file written by `init` at the project root.
const FileName = "r-component.json"

// EnvRegistry overrides the registry index URL for every command.
const EnvRegistry = "R_COMPONENT_REGISTRY"

// ErrConfigNotFound is returned when a project has not been initialized.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config represents the consumer project's r-component configuration
type Config struct {
	// Directory components are installed under, relative to the project root
	BaseDir string `json:"baseDir" yaml:"baseDir"`

	// Subdirectory of BaseDir for component files
	ComponentsDir string `json:"componentsDir" yaml:"componentsDir"`

	// Directory for shared lib files, a sibling of BaseDir
	LibsDir string `json:"libsDir" yaml:"libsDir"`

	// Subdirectory of BaseDir for UI primitive files
	UIDir string `json:"uiDir,omitempty" yaml:"uiDir,omitempty"`

	// Whether the project uses TypeScript
	TypeScript bool `json:"typescript" yaml:"typescript"`

	// Import path aliases substituted into installed files
	Aliases Aliases `json:"aliases" yaml:"aliases"`

	// Registry index URL; empty means the CLI default
	Registry string `json:"registry,omitempty" yaml:"registry,omitempty"`
}

// Aliases holds the consumer's import path prefixes
type Aliases struct {
	Components string `json:"components" yaml:"components"`
	Libs       string `json:"libs" yaml:"libs"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseDir:       "src/components",
		ComponentsDir: "base",
		LibsDir:       "libs",
		UIDir:         "ui",
		TypeScript:    true,
		Aliases: Aliases{
			Components: "@/components",
			Libs:       "@/libs",
		},
	}
}

// Path returns the config file path for a project root
func Path(cwd string) string {
	return filepath.Join(cwd, FileName)
}

// Exists reports whether the project at cwd has a config file
func Exists(cwd string) bool {
	_, err := os.Stat(Path(cwd))
	return err == nil
}

// Load reads the config file from the project at cwd. Fields missing from the
// file keep their default values.
func Load(cwd string) (*Config, error) {
	configPath := Path(cwd)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if config.UIDir == "" {
		config.UIDir = "ui"
	}

	return config, nil
}

// Save writes the config to the project at cwd
func Save(config *Config, cwd string) error {
	configPath := Path(cwd)

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RegistryURL picks the index URL: explicit flag, then environment, then the
// project config. An empty result means the client default applies.
func RegistryURL(flagValue string, config *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvRegistry); env != "" {
		return env
	}
	if config != nil {
		return config.Registry
	}
	return ""
}

// ComponentPath resolves the install path of a component file
func (c *Config) ComponentPath(cwd, name string) string {
	return filepath.Join(cwd, c.BaseDir, c.ComponentsDir, name)
}

// UIPath resolves the install path of a UI primitive file
func (c *Config) UIPath(cwd, name string) string {
	return filepath.Join(cwd, c.BaseDir, c.UIDir, name)
}

// LibPath resolves the install path of a lib file, next to BaseDir
func (c *Config) LibPath(cwd, name string) string {
	return filepath.Join(cwd, c.BaseDir, "..", c.LibsDir, name)
}
