package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestSaveLoad_RoundTripKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte(`{"baseDir":"components","aliases":{"components":"~/c","libs":"~/l"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseDir != "components" {
		t.Errorf("BaseDir = %q", cfg.BaseDir)
	}
	if cfg.ComponentsDir != "base" || cfg.LibsDir != "libs" || cfg.UIDir != "ui" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Aliases.Components != "~/c" {
		t.Errorf("Aliases.Components = %q", cfg.Aliases.Components)
	}
}

func TestSave_OmitsRegistryWhenEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := Save(DefaultConfig(), dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["registry"]; ok {
		t.Error("registry should be omitted")
	}
	if _, ok := raw["$schema"]; ok {
		t.Error("$schema should never be written")
	}
	if raw["baseDir"] != "src/components" {
		t.Errorf("baseDir = %v", raw["baseDir"])
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	root := filepath.FromSlash("/proj")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"component", cfg.ComponentPath(root, "r-btn.tsx"), filepath.Join(root, "src", "components", "base", "r-btn.tsx")},
		{"ui", cfg.UIPath(root, "dialog.tsx"), filepath.Join(root, "src", "components", "ui", "dialog.tsx")},
		{"lib", cfg.LibPath(root, "utils.ts"), filepath.Join(root, "src", "libs", "utils.ts")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRegistryURL_Precedence(t *testing.T) {
	cfg := &Config{Registry: "https://config/index.json"}

	t.Setenv(EnvRegistry, "")
	if got := RegistryURL("", cfg); got != "https://config/index.json" {
		t.Errorf("config value: got %q", got)
	}

	t.Setenv(EnvRegistry, "https://env/index.json")
	if got := RegistryURL("", cfg); got != "https://env/index.json" {
		t.Errorf("env value: got %q", got)
	}
	if got := RegistryURL("https://flag/index.json", cfg); got != "https://flag/index.json" {
		t.Errorf("flag value: got %q", got)
	}
}
