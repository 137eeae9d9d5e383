package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roketin/r-component-cli/internal/config"
	"github.com/roketin/r-component-cli/internal/registry"
)

// ErrWrite wraps filesystem failures while installing a file.
var ErrWrite = errors.New("failed to write file")

// Skip reasons.
const (
	ReasonExists    = "exists"
	ReasonDuplicate = "duplicate target"
)

// Result describes what Write did.
type Result struct {
	Written bool
	Reason  string
}

// Write stores content at target. An existing target is left untouched
// unless overwrite is set. Missing parent directories are created.
func Write(target, content string, overwrite bool) (Result, error) {
	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return Result{Written: false, Reason: ReasonExists}, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrWrite, target, err)
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrWrite, target, err)
	}

	return Result{Written: true}, nil
}

// TargetPath maps a registry file to its location in the project at cwd.
// Registry directories are flattened: only the base name is kept.
func TargetPath(cwd string, cfg *config.Config, entry registry.FileEntry) string {
	name := filepath.Base(filepath.FromSlash(entry.Path))
	switch entry.Type {
	case registry.FileTypeLib:
		return cfg.LibPath(cwd, name)
	case registry.FileTypeUI:
		return cfg.UIPath(cwd, name)
	default:
		return cfg.ComponentPath(cwd, name)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
