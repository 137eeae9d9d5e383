// Package deps installs the npm packages that registry components need,
// through whichever package manager the project uses.
package deps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roketin/r-component-cli/internal/logger"
)

// ErrNoPackageJSON is returned when the project has no package.json.
var ErrNoPackageJSON = errors.New("package.json not found")

// Manager is a JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
	Bun  Manager = "bun"
)

var lockfiles = []struct {
	file    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"package-lock.json", NPM},
}

// Detect picks the package manager from the lockfile in dir, npm if none.
func Detect(dir string) Manager {
	for _, lf := range lockfiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			return lf.manager
		}
	}
	return NPM
}

// AddArgs returns the arguments that add packages as dependencies.
func (m Manager) AddArgs(packages []string) []string {
	verb := "add"
	if m == NPM {
		verb = "install"
	}
	return append([]string{verb}, packages...)
}

// Command renders the full install command line.
func (m Manager) Command(packages []string) string {
	return string(m) + " " + strings.Join(m.AddArgs(packages), " ")
}

// Installer adds npm dependencies to a project.
type Installer struct {
	commander Commander
	logger    logger.Leveled
}

// NewInstaller creates an installer running commands through commander.
func NewInstaller(commander Commander, l logger.Logger) *Installer {
	return &Installer{commander: commander, logger: logger.AsLeveled(l)}
}

// Install adds packages to the project in dir. The detected package manager
// is preferred; npm is tried when it is missing; with no usable executable
// package.json is edited directly and the user is told to run an install.
func (i *Installer) Install(ctx context.Context, dir string, packages []string, dryRun bool) (Manager, error) {
	if len(packages) == 0 {
		return "", nil
	}

	pkgPath := filepath.Join(dir, "package.json")
	if _, err := os.Stat(pkgPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w in %s", ErrNoPackageJSON, dir)
	}

	manager := Detect(dir)
	if _, err := i.commander.LookPath(string(manager)); err != nil && manager != NPM {
		i.logger.Warn(fmt.Sprintf("%s not found, falling back to npm", manager))
		manager = NPM
	}

	if dryRun {
		i.logger.Info(fmt.Sprintf("Would run %s", manager.Command(packages)))
		return manager, nil
	}

	if _, err := i.commander.LookPath(string(manager)); err != nil {
		if err := editPackageJSON(pkgPath, packages); err != nil {
			return "", fmt.Errorf("failed to update package.json: %w", err)
		}
		i.logger.Warn(fmt.Sprintf("%s not found, added packages to package.json; run an install to fetch them", manager))
		return "", nil
	}

	i.logger.Debugf("running %s in %s", manager.Command(packages), dir)
	if out, err := i.commander.Run(ctx, string(manager), manager.AddArgs(packages), dir); err != nil {
		return manager, fmt.Errorf("%s install failed: %w\nOutput: %s", manager, err, out)
	}
	return manager, nil
}

// SplitPackage separates "name@version" into its parts. Scoped names keep
// their leading @. The version is empty when none was given.
func SplitPackage(dep string) (name, version string) {
	idx := strings.LastIndex(dep, "@")
	if idx <= 0 {
		return dep, ""
	}
	return dep[:idx], dep[idx+1:]
}

// editPackageJSON adds dependencies to package.json
func editPackageJSON(pkgPath string, dependencies []string) error {
	content, err := os.ReadFile(pkgPath)
	if err != nil {
		return err
	}

	var pkg map[string]interface{}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return err
	}

	deps, ok := pkg["dependencies"].(map[string]interface{})
	if !ok {
		deps = make(map[string]interface{})
		pkg["dependencies"] = deps
	}

	for _, dep := range dependencies {
		name, version := SplitPackage(dep)
		if version == "" {
			version = "latest"
		}
		if _, exists := deps[name]; exists {
			continue
		}
		deps[name] = version
	}

	output, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(pkgPath, append(output, '\n'), 0644)
}
