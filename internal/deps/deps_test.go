package deps

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/roketin/r-component-cli/internal/logger"
)

func project(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range append([]string{"package.json"}, files...) {
		content := ""
		if f == "package.json" {
			content = `{"name":"app","dependencies":{"react":"^18.0.0"}}`
		}
		if err := os.WriteFile(filepath.Join(dir, f), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDetect(t *testing.T) {
	tests := []struct {
		lockfile string
		want     Manager
	}{
		{"pnpm-lock.yaml", PNPM},
		{"yarn.lock", Yarn},
		{"bun.lockb", Bun},
		{"package-lock.json", NPM},
		{"", NPM},
	}

	for _, tt := range tests {
		t.Run(string(tt.want)+tt.lockfile, func(t *testing.T) {
			var dir string
			if tt.lockfile == "" {
				dir = project(t)
			} else {
				dir = project(t, tt.lockfile)
			}
			if got := Detect(dir); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestManagerCommand(t *testing.T) {
	pkgs := []string{"use-debounce", "clsx"}
	if got := NPM.Command(pkgs); got != "npm install use-debounce clsx" {
		t.Errorf("npm: %q", got)
	}
	if got := PNPM.Command(pkgs); got != "pnpm add use-debounce clsx" {
		t.Errorf("pnpm: %q", got)
	}
}

func TestInstall_UsesDetectedManager(t *testing.T) {
	dir := project(t, "pnpm-lock.yaml")
	mock := NewMock("pnpm", "npm")

	manager, err := NewInstaller(mock, logger.Nop{}).Install(context.Background(), dir, []string{"use-debounce"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if manager != PNPM {
		t.Errorf("manager = %s", manager)
	}
	if len(mock.RecordedCalls) != 1 {
		t.Fatalf("calls = %v", mock.RecordedCalls)
	}
	call := mock.RecordedCalls[0]
	if call.String() != "pnpm add use-debounce" || call.Dir != dir {
		t.Errorf("unexpected call %q in %s", call.String(), call.Dir)
	}
}

func TestInstall_FallsBackToNPM(t *testing.T) {
	dir := project(t, "yarn.lock")
	mock := NewMock("npm")

	manager, err := NewInstaller(mock, logger.Nop{}).Install(context.Background(), dir, []string{"a", "b"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if manager != NPM || mock.RecordedCalls[0].String() != "npm install a b" {
		t.Errorf("manager %s, calls %v", manager, mock.RecordedCalls)
	}
}

func TestInstall_EditsPackageJSONWithoutExecutables(t *testing.T) {
	dir := project(t)
	mock := NewMock()

	if _, err := NewInstaller(mock, logger.Nop{}).Install(context.Background(), dir, []string{"use-debounce", "@radix-ui/react-slot@1.0.2", "react"}, false); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	var pkg struct {
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"react":                "^18.0.0",
		"use-debounce":         "latest",
		"@radix-ui/react-slot": "1.0.2",
	}
	if !reflect.DeepEqual(pkg.Dependencies, want) {
		t.Errorf("dependencies = %v, want %v", pkg.Dependencies, want)
	}
	if len(mock.RecordedCalls) != 0 {
		t.Errorf("no command should run, got %v", mock.RecordedCalls)
	}
}

func TestInstall_CommandFailure(t *testing.T) {
	dir := project(t)
	mock := NewMock("npm")
	mock.Errors["npm install"] = errors.New("exit status 1")
	mock.Responses["npm install"] = "ERR! 404"

	_, err := NewInstaller(mock, logger.Nop{}).Install(context.Background(), dir, []string{"nope"}, false)
	if err == nil || !strings.Contains(err.Error(), "npm install failed") {
		t.Errorf("expected install failure, got %v", err)
	}
}

func TestInstall_DryRunAndEdgeCases(t *testing.T) {
	mock := NewMock("npm")
	inst := NewInstaller(mock, logger.Nop{})

	if _, err := inst.Install(context.Background(), project(t), []string{"x"}, true); err != nil {
		t.Fatal(err)
	}
	if len(mock.RecordedCalls) != 0 {
		t.Errorf("dry run ran %v", mock.RecordedCalls)
	}

	if m, err := inst.Install(context.Background(), t.TempDir(), nil, false); err != nil || m != "" {
		t.Errorf("no packages: %s, %v", m, err)
	}

	if _, err := inst.Install(context.Background(), t.TempDir(), []string{"x"}, false); !errors.Is(err, ErrNoPackageJSON) {
		t.Errorf("expected ErrNoPackageJSON, got %v", err)
	}
}

func TestSplitPackage(t *testing.T) {
	tests := []struct{ in, name, version string }{
		{"react", "react", ""},
		{"react@18", "react", "18"},
		{"@scope/pkg", "@scope/pkg", ""},
		{"@scope/pkg@1.2.3", "@scope/pkg", "1.2.3"},
	}
	for _, tt := range tests {
		name, version := SplitPackage(tt.in)
		if name != tt.name || version != tt.version {
			t.Errorf("SplitPackage(%q) = %q, %q", tt.in, name, version)
		}
	}
}
