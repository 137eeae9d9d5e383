package templates

import (
	"reflect"
	"strings"
	"testing"
)

func TestTemplateEngine_LoadsTemplates(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	want := []string{AddDependencies, InitNextSteps, ListFooter}
	if got := eng.GetAvailableTemplates(); !reflect.DeepEqual(got, want) {
		t.Fatalf("templates = %v, want %v", got, want)
	}
}

func TestTemplateEngine_DependencyHint(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}

	got, err := eng.DependencyHint([]string{"npm install use-debounce", "pnpm add use-debounce"})
	if err != nil {
		t.Fatalf("DependencyHint error: %v", err)
	}
	want := "  npm install use-debounce\n  or\n  pnpm add use-debounce"
	if got != want {
		t.Errorf("DependencyHint() = %q, want %q", got, want)
	}
}

func TestTemplateEngine_CommandTemplates(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}

	steps, err := eng.Render(InitNextSteps, CommandData{Binary: "r-component"})
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(steps, "\n"); len(lines) != 3 || lines[2] != "  npx r-component add --all" {
		t.Errorf("unexpected init steps:\n%s", steps)
	}

	footer, err := eng.Render(ListFooter, CommandData{Binary: "r-component"})
	if err != nil {
		t.Fatal(err)
	}
	if footer != "Use npx r-component add <component> to add a component." {
		t.Errorf("footer = %q", footer)
	}
}

func TestTemplateEngine_Missing(t *testing.T) {
	eng, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine error: %v", err)
	}
	if _, err := eng.Render("nope", nil); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
