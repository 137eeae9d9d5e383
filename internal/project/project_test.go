package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantTS      bool
		wantSrc     bool
		wantBaseDir string
	}{
		{
			name:        "tsconfig wins",
			files:       map[string]string{"tsconfig.json": "{}", "index.js": "console.log(1);\n"},
			wantTS:      true,
			wantBaseDir: "components",
		},
		{
			name: "typescript sources under src",
			files: map[string]string{
				"src/main.tsx":        "export const App = () => <div />;\n",
				"src/lib/api.ts":      "export const get = (): number => 1;\n",
				"src/styles/app.css":  "body { margin: 0; }\n",
				"node_modules/x/a.js": "module.exports = 1;\n",
			},
			wantTS:      true,
			wantSrc:     true,
			wantBaseDir: "src/components",
		},
		{
			name: "javascript project",
			files: map[string]string{
				"src/index.js": "console.log('hello');\n",
				"src/app.jsx":  "export default function App() { return null; }\n",
			},
			wantTS:      false,
			wantSrc:     true,
			wantBaseDir: "src/components",
		},
		{
			name:        "empty project",
			files:       map[string]string{"README.md": "# app\n"},
			wantTS:      false,
			wantBaseDir: "components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			info, err := Inspect(root)
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}
			if info.TypeScript != tt.wantTS {
				t.Errorf("TypeScript = %v, want %v (languages %v)", info.TypeScript, tt.wantTS, info.Languages)
			}
			if info.HasSrcDir != tt.wantSrc {
				t.Errorf("HasSrcDir = %v, want %v", info.HasSrcDir, tt.wantSrc)
			}
			if got := info.DefaultBaseDir(); got != tt.wantBaseDir {
				t.Errorf("DefaultBaseDir() = %q, want %q", got, tt.wantBaseDir)
			}
		})
	}
}

func TestLanguageCensus_SkipsVendoredAndHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.ts":                "export const a: number = 1;\n",
		".cache/b.ts":         "export const b: number = 1;\n",
		"node_modules/c/c.ts": "export const c: number = 1;\n",
		"data.json":           "{}\n",
	})

	counts, err := LanguageCensus(root)
	if err != nil {
		t.Fatal(err)
	}
	if counts["TypeScript"] != 1 {
		t.Errorf("TypeScript count = %d, want 1 (%v)", counts["TypeScript"], counts)
	}
	if _, ok := counts["JSON"]; ok {
		t.Error("JSON should not be counted")
	}
}
