// Package project inspects a consumer project to pick init defaults.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Info is what init needs to know about a project.
type Info struct {
	Root        string
	HasTSConfig bool
	HasSrcDir   bool
	// Source file counts per language, from the src directory when present
	Languages  map[string]int
	TypeScript bool
}

// Inspect looks at the project rooted at root.
func Inspect(root string) (*Info, error) {
	info := &Info{
		Root:        root,
		HasTSConfig: fileExists(filepath.Join(root, "tsconfig.json")),
		HasSrcDir:   dirExists(filepath.Join(root, "src")),
	}

	scanDir := root
	if info.HasSrcDir {
		scanDir = filepath.Join(root, "src")
	}

	languages, err := LanguageCensus(scanDir)
	if err != nil {
		return nil, err
	}
	info.Languages = languages
	info.TypeScript = info.HasTSConfig || prefersTypeScript(languages)

	return info, nil
}

// DefaultBaseDir suggests where components should go.
func (i *Info) DefaultBaseDir() string {
	if i.HasSrcDir {
		return "src/components"
	}
	return "components"
}

// LanguageCensus counts programming-language source files under dir.
func LanguageCensus(dir string) (map[string]int, error) {
	counts := make(map[string]int)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && shouldSkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		lang := detectFileLanguage(path)
		if lang == "" || !isProgrammingLanguage(lang) {
			return nil
		}
		counts[normalizeLanguageName(lang)]++
		return nil
	})

	return counts, err
}

// prefersTypeScript reports whether TypeScript sources outnumber JavaScript.
func prefersTypeScript(counts map[string]int) bool {
	ts := counts["TypeScript"]
	js := counts["JavaScript"]
	return ts > 0 && ts >= js
}

func detectFileLanguage(path string) string {
	lang, safe := enry.GetLanguageByExtension(path)
	if safe && lang != "" {
		return lang
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	return enry.GetLanguage(path, content)
}

// normalizeLanguageName folds dialects into the language they compile as.
func normalizeLanguageName(lang string) string {
	switch lang {
	case "TSX":
		return "TypeScript"
	case "JSX":
		return "JavaScript"
	default:
		return lang
	}
}

// isProgrammingLanguage filters out configuration, markup and style files.
func isProgrammingLanguage(lang string) bool {
	switch enry.GetLanguageType(lang) {
	case enry.Programming:
		return true
	default:
		return false
	}
}

func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "dist", "build", "coverage":
		return true
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
