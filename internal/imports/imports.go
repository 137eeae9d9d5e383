// Package imports lists the module specifiers a JavaScript or TypeScript
// source file imports, using tree-sitter grammars.
package imports

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// importQuery captures static imports, re-exports and require calls. The
// pattern is valid for the javascript, typescript and tsx grammars.
const importQuery = `
(import_statement source: (string) @import_path) @import_location
(export_statement source: (string) @import_path) @import_location
(call_expression
  function: (identifier) @require_ident
  arguments: (arguments (string) @import_path)
) @import_location
`

// Import is one module specifier found in a file.
type Import struct {
	Path string
	Line uint32
}

// Scanner parses files with the grammar matching their language.
type Scanner struct {
	languages map[string]*sitter.Language
}

// NewScanner creates a scanner for JavaScript, TypeScript and TSX.
func NewScanner() *Scanner {
	return &Scanner{
		languages: map[string]*sitter.Language{
			"JavaScript": javascript.GetLanguage(),
			"TypeScript": typescript.GetLanguage(),
			"TSX":        tsx.GetLanguage(),
		},
	}
}

// LanguageOf names the language of a file: "JavaScript", "TypeScript",
// "TSX", or whatever enry reports for other files.
func LanguageOf(filename string, content []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tsx":
		return "TSX"
	case ".ts", ".mts", ".cts":
		// .ts is shared with Qt translation files, let enry look at content
		if lang := enry.GetLanguage(filename, content); lang != "" && lang != "TypeScript" {
			return lang
		}
		return "TypeScript"
	case ".js", ".jsx", ".mjs", ".cjs":
		return "JavaScript"
	}
	return enry.GetLanguage(filename, content)
}

// Supports reports whether the scanner can parse the named file.
func (s *Scanner) Supports(filename string, content []byte) bool {
	_, ok := s.languages[LanguageOf(filename, content)]
	return ok
}

// Scan returns the imports of content in source order. Files in languages
// the scanner has no grammar for yield no imports and no error.
func (s *Scanner) Scan(ctx context.Context, filename string, content []byte) ([]Import, error) {
	lang, ok := s.languages[LanguageOf(filename, content)]
	if !ok {
		return nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(importQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create import query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	var found []Import
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		var path *sitter.Node
		isCall, isRequire := false, false
		for _, capture := range match.Captures {
			switch query.CaptureNameForId(capture.Index) {
			case "import_path":
				path = capture.Node
			case "require_ident":
				isCall = true
				isRequire = capture.Node.Content(content) == "require"
			}
		}
		if path == nil || (isCall && !isRequire) {
			continue
		}

		found = append(found, Import{
			Path: strings.Trim(path.Content(content), "\"'`"),
			Line: path.StartPoint().Row + 1,
		})
	}

	return found, nil
}

// Unresolved returns the imports whose path starts with any of roots.
func Unresolved(found []Import, roots ...string) []Import {
	var out []Import
	for _, imp := range found {
		for _, root := range roots {
			if strings.HasPrefix(imp.Path, root) {
				out = append(out, imp)
				break
			}
		}
	}
	return out
}
