package imports

import (
	"context"
	"reflect"
	"testing"
)

func importPaths(found []Import) []string {
	var out []string
	for _, imp := range found {
		out = append(out, imp.Path)
	}
	return out
}

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		source   string
		want     []string
	}{
		{
			name:     "TSX",
			filename: "button.tsx",
			source: `import * as React from "react";
import { cn } from "@/libs/utils";
import type { Variant } from '@/modules/app/components/base/types';

export const Button = (props: { v: Variant }) => <button className={cn("b")} />;
`,
			want: []string{"react", "@/libs/utils", "@/modules/app/components/base/types"},
		},
		{
			name:     "TypeScript re-export",
			filename: "index.ts",
			source: `export { Button } from "./button";
export const size: number = 1;
`,
			want: []string{"./button"},
		},
		{
			name:     "JavaScript require",
			filename: "legacy.js",
			source: `const path = require("path");
const x = load("not-an-import");
`,
			want: []string{"path"},
		},
		{
			name:     "no imports",
			filename: "consts.ts",
			source:   "export const answer: number = 42;\n",
			want:     nil,
		},
	}

	scanner := NewScanner()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			found, err := scanner.Scan(context.Background(), tt.filename, []byte(tt.source))
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if got := importPaths(found); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_LineNumbers(t *testing.T) {
	src := "// header\n\nimport a from 'a';\n"
	found, err := NewScanner().Scan(context.Background(), "a.ts", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Line != 3 {
		t.Errorf("expected one import on line 3, got %+v", found)
	}
}

func TestScan_UnsupportedFile(t *testing.T) {
	scanner := NewScanner()
	if scanner.Supports("styles.css", []byte("a { color: red; }")) {
		t.Error("css should not be supported")
	}
	found, err := scanner.Scan(context.Background(), "styles.css", []byte("a { color: red; }"))
	if err != nil || found != nil {
		t.Errorf("expected no imports and no error, got %v, %v", found, err)
	}
}

func TestLanguageOf(t *testing.T) {
	tests := map[string]string{
		"a.tsx": "TSX",
		"a.jsx": "JavaScript",
		"a.mjs": "JavaScript",
		"a.ts":  "TypeScript",
	}
	for file, want := range tests {
		if got := LanguageOf(file, []byte("export const a = 1;\n")); got != want {
			t.Errorf("LanguageOf(%q) = %q, want %q", file, got, want)
		}
	}
}

func TestUnresolved(t *testing.T) {
	found := []Import{
		{Path: "react"},
		{Path: "@/modules/app/hooks/use-x"},
		{Path: "@/components/base/button"},
	}
	got := Unresolved(found, "@/modules/")
	if len(got) != 1 || got[0].Path != "@/modules/app/hooks/use-x" {
		t.Errorf("Unresolved() = %v", got)
	}
	if Unresolved(found) != nil {
		t.Error("no roots should match nothing")
	}
}
