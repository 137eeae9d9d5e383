// Package transform rewrites registry-internal import paths to the aliases
// of the consumer project.
package transform

import (
	"strings"

	"github.com/roketin/r-component-cli/internal/config"
)

// InternalRoot is the root every registry-internal import starts with.
const InternalRoot = "@/modules/"

// Registry-internal import prefixes, most specific first.
const (
	PrefixBase       = "@/modules/app/components/base/"
	PrefixUI         = "@/modules/app/components/ui/"
	PrefixComponents = "@/modules/app/components/"
	PrefixLibs       = "@/modules/app/libs/"
)

// Prefixes returns the registry-internal prefixes in rewrite order.
func Prefixes() []string {
	return []string{PrefixBase, PrefixUI, PrefixComponents, PrefixLibs}
}

// Rule is a single literal prefix rewrite.
type Rule struct {
	From string
	To   string
}

// Transformer applies its rules in order.
type Transformer struct {
	rules []Rule
}

// New builds the rules for cfg.
func New(cfg *config.Config) *Transformer {
	components := strings.TrimSuffix(cfg.Aliases.Components, "/")
	libs := strings.TrimSuffix(cfg.Aliases.Libs, "/")

	return &Transformer{rules: []Rule{
		{From: PrefixBase, To: components + "/" + cfg.ComponentsDir + "/"},
		{From: PrefixUI, To: components + "/" + cfg.UIDir + "/"},
		{From: PrefixComponents, To: components + "/"},
		{From: PrefixLibs, To: libs + "/"},
	}}
}

// Rules returns a copy of the rewrite rules.
func (t *Transformer) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Transform rewrites every occurrence of each prefix. A later, more general
// rule never sees text an earlier rule already rewrote because the targets
// do not start with "@/modules/".
func (t *Transformer) Transform(text string) string {
	for _, r := range t.rules {
		if strings.Contains(text, r.From) {
			text = strings.ReplaceAll(text, r.From, r.To)
		}
	}
	return text
}
