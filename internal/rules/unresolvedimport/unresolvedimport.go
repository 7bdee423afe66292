// Package unresolvedimport implements the unresolved-import rule:
// flags an @import specifier that can't denote a real module or file.
package unresolvedimport

import (
	"strings"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "unresolved-import"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "unresolved import",
		Description:      "@import specifier is empty or not a valid file/module reference",
		Category:         "correctness",
		DefaultSeverity:  diagnostic.SeverityErr,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnModel(ctx *rules.LintContext) {
	for _, rec := range ctx.Model.Imports {
		if rec.Specifier == "" {
			ctx.Report(diagnostic.New(ctx.Severity, Code, "@import specifier is empty", ctx.Tree.Span(rec.Node)))
			continue
		}
		// Specifiers without a .zig suffix are classified as modules; one
		// that looks like a path (a dot or a slash) names no module.
		if rec.Kind == zigsyntax.ImportModule && strings.ContainsAny(rec.Specifier, "./") {
			ctx.Report(diagnostic.New(ctx.Severity, Code,
				"@import(\""+rec.Specifier+"\") does not name a .zig file", ctx.Tree.Span(rec.Node)).
				WithHelp("file imports must end in .zig; package imports must match a build.zig.zon dependency name"))
		}
	}
}

func init() { rules.Register(Rule{}) }
