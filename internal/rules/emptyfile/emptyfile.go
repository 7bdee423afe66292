// Package emptyfile implements the empty-file rule: flags a source file
// with no top-level declarations at all. Opt-in: an empty file is
// sometimes a deliberate placeholder (e.g. a package re-export stub).
package emptyfile

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "empty-file"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "empty file",
		Description:      "file has no top-level declarations",
		Category:         "maintainability",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: false,
	}
}

func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTRoot || len(n.Children) != 0 {
		return
	}
	ctx.Report(diagnostic.New(ctx.Severity, Code, "file has no declarations", source.Span{Start: 0, End: ctx.Source.Len()}))
}

func init() { rules.Register(Rule{}) }
