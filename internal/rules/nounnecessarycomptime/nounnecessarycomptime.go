// Package nounnecessarycomptime implements the no-unnecessary-comptime
// rule: flags a comptime block that wraps something already comptime
// by construction, so the keyword adds nothing.
package nounnecessarycomptime

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "no-unnecessary-comptime"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "no unnecessary comptime",
		Description:      "comptime block wraps an expression that is already comptime-known",
		Category:         "style",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTComptime || n.Then == zigsyntax.NoNode {
		return
	}
	inner := n.Then
	innerNode := ctx.Tree.Node(inner)
	if innerNode.Tag == zigsyntax.NTBlock && len(innerNode.Children) == 1 {
		inner = innerNode.Children[0]
		innerNode = ctx.Tree.Node(inner)
	}

	span := ctx.Tree.TokenSpan(n.Main)
	switch innerNode.Tag {
	case zigsyntax.NTComptime:
		ctx.Report(diagnostic.New(ctx.Severity, Code, "nested comptime is redundant", span).
			WithHelp("remove one of the two comptime keywords"))
	case zigsyntax.NTNumberLiteral, zigsyntax.NTStringLiteral, zigsyntax.NTCharLiteral,
		zigsyntax.NTBoolLiteral, zigsyntax.NTNullLiteral, zigsyntax.NTUndefinedLiteral:
		ctx.Report(diagnostic.New(ctx.Severity, Code, "literal values are already comptime-known", span).
			WithHelp("remove the comptime keyword"))
	}
}

func init() { rules.Register(Rule{}) }
