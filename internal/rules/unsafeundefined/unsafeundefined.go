// Package unsafeundefined implements the unsafe-undefined rule: flags
// declarations and fields initialized to undefined.
package unsafeundefined

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "unsafe-undefined"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "unsafe undefined",
		Description:      "variable, constant, or field initialized to undefined",
		Category:         "correctness",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTVarDecl && n.Tag != zigsyntax.NTContainerField {
		return
	}
	if n.Then == zigsyntax.NoNode {
		return
	}
	val := ctx.Tree.Node(n.Then)
	if val.Tag != zigsyntax.NTUndefinedLiteral {
		return
	}
	span := ctx.Tree.Span(n.Then)
	ctx.Report(diagnostic.New(ctx.Severity, Code, "initializing to undefined leaves memory unsafe to read", span).
		WithHelp("give this an explicit initial value, or document why undefined is required"))
}

func init() { rules.Register(Rule{}) }
