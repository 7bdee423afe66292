// Package noreturntry implements the no-return-try rule: flags
// "return try expr;", where the try adds nothing over "return expr;"
// since a returned error already propagates to the caller.
package noreturntry

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "no-return-try"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "no return try",
		Description:      "return try expr is equivalent to return expr",
		Category:         "style",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
		FixKind:          diagnostic.FixSafe,
	}
}

func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTReturn || n.Then == zigsyntax.NoNode {
		return
	}
	val := ctx.Tree.Node(n.Then)
	if val.Tag != zigsyntax.NTTry {
		return
	}
	trySpan := ctx.Tree.TokenSpan(val.Main)
	operandSpan := ctx.Tree.Span(val.Then)
	removeSpan := trySpan
	if operandSpan.Start > trySpan.Start {
		removeSpan.End = operandSpan.Start
	}
	d := diagnostic.New(ctx.Severity, Code, "redundant try: the caller already receives this error from return", trySpan).
		WithFix(diagnostic.Fix{Span: removeSpan, Replacement: "", Kind: diagnostic.FixSafe})
	ctx.Report(d)
}

func init() { rules.Register(Rule{}) }
