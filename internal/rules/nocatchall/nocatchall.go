// Package nocatchall implements the no-catch-all rule: flags a catch
// whose handler is an empty block, silently discarding the error.
package nocatchall

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "no-catch-all"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "no catch all",
		Description:      "catch handler is empty, silently discarding the error",
		Category:         "correctness",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTCatch || n.Else == zigsyntax.NoNode {
		return
	}
	handler := ctx.Tree.Node(n.Else)
	if handler.Tag != zigsyntax.NTBlock || len(handler.Children) != 0 {
		return
	}
	span := ctx.Tree.Span(n.Else)
	ctx.Report(diagnostic.New(ctx.Severity, Code, "error is caught and silently discarded", span).
		WithHelp("log the error, propagate it, or document why it's safe to ignore"))
}

func init() { rules.Register(Rule{}) }
