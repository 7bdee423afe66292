// Package homelesstry implements the homeless-try rule: a try expression
// used where no enclosing function or test can propagate its error.
package homelesstry

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "homeless-try"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "homeless try",
		Description:      "try used outside any function or test body",
		Category:         "correctness",
		DefaultSeverity:  diagnostic.SeverityErr,
		EnabledByDefault: true,
	}
}

// RunOnNode flags a try expression with no enclosing NTFnDecl/NTTest
// ancestor: top-level const/var initializers and container field defaults
// can't propagate the error anywhere.
func (Rule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	n := ctx.Tree.Node(node)
	if n.Tag != zigsyntax.NTTry {
		return
	}
	hasFn := false
	ctx.Model.Ancestors(node, func(a zigsyntax.NodeId) bool {
		switch ctx.Tree.Node(a).Tag {
		case zigsyntax.NTFnDecl, zigsyntax.NTTest:
			hasFn = true
			return false
		}
		return true
	})
	if hasFn {
		return
	}
	span := ctx.Tree.TokenSpan(n.Main)
	ctx.Report(diagnostic.New(ctx.Severity, Code, "try has no enclosing function to return its error to", span).
		WithHelp("move this initializer into a function, or handle the error with catch"))
}

func init() { rules.Register(Rule{}) }
