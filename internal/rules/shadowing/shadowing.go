// Package shadowing implements the shadowing rule: flags a declaration
// whose name is already bound by an enclosing scope.
package shadowing

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
)

const Code = "shadowing"

// exemptFlags are declaration kinds where reusing a name isn't
// shadowing in the usual sense: container members (struct fields)
// aren't lexically nested the way block-scoped locals are.
const exemptFlags = semantic.SymMember

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "shadowing",
		Description:      "declaration reuses a name already bound in an enclosing scope",
		Category:         "style",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnSymbol(ctx *rules.LintContext, sym semantic.SymbolId) {
	s := ctx.Model.Symbol(sym)
	if s.Flags&exemptFlags != 0 || s.Name == "_" {
		return
	}
	scope := ctx.Model.Scope(s.Scope)
	for cur := scope.Parent; cur != semantic.NoScope; cur = ctx.Model.Scope(cur).Parent {
		for _, otherID := range ctx.Model.SymbolsInScope(cur) {
			other := ctx.Model.Symbol(otherID)
			if other.Name != s.Name || other.Flags&exemptFlags != 0 {
				continue
			}
			span := ctx.Tree.TokenSpan(s.Token)
			ctx.Report(diagnostic.New(ctx.Severity, Code, "\""+s.Name+"\" shadows a declaration from an enclosing scope", span).
				WithHelp("rename this declaration"))
			return
		}
	}
}

func init() { rules.Register(Rule{}) }
