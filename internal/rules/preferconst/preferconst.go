// Package preferconst implements the prefer-const rule: flags a var
// declaration that is never reassigned after its initializer, which
// const would express more precisely.
package preferconst

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
)

const Code = "prefer-const"

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "prefer const",
		Description:      "var is never reassigned; const documents that intent",
		Category:         "style",
		DefaultSeverity:  diagnostic.SeverityWarning,
		EnabledByDefault: true,
		FixKind:          diagnostic.FixSafe,
	}
}

func (Rule) RunOnSymbol(ctx *rules.LintContext, sym semantic.SymbolId) {
	s := ctx.Model.Symbol(sym)
	if s.Flags&semantic.SymVariable == 0 {
		return
	}
	for _, refID := range ctx.Model.ReferencesOf(sym) {
		if ctx.Model.Reference(refID).Flags.Has(semantic.RefWrite) {
			return
		}
	}
	decl := ctx.Tree.Node(s.DeclNode)
	kwSpan := ctx.Tree.TokenSpan(decl.Main)
	d := diagnostic.New(ctx.Severity, Code, "\""+s.Name+"\" is never reassigned; declare it const", kwSpan).
		WithFix(diagnostic.Fix{Span: kwSpan, Replacement: "const", Kind: diagnostic.FixSafe})
	ctx.Report(d)
}

func init() { rules.Register(Rule{}) }
