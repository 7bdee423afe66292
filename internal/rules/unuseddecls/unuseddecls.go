// Package unuseddecls implements the unused-decls rule: flags constants,
// variables, and functions that are declared but never referenced.
package unuseddecls

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

const Code = "unused-decls"

// checkedFlags are the declaration kinds this rule applies to. Parameters,
// payload captures, and container members are exempt: a struct field is
// part of its type's shape whether or not anything reads it, and
// parameters/captures are often unused by design (an interface callback
// signature, an error capture used only for its presence).
const checkedFlags = semantic.SymConst | semantic.SymVariable | semantic.SymFn

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "unused declaration",
		Description:      "declared constant, variable, or function is never referenced",
		Category:         "maintainability",
		DefaultSeverity:  diagnostic.SeverityErr,
		EnabledByDefault: true,
		FixKind:          diagnostic.FixSuggestion,
	}
}

func (Rule) RunOnSymbol(ctx *rules.LintContext, sym semantic.SymbolId) {
	s := ctx.Model.Symbol(sym)
	if s.Flags&checkedFlags == 0 {
		return
	}
	if len(ctx.Model.ReferencesOf(sym)) > 0 {
		return
	}
	if ctx.Tree.Node(s.DeclNode).Flags&(zigsyntax.FlagPub|zigsyntax.FlagExport) != 0 {
		return
	}
	span := ctx.Tree.TokenSpan(s.Token)
	d := diagnostic.New(ctx.Severity, Code, "\""+s.Name+"\" is declared but never used", span).
		WithHelp("remove it, or prefix the name with an underscore if it documents an unused binding").
		WithFix(diagnostic.Fix{
			Span:        ctx.Tree.Span(s.DeclNode),
			Replacement: "",
			Kind:        diagnostic.FixSuggestion,
			Dangerous:   true,
		})
	ctx.Report(d)
}

func init() { rules.Register(Rule{}) }
