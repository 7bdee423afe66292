package rules

import (
	"fmt"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// SeverityResolver reports a rule code's effective severity, combining
// the rule's registry default with any configuration override. A rule
// resolved to diagnostic.SeverityOff is skipped entirely.
type SeverityResolver func(code string) diagnostic.Severity

// Dispatch runs every applicable registered rule over one file's tree
// and model per §4.4: a single AST traversal for NodeVisitor rules, a
// single symbol pass for SymbolVisitor rules, severity-off rules
// skipped up front, and disable-directives applied per-diagnostic via
// LintContext.Report. A rule whose visitor panics is caught and
// reported as an internal-rule-error diagnostic; other rules continue
// running.
func Dispatch(
	registry *Registry,
	file string,
	tree *zigsyntax.Tree,
	model *semantic.Model,
	src *source.Source,
	severityOf SeverityResolver,
	directives *directive.Filter,
) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	collect := func(d diagnostic.Diagnostic) { diags = append(diags, d) }

	type active struct {
		rule     Rule
		severity diagnostic.Severity
	}
	var nodeRules, symbolRules, modelRules []active
	for _, rule := range registry.All() {
		sev := severityOf(rule.Metadata().Code)
		if sev == diagnostic.SeverityOff {
			continue
		}
		if _, ok := rule.(NodeVisitor); ok {
			nodeRules = append(nodeRules, active{rule, sev})
		}
		if _, ok := rule.(SymbolVisitor); ok {
			symbolRules = append(symbolRules, active{rule, sev})
		}
		if _, ok := rule.(ModelVisitor); ok {
			modelRules = append(modelRules, active{rule, sev})
		}
	}

	runSafely := func(code string, fn func()) {
		defer func() {
			if r := recover(); r != nil {
				collect(diagnostic.New(
					diagnostic.SeverityErr, "internal-rule-error",
					fmt.Sprintf("rule %q panicked: %v", code, r),
					source.Span{},
				).WithSourceName(file))
			}
		}()
		fn()
	}

	if len(nodeRules) > 0 {
		tree.Walk(tree.Root, func(id zigsyntax.NodeId, _ zigsyntax.Node) {
			for _, a := range nodeRules {
				ctx := NewLintContext(file, tree, model, src, a.severity, directives, collect)
				code := a.rule.Metadata().Code
				runSafely(code, func() { a.rule.(NodeVisitor).RunOnNode(ctx, id) })
			}
		})
	}

	if len(symbolRules) > 0 {
		for _, sym := range model.Symbols() {
			for _, a := range symbolRules {
				ctx := NewLintContext(file, tree, model, src, a.severity, directives, collect)
				code := a.rule.Metadata().Code
				runSafely(code, func() { a.rule.(SymbolVisitor).RunOnSymbol(ctx, sym) })
			}
		}
	}

	for _, a := range modelRules {
		ctx := NewLintContext(file, tree, model, src, a.severity, directives, collect)
		code := a.rule.Metadata().Code
		runSafely(code, func() { a.rule.(ModelVisitor).RunOnModel(ctx) })
	}

	return diags
}
