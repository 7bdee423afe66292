package rules

import (
	"fmt"
	"strings"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// RuleMetadata is the static information a rule advertises about itself.
type RuleMetadata struct {
	// Code is the unique identifier, e.g. "homeless-try".
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// Category groups related rules: correctness, style, maintainability,
	// configuration.
	Category string

	// DefaultSeverity is the severity applied when zlint.json does not
	// override this rule.
	DefaultSeverity diagnostic.Severity

	// EnabledByDefault reports whether the rule runs without explicit
	// opt-in in zlint.json.
	EnabledByDefault bool

	// FixKind is the strongest fix kind this rule ever attaches.
	FixKind diagnostic.FixKind
}

// LintContext is the read-only handle a rule's visitor methods receive. It
// carries the parsed tree, the resolved semantic model, and the source the
// diagnostic's spans are relative to. Report appends a diagnostic to the
// engine's running collection for the current file; it is the only
// mutating operation a rule may perform.
type LintContext struct {
	File       string
	Tree       *zigsyntax.Tree
	Model      *semantic.Model
	Source     *source.Source
	Severity   diagnostic.Severity // the effective severity this rule was configured at
	Directives *directive.Filter   // may be nil, in which case nothing is suppressed

	report func(diagnostic.Diagnostic)
}

// NewLintContext builds a LintContext over a parsed file, dispatching every
// diagnostic a rule reports to collect.
func NewLintContext(file string, tree *zigsyntax.Tree, model *semantic.Model, src *source.Source, severity diagnostic.Severity, directives *directive.Filter, collect func(diagnostic.Diagnostic)) *LintContext {
	return &LintContext{File: file, Tree: tree, Model: model, Source: src, Severity: severity, Directives: directives, report: collect}
}

// Report emits one diagnostic at the context's configured severity, with
// the file name stamped on, unless a zlint-disable comment covers the
// diagnostic's primary span for this rule code.
func (c *LintContext) Report(d diagnostic.Diagnostic) {
	d.Severity = c.Severity
	d.SourceName = c.File
	if c.Directives != nil {
		if label, ok := d.PrimaryLabel(); ok && c.Directives.IsDisabled(d.Code, label.Span.Start) {
			return
		}
	}
	c.report(d)
}

// AST returns the parsed tree this context runs over.
func (c *LintContext) AST() *zigsyntax.Tree { return c.Tree }

// Semantic returns the resolved model this context runs over.
func (c *LintContext) Semantic() *semantic.Model { return c.Model }

// SpanT returns a token's source span.
func (c *LintContext) SpanT(id zigsyntax.TokenId) source.Span { return c.Tree.TokenSpan(id) }

// SpanN returns a node's covering source span.
func (c *LintContext) SpanN(id zigsyntax.NodeId) source.Span { return c.Tree.Span(id) }

// TokenSlice returns the source text spanning from the start of the from
// token to the end of the to token, inclusive.
func (c *LintContext) TokenSlice(from, to zigsyntax.TokenId) string {
	if from == zigsyntax.NoToken || to == zigsyntax.NoToken {
		return ""
	}
	start := c.Tree.TokenSpan(from)
	end := c.Tree.TokenSpan(to)
	return c.Source.Snippet(source.Span{Start: start.Start, End: end.End})
}

// Diagnosticf builds a Diagnostic at the context's severity with a
// formatted message, without reporting it; call Report to emit it.
func (c *LintContext) Diagnosticf(code string, primary source.Span, format string, args ...any) diagnostic.Diagnostic {
	return diagnostic.New(c.Severity, code, fmt.Sprintf(format, args...), primary)
}

// DiagnosticFix builds a Diagnostic carrying a fix, without reporting it.
func (c *LintContext) DiagnosticFix(code, message string, primary source.Span, fix diagnostic.Fix) diagnostic.Diagnostic {
	return diagnostic.New(c.Severity, code, message, primary).WithFix(fix)
}

// IsInTest reports whether node is lexically inside a test block.
func (c *LintContext) IsInTest(node zigsyntax.NodeId) bool {
	inTest := false
	c.Model.Ancestors(node, func(ancestor zigsyntax.NodeId) bool {
		if c.Tree.Node(ancestor).Tag == zigsyntax.NTTest {
			inTest = true
			return false
		}
		return true
	})
	return inTest
}

// RightmostIdentifier walks a postfix expression chain (field accesses,
// calls) down to the token naming its rightmost component, for attaching
// a diagnostic label at the end of a dotted path like "a.b.c".
func (c *LintContext) RightmostIdentifier(node zigsyntax.NodeId) zigsyntax.TokenId {
	n := c.Tree.Node(node)
	switch n.Tag {
	case zigsyntax.NTFieldAccess:
		return n.NameTok
	case zigsyntax.NTIdentifier:
		return n.Main
	case zigsyntax.NTCall:
		return c.RightmostIdentifier(n.Then)
	default:
		return zigsyntax.NoToken
	}
}

// HasErrorUnion reports whether a type expression's source text denotes
// an error union ("E!T" or "!T"). The grammar subset in zigsyntax does
// not model error unions as a distinct node, so this inspects the type
// expression's raw text for the "!" that only appears in that position
// once "!=" has already been lexed as its own token.
func (c *LintContext) HasErrorUnion(typeNode zigsyntax.NodeId) bool {
	if typeNode == zigsyntax.NoNode {
		return false
	}
	text := c.Source.Snippet(c.Tree.Span(typeNode))
	return strings.Contains(text, "!")
}

// NodeVisitor rules are invoked once per AST node, in pre-order, over the
// whole tree.
type NodeVisitor interface {
	RunOnNode(ctx *LintContext, node zigsyntax.NodeId)
}

// SymbolVisitor rules are invoked once per declared symbol, in declaration
// order, after the semantic model is fully built.
type SymbolVisitor interface {
	RunOnSymbol(ctx *LintContext, sym semantic.SymbolId)
}

// ModelVisitor rules run once per file after every node and symbol has
// been visited, for checks that need the whole model at once (unresolved
// references, import resolution).
type ModelVisitor interface {
	RunOnModel(ctx *LintContext)
}

// Rule is the minimal identity every rule provides; it implements any
// combination of NodeVisitor, SymbolVisitor and ModelVisitor.
type Rule interface {
	Metadata() RuleMetadata
}
