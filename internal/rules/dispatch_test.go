package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

type panicRule struct{}

func (panicRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{Code: "panic-rule", DefaultSeverity: diagnostic.SeverityErr, EnabledByDefault: true}
}
func (panicRule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	panic("boom")
}

type countingRule struct{ hits *int }

func (countingRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{Code: "counting-rule", DefaultSeverity: diagnostic.SeverityWarning, EnabledByDefault: true}
}
func (r countingRule) RunOnNode(ctx *rules.LintContext, node zigsyntax.NodeId) {
	*r.hits++
	ctx.Report(diagnostic.New(ctx.Severity, "counting-rule", "hit", source.Span{}))
}

func TestDispatchIsolatesPanickingRule(t *testing.T) {
	reg := rules.NewRegistry()
	reg.Register(panicRule{})
	hits := 0
	reg.Register(countingRule{hits: &hits})

	src := source.New("a.zig", []byte("const x = 1;\n"))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)

	diags := rules.Dispatch(reg, "a.zig", tree, model, src, func(code string) diagnostic.Severity {
		return reg.Get(code).Metadata().DefaultSeverity
	}, nil)

	require.Greater(t, hits, 0)
	var sawInternalError bool
	for _, d := range diags {
		if d.Code == "internal-rule-error" {
			sawInternalError = true
		}
	}
	require.True(t, sawInternalError)
}

func TestDispatchSkipsOffSeverity(t *testing.T) {
	reg := rules.NewRegistry()
	hits := 0
	reg.Register(countingRule{hits: &hits})

	src := source.New("a.zig", []byte("const x = 1;\n"))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)

	rules.Dispatch(reg, "a.zig", tree, model, src, func(code string) diagnostic.Severity {
		return diagnostic.SeverityOff
	}, nil)

	require.Equal(t, 0, hits)
}

func TestDispatchRespectsDisableDirective(t *testing.T) {
	reg := rules.NewRegistry()
	reg.Register(countingRule{hits: new(int)})

	src := source.New("a.zig", []byte("// zlint-disable counting-rule\nconst x = 1;\n"))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	ds := directive.Parse(src, commentSpans(tree))
	filter := directive.NewFilter(src, ds)

	diags := rules.Dispatch(reg, "a.zig", tree, model, src, func(code string) diagnostic.Severity {
		return diagnostic.SeverityWarning
	}, filter)

	for _, d := range diags {
		require.NotEqual(t, "counting-rule", d.Code)
	}
}

func commentSpans(tree *zigsyntax.Tree) []source.Span {
	spans := make([]source.Span, 0, len(tree.Comments))
	for _, c := range tree.Comments {
		spans = append(spans, c.Span)
	}
	return spans
}
