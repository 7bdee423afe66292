package shadowing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/shadowing"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(shadowing.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityWarning
	}, nil)
}

func TestFlagsNestedBlockShadowingOuterVar(t *testing.T) {
	diags := run("fn f() void {\n  const x = 1;\n  {\n    const x = 2;\n    _ = x;\n  }\n  _ = x;\n}\n")
	require.Len(t, diags, 1)
	require.Equal(t, shadowing.Code, diags[0].Code)
}

func TestAllowsDistinctNames(t *testing.T) {
	diags := run("fn f() void {\n  const x = 1;\n  const y = 2;\n  _ = x;\n  _ = y;\n}\n")
	require.Empty(t, diags)
}
