package preferconst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/preferconst"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(preferconst.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityWarning
	}, nil)
}

func TestFlagsNeverReassignedVar(t *testing.T) {
	diags := run("fn f() void {\n  var x = 1;\n  _ = x;\n}\n")
	require.Len(t, diags, 1)
	require.Equal(t, preferconst.Code, diags[0].Code)
	require.Equal(t, "const", diags[0].Fix.Replacement)
}

func TestAllowsReassignedVar(t *testing.T) {
	diags := run("fn f() void {\n  var x = 1;\n  x = 2;\n}\n")
	require.Empty(t, diags)
}
