package nounnecessarycomptime_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/nounnecessarycomptime"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(nounnecessarycomptime.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityWarning
	}, nil)
}

func TestFlagsComptimeWrappingLiteral(t *testing.T) {
	diags := run("fn f() void {\n  _ = comptime 1;\n}\n")
	require.Len(t, diags, 1)
	require.Equal(t, nounnecessarycomptime.Code, diags[0].Code)
}

func TestFlagsDoubleComptime(t *testing.T) {
	diags := run("fn f() void {\n  comptime {\n    comptime {\n      _ = 1;\n    }\n  }\n}\n")
	require.NotEmpty(t, diags)
}
