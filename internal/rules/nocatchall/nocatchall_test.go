package nocatchall_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/nocatchall"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(nocatchall.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityWarning
	}, nil)
}

func TestFlagsEmptyCatchHandler(t *testing.T) {
	diags := run("fn f() void {\n  foo() catch {};\n}\n")
	require.Len(t, diags, 1)
	require.Equal(t, nocatchall.Code, diags[0].Code)
}

func TestAllowsHandledCatch(t *testing.T) {
	diags := run("fn f() void {\n  foo() catch |err| {\n    bar(err);\n  };\n}\n")
	require.Empty(t, diags)
}
