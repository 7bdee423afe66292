package noundeclaredidentifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/noundeclaredidentifier"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(noundeclaredidentifier.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityErr
	}, nil)
}

func TestFlagsUndeclaredIdentifier(t *testing.T) {
	diags := run("fn f() void {\n  _ = doesNotExist;\n}\n")
	require.Len(t, diags, 1)
	require.Equal(t, noundeclaredidentifier.Code, diags[0].Code)
	require.Contains(t, diags[0].Message, "doesNotExist")
}

func TestAllowsDeclaredIdentifier(t *testing.T) {
	diags := run("fn f() void {\n  const x = 1;\n  _ = x;\n}\n")
	require.Empty(t, diags)
}

func TestAllowsPrimitiveTypesAndStdRoot(t *testing.T) {
	diags := run("const x = try std.heap.page_allocator.alloc(u8, 8);\n")
	require.Empty(t, diags)
}

func TestAllowsArbitraryWidthIntTypes(t *testing.T) {
	diags := run("fn f() void {\n  const x: u256 = 0;\n  _ = x;\n}\n")
	require.Empty(t, diags)
}
