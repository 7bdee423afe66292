package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/all"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func lint(t *testing.T, text string) []diagnostic.Diagnostic {
	t.Helper()
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	commentSpans := make([]source.Span, 0, len(tree.Comments))
	for _, c := range tree.Comments {
		commentSpans = append(commentSpans, c.Span)
	}
	ds := directive.Parse(src, commentSpans)
	filter := directive.NewFilter(src, ds)

	return rules.Dispatch(rules.DefaultRegistry(), "a.zig", tree, model, src, func(code string) diagnostic.Severity {
		r := rules.Get(code)
		if r == nil {
			return diagnostic.SeverityOff
		}
		return r.Metadata().DefaultSeverity
	}, filter)
}

// TestHomelessTryOutsideFunction reproduces §8 scenario 1. It runs against
// the full default catalog (not a hand-picked rule subset) so that
// no-undeclared-identifier's builtin allowlist is actually exercised: a
// bare "std" and "u8" must not be reported as undeclared identifiers.
func TestHomelessTryOutsideFunction(t *testing.T) {
	diags := lint(t, "const x = try std.heap.page_allocator.alloc(u8, 8);\n")
	var found int
	for _, d := range diags {
		require.NotEqual(t, "no-undeclared-identifier", d.Code, "%q must not be reported as undeclared", d.Message)
		if d.Code == "homeless-try" {
			found++
			require.Equal(t, diagnostic.SeverityErr, d.Severity)
		}
	}
	require.Equal(t, 1, found)
}

// TestUnsafeUndefinedTopLevelConst reproduces §8 scenario 2.
func TestUnsafeUndefinedTopLevelConst(t *testing.T) {
	diags := lint(t, "const x = undefined;\n")
	var found int
	for _, d := range diags {
		if d.Code == "unsafe-undefined" {
			found++
			require.Equal(t, diagnostic.SeverityWarning, d.Severity)
		}
	}
	require.Equal(t, 1, found)
}

// TestDisableDirectiveSuppressesOneRuleNotTheOther reproduces §8 scenario 3.
func TestDisableDirectiveSuppressesOneRuleNotTheOther(t *testing.T) {
	diags := lint(t, "// zlint-disable unsafe-undefined\nconst Unused = struct { x: u32 = undefined };\n")
	require.Len(t, diags, 1)
	require.Equal(t, "unused-decls", diags[0].Code)
}

// TestNoReturnTryPassesWithErrdefer reproduces §8 scenario 5.
func TestNoReturnTryPassesWithErrdefer(t *testing.T) {
	diags := lint(t, "fn bar() !void {\n  errdefer std.debug.print(\"x\\n\", .{});\n  return foo();\n}\n")
	for _, d := range diags {
		require.NotEqual(t, "no-return-try", d.Code)
	}
}
