package fix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/fix"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

func diagWithFix(f diagnostic.Fix) diagnostic.Diagnostic {
	return diagnostic.Diagnostic{Fix: &f}
}

func TestApplyNoFixesIsNoop(t *testing.T) {
	text := []byte("const x = 1;")
	res := fix.Apply(text, nil, fix.ModeSafe)
	require.False(t, res.DidFix)
	require.Equal(t, text, res.Source)
}

func TestApplySingleSafeFix(t *testing.T) {
	text := []byte("return try foo();")
	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 7, End: 11}, Replacement: "", Kind: diagnostic.FixSafe}),
	}
	res := fix.Apply(text, diags, fix.ModeSafe)
	require.True(t, res.DidFix)
	require.Equal(t, "return foo();", string(res.Source))
}

func TestApplySkipsSuggestionsInSafeMode(t *testing.T) {
	text := []byte("const unused = 1;")
	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 0, End: 17}, Replacement: "", Kind: diagnostic.FixSuggestion}),
	}
	res := fix.Apply(text, diags, fix.ModeSafe)
	require.False(t, res.DidFix)
	require.Equal(t, text, res.Source)
}

func TestApplyDangerousModeKeepsSuggestions(t *testing.T) {
	text := []byte("const unused = 1;")
	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 0, End: 17}, Replacement: "", Kind: diagnostic.FixSuggestion}),
	}
	res := fix.Apply(text, diags, fix.ModeDangerous)
	require.True(t, res.DidFix)
	require.Equal(t, "", string(res.Source))
}

// TestApplyOverlappingFixesOuterWins reproduces §8 scenario 4: source
// `const Foo = struct {\n  a: u32,\n};`, fix (a) replaces "a: u32" with
// "b: usize", fix (b) replaces the nested "u32" with "bool". The outer
// fix wins and the nested one is dropped; the outer replacement does not
// contain "u32", so nothing of the nested fix is folded into it.
func TestApplyOverlappingFixesOuterWins(t *testing.T) {
	text := []byte("const Foo = struct {\n  a: u32,\n};")
	aStart := uint32(23) // "a: u32"
	aEnd := aStart + uint32(len("a: u32"))
	uStart := uint32(26) // "u32" within "a: u32"
	uEnd := uStart + uint32(len("u32"))
	require.Equal(t, "a: u32", string(text[aStart:aEnd]))
	require.Equal(t, "u32", string(text[uStart:uEnd]))

	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: aStart, End: aEnd}, Replacement: "b: usize", Kind: diagnostic.FixSafe}),
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: uStart, End: uEnd}, Replacement: "bool", Kind: diagnostic.FixSafe}),
	}
	res := fix.Apply(text, diags, fix.ModeSafe)
	require.True(t, res.DidFix)
	require.Equal(t, "const Foo = struct {\n  b: usize,\n};", string(res.Source))
}

func TestApplyIsIdempotent(t *testing.T) {
	text := []byte("return try foo();")
	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 7, End: 11}, Replacement: "", Kind: diagnostic.FixSafe}),
	}
	once := fix.Apply(text, diags, fix.ModeSafe)
	twice := fix.Apply(once.Source, nil, fix.ModeSafe)
	require.Equal(t, once.Source, twice.Source)
}

func TestApplyEarlierStartWinsOnConflict(t *testing.T) {
	text := []byte("abcdef")
	diags := []diagnostic.Diagnostic{
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 0, End: 3}, Replacement: "XYZ", Kind: diagnostic.FixSafe}),
		diagWithFix(diagnostic.Fix{Span: source.Span{Start: 1, End: 4}, Replacement: "123", Kind: diagnostic.FixSafe}),
	}
	res := fix.Apply(text, diags, fix.ModeSafe)
	require.Equal(t, "XYZdef", string(res.Source))
}
