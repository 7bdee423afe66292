package directive_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func commentSpans(t *testing.T, src *source.Source) []source.Span {
	t.Helper()
	_, comments := zigsyntax.Lex(src)
	spans := make([]source.Span, len(comments))
	for i, c := range comments {
		spans[i] = c.Span
	}
	return spans
}

func TestParseGlobalDisablesNamedRule(t *testing.T) {
	text := "// zlint-disable unsafe-undefined\nconst x = undefined;\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))

	require.Len(t, ds, 1)
	require.Equal(t, directive.Global, ds[0].Kind)
	require.Equal(t, []string{"unsafe-undefined"}, ds[0].DisabledRules)
	require.True(t, ds[0].Disables("unsafe-undefined"))
	require.False(t, ds[0].Disables("unused-decls"))
}

func TestParseGlobalWithNoRulesDisablesAll(t *testing.T) {
	text := "// zlint-disable\nconst x = undefined;\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))

	require.Len(t, ds, 1)
	require.True(t, ds[0].DisablesAll())
	require.True(t, ds[0].Disables("anything"))
}

func TestParseNextLineTargetsFollowingLineOnly(t *testing.T) {
	text := "// zlint-disable-next-line unused-decls\nconst x = 1;\nconst y = 2;\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))

	require.Len(t, ds, 1)
	require.Equal(t, directive.Line, ds[0].Kind)
	require.Equal(t, 1, ds[0].TargetLine)
}

func TestParseCommaSeparatedRuleList(t *testing.T) {
	text := "// zlint-disable unsafe-undefined, unused-decls\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))

	require.Len(t, ds, 1)
	require.Equal(t, []string{"unsafe-undefined", "unused-decls"}, ds[0].DisabledRules)
}

func TestParseIgnoresCommentText(t *testing.T) {
	text := "// zlint-disable unused-decls -- temporary, see issue #4\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))

	require.Len(t, ds, 1)
	require.Equal(t, []string{"unused-decls"}, ds[0].DisabledRules)
}

func TestParseIgnoresUnrelatedComments(t *testing.T) {
	text := "// just a normal comment\nconst x = 1;\n"
	src := source.New("a.zig", []byte(text))
	ds := directive.Parse(src, commentSpans(t, src))
	require.Empty(t, ds)
}

func TestFilterGlobalAppliesEverywhere(t *testing.T) {
	text := "// zlint-disable unsafe-undefined\nconst x = undefined;\nconst y = undefined;\n"
	src := source.New("a.zig", []byte(text))
	f := directive.NewFilter(src, directive.Parse(src, commentSpans(t, src)))

	require.True(t, f.IsDisabled("unsafe-undefined", uint32(len(text)-5)))
	require.False(t, f.IsDisabled("unused-decls", uint32(len(text)-5)))
}

func TestFilterLineOnlyAppliesToTargetLine(t *testing.T) {
	text := "// zlint-disable-next-line unsafe-undefined\nconst x = undefined;\nconst y = undefined;\n"
	src := source.New("a.zig", []byte(text))
	f := directive.NewFilter(src, directive.Parse(src, commentSpans(t, src)))

	line1Offset := src.Offset(source.Position{Line: 1, Column: 0})
	line2Offset := src.Offset(source.Position{Line: 2, Column: 0})

	require.True(t, f.IsDisabled("unsafe-undefined", line1Offset))
	require.False(t, f.IsDisabled("unsafe-undefined", line2Offset))
}

func TestDirectiveAtEndOfFileHasNoEffectOnPriorLines(t *testing.T) {
	text := "const x = undefined;\n// zlint-disable-next-line unsafe-undefined\n"
	src := source.New("a.zig", []byte(text))
	f := directive.NewFilter(src, directive.Parse(src, commentSpans(t, src)))

	line0Offset := src.Offset(source.Position{Line: 0, Column: 0})
	require.False(t, f.IsDisabled("unsafe-undefined", line0Offset))
}
