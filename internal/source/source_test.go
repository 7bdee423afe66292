package source_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/source"
)

func TestPositionRoundTrip(t *testing.T) {
	text := "const x = 1;\nconst y = 2;\n"
	src := source.New("a.zig", []byte(text))

	require.Equal(t, 3, src.LineCount())
	require.Equal(t, "const x = 1;", src.Line(0))
	require.Equal(t, "const y = 2;", src.Line(1))
	require.Equal(t, "", src.Line(2))

	pos := src.Position(13) // start of line 1
	require.Equal(t, source.Position{Line: 1, Column: 0}, pos)
	require.Equal(t, uint32(13), src.Offset(pos))
}

func TestPositionCRLF(t *testing.T) {
	lf := source.New("a.zig", []byte("a\nb\n"))
	crlf := source.New("a.zig", []byte("a\r\nb\r\n"))

	require.Equal(t, lf.Position(2), source.Position{Line: 1, Column: 0})
	require.Equal(t, crlf.Position(3), source.Position{Line: 1, Column: 0})
	require.Equal(t, "b", lf.Line(1))
	require.Equal(t, "b", crlf.Line(1))
}

func TestSpanContainsAndOverlaps(t *testing.T) {
	outer := source.Span{Start: 0, End: 10}
	inner := source.Span{Start: 2, End: 4}
	sibling := source.Span{Start: 8, End: 12}

	require.True(t, outer.Contains(inner))
	require.False(t, inner.Contains(outer))
	require.False(t, outer.Contains(outer))
	require.True(t, outer.Overlaps(sibling))
	require.False(t, inner.Overlaps(source.Span{Start: 5, End: 6}))
}

func TestIsBlank(t *testing.T) {
	require.True(t, source.New("a.zig", nil).IsBlank())
	require.True(t, source.New("a.zig", []byte("   \n\t\n")).IsBlank())
	require.False(t, source.New("a.zig", []byte("x")).IsBlank())
}
