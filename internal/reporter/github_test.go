package reporter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/reporter"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// TestGitHubFormatterMatchesWireFormat reproduces §8 scenario 6.
func TestGitHubFormatterMatchesWireFormat(t *testing.T) {
	src := source.New("a.zig", []byte("xx\nxx\nxxxx\n"))
	pos := source.Position{Line: 2, Column: 4}
	span := source.Span{Start: src.Offset(pos), End: src.Offset(pos) + 1}

	d := diagnostic.New(diagnostic.SeverityErr, "X", "M", span).WithSourceName("a.zig")

	var b strings.Builder
	require.NoError(t, (reporter.GitHubFormatter{}).Format(&b, d, src))
	require.Equal(t, "::error file=a.zig,line=3,col=5,title=X::M", b.String())
}
