package reporter

import (
	"fmt"
	"io"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// GitHubFormatter renders a diagnostic as a GitHub Actions workflow
// command, one line per diagnostic (§4.7):
//
//	::{level} file=PATH,line=L,col=C,title=CODE::MESSAGE
type GitHubFormatter struct{}

func (GitHubFormatter) Format(w io.Writer, d diagnostic.Diagnostic, src *source.Source) error {
	level := githubLevel(d.Severity)
	line, col := 1, 1
	if label, ok := d.PrimaryLabel(); ok && src != nil {
		pos := src.Position(label.Span.Start)
		line, col = pos.Line+1, pos.Column+1
	}
	_, err := fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d,title=%s::%s",
		level, d.SourceName, line, col, d.Code, d.Message)
	return err
}

func githubLevel(s diagnostic.Severity) string {
	switch s {
	case diagnostic.SeverityErr:
		return "error"
	case diagnostic.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}
