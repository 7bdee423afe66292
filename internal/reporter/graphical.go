package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/muesli/termenv"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// maxContextLines is the number of source lines shown above the primary
// span (§4.7's maximum of 3); no lines after the span are shown.
const maxContextLines = 3

// GraphicalOptions controls the themeable parts of GraphicalFormatter:
// unicode vs. ascii box-drawing, and color on/off.
type GraphicalOptions struct {
	Unicode bool
	Color   bool
}

// DetectOptions chooses unicode/color defaults the way a terminal-aware
// CLI does: color follows termenv's profile detection (respecting
// NO_COLOR and CLICOLOR_FORCE), unicode is on unless stdout isn't a
// real terminal.
func DetectOptions() GraphicalOptions {
	profile := termenv.EnvColorProfile()
	return GraphicalOptions{
		Unicode: stdoutIsTerminal(),
		Color:   profile != termenv.Ascii,
	}
}

// GraphicalFormatter is the default, human-oriented formatter (§4.7):
// header, masthead, source context with a line-number gutter, an
// underline of the primary span with its label, and a help footer.
type GraphicalFormatter struct {
	Options GraphicalOptions
}

func NewGraphicalFormatter(opts GraphicalOptions) *GraphicalFormatter {
	return &GraphicalFormatter{Options: opts}
}

func (f *GraphicalFormatter) style(fn func(lipgloss.Style) lipgloss.Style) lipgloss.Style {
	s := lipgloss.NewStyle()
	if !f.Options.Color {
		return s
	}
	return fn(s)
}

func (f *GraphicalFormatter) severityStyle(sev diagnostic.Severity) lipgloss.Style {
	switch sev {
	case diagnostic.SeverityErr:
		return f.style(func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("9")) })
	case diagnostic.SeverityWarning:
		return f.style(func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("11")) })
	default:
		return f.style(func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("12")) })
	}
}

func (f *GraphicalFormatter) icon(sev diagnostic.Severity) string {
	if !f.Options.Unicode {
		switch sev {
		case diagnostic.SeverityErr:
			return "error:"
		case diagnostic.SeverityWarning:
			return "warning:"
		default:
			return "notice:"
		}
	}
	switch sev {
	case diagnostic.SeverityErr:
		return "✖"
	case diagnostic.SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

func (f *GraphicalFormatter) bar() string {
	if f.Options.Unicode {
		return "│"
	}
	return "|"
}

func (f *GraphicalFormatter) corner() string {
	if f.Options.Unicode {
		return "╰──"
	}
	return "`--"
}

// Format renders d. It never retains d or src past the call.
func (f *GraphicalFormatter) Format(w io.Writer, d diagnostic.Diagnostic, src *source.Source) error {
	var b strings.Builder
	sevStyle := f.severityStyle(d.Severity)

	fmt.Fprintf(&b, "%s %s: %s\n", sevStyle.Render(f.icon(d.Severity)), sevStyle.Render(d.Code), d.Message)

	label, ok := d.PrimaryLabel()
	if !ok || src == nil {
		if d.Help != "" {
			fmt.Fprintf(&b, "  help: %s\n", d.Help)
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	pos := src.Position(label.Span.Start)
	dimStyle := f.style(func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) })
	fmt.Fprintf(&b, "%s %s:%d:%d\n", dimStyle.Render("-->"), src.Name(), pos.Line+1, pos.Column+1)

	startLine := pos.Line - maxContextLines
	if startLine < 0 {
		startLine = 0
	}
	endLine := src.Position(label.Span.End).Line
	if endLine < pos.Line {
		endLine = pos.Line
	}

	gutterWidth := len(fmt.Sprintf("%d", endLine+1))
	for line := startLine; line <= endLine; line++ {
		fmt.Fprintf(&b, " %*d %s %s\n", gutterWidth, line+1, f.bar(), src.Line(line))
		if line == pos.Line {
			underline := renderUnderline(src, label, gutterWidth, f.bar())
			b.WriteString(underline)
			if label.HasText {
				fmt.Fprintf(&b, " %s %s %s\n", strings.Repeat(" ", gutterWidth), f.bar(), f.corner()+" "+label.Label)
			}
		}
	}

	if d.Help != "" {
		helpStyle := f.style(func(s lipgloss.Style) lipgloss.Style { return s.Bold(true).Foreground(lipgloss.Color("14")) })
		fmt.Fprintf(&b, " %s %s\n", helpStyle.Render("help:"), d.Help)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderUnderline draws the caret line beneath a single source line's
// portion of the primary span. A zero-width span at end-of-file still
// gets one caret so the formatter never produces an empty underline.
func renderUnderline(src *source.Source, label source.LabeledSpan, gutterWidth int, bar string) string {
	lineStart := src.Offset(source.Position{Line: src.Position(label.Span.Start).Line, Column: 0})
	startCol := int(label.Span.Start - lineStart)
	width := int(label.Span.Len())
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", gutterWidth) + " " + bar + " " + strings.Repeat(" ", startCol)
	return pad + strings.Repeat("^", width) + "\n"
}

// stdoutIsTerminal reports whether os.Stdout looks like a real terminal.
func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
