package directive

import (
	"strings"

	"github.com/DonIsaac/zlint-sub002/internal/source"
)

const (
	globalPrefix = "zlint-disable"
	linePrefix   = "zlint-disable-next-line"
)

// Parse scans a Tree's comments (recognized only in line comments, per
// §4.2) and returns every zlint-disable directive found, in source
// order.
func Parse(src *source.Source, comments []source.Span) []Directive {
	var out []Directive
	for _, c := range comments {
		d, ok := parseComment(src, c)
		if ok {
			out = append(out, d)
		}
	}
	return out
}

// parseComment recognizes one comment span as a directive. body is the
// comment text with its leading "//" (and any doc-comment "/"/"!")
// stripped and surrounding space trimmed.
func parseComment(src *source.Source, span source.Span) (Directive, bool) {
	text := src.Snippet(span)
	body := strings.TrimLeft(text, "/")
	body = strings.TrimPrefix(body, "!")
	body = strings.TrimSpace(body)

	var kind Kind
	var rest string
	switch {
	case strings.HasPrefix(body, linePrefix):
		kind = Line
		rest = body[len(linePrefix):]
	case strings.HasPrefix(body, globalPrefix):
		kind = Global
		rest = body[len(globalPrefix):]
	default:
		return Directive{}, false
	}

	// A directive keyword must be followed by a word boundary: end of
	// comment, whitespace, or the "--" comment separator. Otherwise
	// "zlint-disable-foo" would be mistaken for the global form.
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && !strings.HasPrefix(rest, "--") {
		return Directive{}, false
	}

	if idx := strings.Index(rest, "--"); idx >= 0 {
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)

	var rules []string
	if rest != "" {
		for _, field := range strings.FieldsFunc(rest, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			if field != "" {
				rules = append(rules, field)
			}
		}
	}

	pos := src.Position(span.Start)
	d := Directive{Kind: kind, Span: span, DisabledRules: rules}
	if kind == Line {
		d.TargetLine = pos.Line + 1
	}
	return d, true
}
