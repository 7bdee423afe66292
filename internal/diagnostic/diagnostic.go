// Package diagnostic defines the structured violation record rules emit
// and formatters consume: Diagnostic, its labeled spans, and the Fix a
// rule may attach.
package diagnostic

import (
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// FixKind classifies the fix a rule attaches to a Diagnostic and governs
// whether --fix or --fix-dangerously applies it.
type FixKind int

const (
	// FixNone means the rule never attaches fixes.
	FixNone FixKind = iota
	// FixSafe fixes are applied by plain --fix.
	FixSafe
	// FixSuggestion fixes are shown but require --fix-dangerously unless
	// also marked safe; suggestions are never auto-applied by plain --fix.
	FixSuggestion
)

// Fix is a single span+replacement edit. A Fix with an empty span and
// empty replacement is a no-op and the fixer treats it as absent.
type Fix struct {
	Span        source.Span
	Replacement string
	Kind        FixKind
	Dangerous   bool
}

// IsNoop reports whether applying the fix would change nothing.
func (f Fix) IsNoop() bool {
	return f.Span.IsEmpty() && f.Replacement == ""
}

// Diagnostic is a single rule violation: severity, a stable rule code, a
// message, optional help text, the spans implicated, and an optional fix.
//
// Diagnostic never outlives the call that produced it inside a rule or a
// formatter; LintContext and the formatters only ever pass it by value or
// for the duration of one call.
type Diagnostic struct {
	Severity   Severity
	Code       string
	Message    string
	Help       string
	SourceName string
	Labels     []source.LabeledSpan
	Fix        *Fix
}

// New builds a Diagnostic with a single primary label.
func New(severity Severity, code, message string, primary source.Span) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Labels:   []source.LabeledSpan{source.NewPrimary(primary)},
	}
}

// PrimaryLabel returns the diagnostic's primary label, if any. Formatters
// fall back to the first label, then to a zero span, when none is marked
// primary — this mirrors the GitHub formatter's documented "falls back to
// 1:1 if unknown" behavior.
func (d Diagnostic) PrimaryLabel() (source.LabeledSpan, bool) {
	for _, l := range d.Labels {
		if l.Primary {
			return l, true
		}
	}
	if len(d.Labels) > 0 {
		return d.Labels[0], true
	}
	return source.LabeledSpan{}, false
}

// WithHelp attaches help text and returns the diagnostic for chaining.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithLabel appends a non-primary labeled span.
func (d Diagnostic) WithLabel(span source.Span, label string) Diagnostic {
	d.Labels = append(d.Labels, source.NewLabel(span, label, false))
	return d
}

// WithFix attaches a fix and returns the diagnostic for chaining.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fix = &fix
	return d
}

// WithSourceName sets the diagnostic's originating file name.
func (d Diagnostic) WithSourceName(name string) Diagnostic {
	d.SourceName = name
	return d
}
