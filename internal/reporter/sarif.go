package reporter

import (
	"io"

	sarif "github.com/owenrumney/go-sarif/v3/pkg/report"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// SARIFFormatter is a fourth, bonus format beyond §4.7's three
// mandates: it buffers one run and emits a single SARIF 2.1.0 document,
// since SARIF has no per-diagnostic streaming form the way NDJSON does.
// Callers that select it should accumulate diagnostics across the whole
// invocation and call WriteReport once at the end rather than treating
// it like the line-oriented formatters.
type SARIFFormatter struct {
	report *sarif.Report
	run    *sarif.Run
}

// NewSARIFFormatter builds a formatter with one SARIF run named after
// the tool.
func NewSARIFFormatter() (*SARIFFormatter, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, err
	}
	run := sarif.NewRunWithInformationURI("zlint", "https://github.com/DonIsaac/zlint")
	report.AddRun(run)
	return &SARIFFormatter{report: report, run: run}, nil
}

// Format appends d as one SARIF result to the formatter's buffered run.
// It never writes to w directly; call WriteReport after the last
// diagnostic to emit the document.
func (f *SARIFFormatter) Format(w io.Writer, d diagnostic.Diagnostic, src *source.Source) error {
	f.run.AddRule(d.Code).WithDescription(d.Message)

	line, col := 1, 1
	if label, ok := d.PrimaryLabel(); ok && src != nil {
		pos := src.Position(label.Span.Start)
		line, col = pos.Line+1, pos.Column+1
	}

	result := f.run.CreateResultForRule(d.Code).
		WithLevel(sarifLevel(d.Severity)).
		WithMessage(sarif.NewTextMessage(d.Message))
	result.WithLocation(sarif.NewLocationWithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.SourceName)).
			WithRegion(sarif.NewRegion().WithStartLine(line).WithStartColumn(col)),
	))
	return nil
}

// WriteReport emits the accumulated SARIF document to w. Call once,
// after every diagnostic has been formatted.
func (f *SARIFFormatter) WriteReport(w io.Writer) error {
	return f.report.Write(w)
}

func sarifLevel(s diagnostic.Severity) string {
	switch s {
	case diagnostic.SeverityErr:
		return "error"
	case diagnostic.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
