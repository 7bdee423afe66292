package reporter

import (
	"encoding/json"
	"io"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// JSONFormatter emits one NDJSON object per diagnostic, per §4.7's wire
// format.
type JSONFormatter struct{}

type jsonLabel struct {
	Start   jsonPosition `json:"start"`
	End     jsonPosition `json:"end"`
	Label   string       `json:"label,omitempty"`
	Primary bool         `json:"primary"`
}

type jsonPosition struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

type jsonDiagnostic struct {
	Level      string      `json:"level"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Help       string      `json:"help,omitempty"`
	SourceName string      `json:"source_name"`
	Labels     []jsonLabel `json:"labels"`
}

// Format writes d as a single JSON object (the caller appends the
// NDJSON newline).
func (JSONFormatter) Format(w io.Writer, d diagnostic.Diagnostic, src *source.Source) error {
	out := jsonDiagnostic{
		Level:      d.Severity.String(),
		Code:       d.Code,
		Message:    d.Message,
		Help:       d.Help,
		SourceName: d.SourceName,
	}
	for _, l := range d.Labels {
		jl := jsonLabel{Label: l.Label, Primary: l.Primary}
		if src != nil {
			start := src.Position(l.Span.Start)
			end := src.Position(l.Span.End)
			jl.Start = jsonPosition{Line: start.Line, Col: start.Column}
			jl.End = jsonPosition{Line: end.Line, Col: end.Column}
		}
		out.Labels = append(out.Labels, jl)
	}
	// Marshal rather than json.Encoder: Reporter appends the line's
	// single trailing newline, and Encode would add a second one.
	bytes, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return err
}
