// Package reporter formats and emits diagnostics collected by the linter
// engine. A Reporter is the thread-safe façade described in §4.8: its
// writer is mutex-guarded so diagnostics from concurrent file workers
// never interleave mid-write, while its aggregate counters are updated
// with atomics.
package reporter

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// Formatter renders one diagnostic to w. src is the file the diagnostic
// was raised against, used by formatters that print source context.
// Implementations must not retain d or src past the call (§4.7).
type Formatter interface {
	Format(w io.Writer, d diagnostic.Diagnostic, src *source.Source) error
}

// Reporter serializes diagnostic output from potentially many
// concurrently-running file workers behind a single writer.
type Reporter struct {
	mu     sync.Mutex
	w      io.Writer
	format Formatter
	quiet  bool

	files    atomic.Int64
	errors   atomic.Int64
	warnings atomic.Int64
	notices  atomic.Int64
}

// New builds a Reporter writing through format to w. quiet drops
// non-err diagnostics from output (they are still counted).
func New(w io.Writer, format Formatter, quiet bool) *Reporter {
	return &Reporter{w: w, format: format, quiet: quiet}
}

// ReportFile registers that one more file was processed, independent of
// whether it produced any diagnostics.
func (r *Reporter) ReportFile() { r.files.Add(1) }

// ReportErrorSlice atomically emits every qualifying diagnostic in
// diags, in order, and updates the aggregate counters. Diagnostics from
// the same file are expected to already be in source-position order
// (the engine sorts each file's diagnostics before this call); ReportErrorSlice
// preserves that order by holding the writer lock for the whole slice,
// so diagnostics from different files never interleave within a call.
func (r *Reporter) ReportErrorSlice(diags []diagnostic.Diagnostic, src *source.Source) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range diags {
		switch d.Severity {
		case diagnostic.SeverityErr:
			r.errors.Add(1)
		case diagnostic.SeverityWarning:
			r.warnings.Add(1)
		case diagnostic.SeverityNotice:
			r.notices.Add(1)
		case diagnostic.SeverityOff:
			continue // must never reach the formatter
		}
		if r.quiet && d.Severity != diagnostic.SeverityErr {
			continue
		}
		if err := r.format.Format(r.w, d, src); err != nil {
			return err
		}
		if _, err := io.WriteString(r.w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Stats is a snapshot of the reporter's running totals.
type Stats struct {
	Files, Errors, Warnings, Notices int64
}

// Stats returns the current aggregate counts.
func (r *Reporter) Stats() Stats {
	return Stats{
		Files:    r.files.Load(),
		Errors:   r.errors.Load(),
		Warnings: r.warnings.Load(),
		Notices:  r.notices.Load(),
	}
}

// PrintStats prints the trailing summary line, the last line of output
// for a run (§5).
func (r *Reporter) PrintStats(duration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.Stats()
	_, err := fmt.Fprintf(r.w, "Checked %d file(s) in %s: %d error(s), %d warning(s), %d notice(s)\n",
		s.Files, duration.Round(time.Millisecond), s.Errors, s.Warnings, s.Notices)
	return err
}

// ExitCode computes the process exit code for the run's accumulated
// stats: 1 if any err-severity diagnostic was emitted, or (when
// denyWarnings is set) any warning; 0 otherwise (§4.5).
func (s Stats) ExitCode(denyWarnings bool) int {
	if s.Errors > 0 {
		return 1
	}
	if denyWarnings && s.Warnings > 0 {
		return 1
	}
	return 0
}
