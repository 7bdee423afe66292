// Package linter orchestrates the end-to-end pipeline per file: parse,
// build the semantic model, parse disable directives, dispatch rules,
// optionally apply fixes, and report. Files are processed in parallel
// by a worker pool sized to the configured job count.
package linter

import (
	"context"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/DonIsaac/zlint-sub002/internal/config"
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/directive"
	"github.com/DonIsaac/zlint-sub002/internal/fix"
	"github.com/DonIsaac/zlint-sub002/internal/reporter"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// FixMode selects whether, and how aggressively, the engine rewrites
// files after linting.
type FixMode int

const (
	FixModeNone FixMode = iota
	FixModeSafe
	FixModeDangerous
)

// Options configures one Engine run.
type Options struct {
	Config   *config.Config
	Registry *rules.Registry
	Reporter *reporter.Reporter
	Jobs     int // <= 0 means runtime.NumCPU()
	Fix      FixMode
}

// Engine runs the rule catalog over a set of files with a bounded
// worker pool, matching §4.5 and §5's per-file single-threaded model.
type Engine struct {
	opts Options
}

// New builds an Engine from opts, defaulting Jobs to the logical core
// count when unset.
func New(opts Options) *Engine {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &Engine{opts: opts}
}

// Run lints every file in paths. It returns the first fatal error
// encountered (§7's InternalError/ConfigError class); per-file parse,
// analysis, and I/O failures are reported as diagnostics instead of
// stopping the run.
func (e *Engine) Run(ctx context.Context, paths []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Jobs)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return e.runFile(path)
		})
	}
	return g.Wait()
}

// runFile executes the full single-file pipeline. It never returns a
// non-nil error for file-local problems (parse errors, I/O failures);
// those become diagnostics or are logged, matching §7's propagation
// policy that per-file errors never cross the worker boundary.
func (e *Engine) runFile(path string) error {
	defer e.opts.Reporter.ReportFile()

	text, err := os.ReadFile(path)
	if err != nil {
		e.opts.Reporter.ReportErrorSlice([]diagnostic.Diagnostic{
			diagnostic.New(diagnostic.SeverityErr, "io-error", err.Error(), source.Span{}).WithSourceName(path),
		}, nil)
		return nil
	}

	src := source.New(path, text)
	tree := zigsyntax.Parse(src)

	var diags []diagnostic.Diagnostic
	for _, perr := range tree.Errors {
		diags = append(diags, diagnostic.New(diagnostic.SeverityErr, "parse-error", perr.Message, perr.Span).WithSourceName(path))
	}

	model := semantic.Build(tree)
	diags = append(diags, model.Diagnostics...)

	comments := make([]source.Span, 0, len(tree.Comments))
	for _, c := range tree.Comments {
		comments = append(comments, c.Span)
	}
	filter := directive.NewFilter(src, directive.Parse(src, comments))

	ruleConfigs := config.Resolve(e.opts.Config, e.opts.Registry)
	diags = append(diags, rules.Dispatch(e.opts.Registry, path, tree, model, src, func(code string) diagnostic.Severity {
		return ruleConfigs[code].Severity
	}, filter)...)

	if e.opts.Fix != FixModeNone {
		mode := fix.ModeSafe
		if e.opts.Fix == FixModeDangerous {
			mode = fix.ModeDangerous
		}
		result := fix.Apply(text, diags, mode)
		if result.DidFix {
			if err := os.WriteFile(path, result.Source, 0o644); err != nil {
				diags = append(diags, diagnostic.New(diagnostic.SeverityErr, "io-error", err.Error(), source.Span{}).WithSourceName(path))
			}
		}
	}

	// Parse errors, semantic diagnostics and rule diagnostics are collected
	// in separate passes above; report them in source-position order.
	sort.SliceStable(diags, func(i, j int) bool {
		a, _ := diags[i].PrimaryLabel()
		b, _ := diags[j].PrimaryLabel()
		return a.Span.Less(b.Span)
	})
	return e.opts.Reporter.ReportErrorSlice(diags, src)
}
