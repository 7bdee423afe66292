// Command zlint lints Zig source files against the rule catalog in
// internal/rules, reporting diagnostics in one of several formats and
// optionally rewriting files with safe or dangerous fixes.
package main

import (
	"bufio"
	"context"
	stdjson "encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/DonIsaac/zlint-sub002/internal/config"
	"github.com/DonIsaac/zlint-sub002/internal/linter"
	"github.com/DonIsaac/zlint-sub002/internal/reporter"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	_ "github.com/DonIsaac/zlint-sub002/internal/rules/all"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/version"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// Exit codes (§6). zlint's CLI surface only distinguishes these three;
// config and internal errors that occur before or outside per-file
// linting are reported on ExitInvalidArg since there is no dedicated
// code for them.
const (
	ExitSuccess    = 0
	ExitLintErrors = 1
	ExitInvalidArg = 2
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitInvalidArg)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "zlint",
		Usage:     "A linter for the Zig programming language",
		Version:   version.Version(),
		ArgsUsage: "[PATH...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "print-ast", Usage: "Print AST of one file as JSON to stdout"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "graphical | github | gh | json | sarif | default"},
			&cli.BoolFlag{Name: "no-summary", Usage: "Suppress the trailing statistics line"},
			&cli.BoolFlag{Name: "stdin", Aliases: []string{"S"}, Usage: "Read filenames from stdin, one per line"},
			&cli.BoolFlag{Name: "fix", Usage: "Apply safe fixes in place"},
			&cli.BoolFlag{Name: "fix-dangerously", Usage: "Apply safe + dangerous fixes"},
			&cli.BoolFlag{Name: "deny-warnings", Usage: "Exit non-zero on any warning"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Show only errors (warnings still counted)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "Verbose logging"},
			&cli.StringSliceFlag{Name: "select", Usage: "Enable specific rules for this run (rule-code or *)"},
			&cli.StringSliceFlag{Name: "ignore", Usage: "Disable specific rules for this run (rule-code or *)"},
		},
		Action: runLint,
	}
}

func runLint(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	paths := cmd.Args().Slice()
	if cmd.Bool("stdin") {
		stdinPaths, err := readStdinPaths(os.Stdin)
		if err != nil {
			return cli.Exit(err.Error(), ExitInvalidArg)
		}
		paths = append(paths, stdinPaths...)
	}

	if cmd.Bool("print-ast") {
		return printAST(paths)
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	cfg, cfgDiags, err := config.Load(cwd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), ExitInvalidArg)
	}

	registry := rules.DefaultRegistry()
	applySelectIgnore(cfg, registry, cmd.StringSlice("select"), cmd.StringSlice("ignore"))

	files, err := linter.Discover(paths, cfg)
	if err != nil {
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	format, sarif, err := parseFormat(cmd.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	rep := reporter.New(os.Stdout, format, cmd.Bool("quiet"))
	if err := rep.ReportErrorSlice(cfgDiags, nil); err != nil {
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	fixMode := linter.FixModeNone
	switch {
	case cmd.Bool("fix-dangerously"):
		fixMode = linter.FixModeDangerous
	case cmd.Bool("fix"):
		fixMode = linter.FixModeSafe
	}

	eng := linter.New(linter.Options{
		Config:   cfg,
		Registry: registry,
		Reporter: rep,
		Fix:      fixMode,
	})

	start := time.Now()
	if err := eng.Run(ctx, files); err != nil {
		log.WithError(err).Error("zlint: internal error")
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	if sarif {
		if err := format.(*reporter.SARIFFormatter).WriteReport(os.Stdout); err != nil {
			return cli.Exit(err.Error(), ExitInvalidArg)
		}
	}

	if !cmd.Bool("no-summary") {
		if err := rep.PrintStats(time.Since(start)); err != nil {
			return cli.Exit(err.Error(), ExitInvalidArg)
		}
	}

	if code := rep.Stats().ExitCode(cmd.Bool("deny-warnings")); code != ExitSuccess {
		return cli.Exit("", ExitLintErrors)
	}
	return nil
}

// parseFormat resolves the -f/--format flag to a Formatter. sarif is
// true when the returned Formatter must be flushed with WriteReport
// after the run completes, since SARIF has no streaming form.
func parseFormat(name string) (reporter.Formatter, bool, error) {
	switch name {
	case "", "default", "graphical":
		return reporter.NewGraphicalFormatter(reporter.DetectOptions()), false, nil
	case "github", "gh":
		return reporter.GitHubFormatter{}, false, nil
	case "json":
		return reporter.JSONFormatter{}, false, nil
	case "sarif":
		f, err := reporter.NewSARIFFormatter()
		if err != nil {
			return nil, false, err
		}
		return f, true, nil
	default:
		return nil, false, fmt.Errorf("unknown format %q", name)
	}
}

// readStdinPaths reads one file path per line from r, skipping blank
// lines, matching -S/--stdin's contract.
func readStdinPaths(r *os.File) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths, scanner.Err()
}

// printAST parses the first path and writes its AST as JSON to stdout.
func printAST(paths []string) error {
	if len(paths) == 0 {
		return cli.Exit("--print-ast requires a file path", ExitInvalidArg)
	}
	path := paths[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(err.Error(), ExitInvalidArg)
	}

	src := source.New(path, text)
	tree := zigsyntax.Parse(src)

	out := struct {
		Tokens   []zigsyntax.Token        `json:"tokens"`
		Nodes    []zigsyntax.Node         `json:"nodes"`
		Root     zigsyntax.NodeId         `json:"root"`
		Comments []zigsyntax.Comment      `json:"comments"`
		Imports  []zigsyntax.ModuleRecord `json:"imports"`
		Errors   []zigsyntax.ParseError   `json:"errors"`
	}{tree.Tokens, tree.Nodes, tree.Root, tree.Comments, tree.Imports, tree.Errors}

	enc := stdjson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// applySelectIgnore overlays --select/--ignore onto cfg.Rules for this
// invocation only: select enables a rule at its registry default
// severity even if zlint.json or the registry default disabled it;
// ignore forces a rule off regardless of prior configuration. Patterns
// are either an exact rule code or "*" for every rule (there are no
// rule namespaces in this catalog, so "namespace/*" patterns never
// match).
func applySelectIgnore(cfg *config.Config, registry *rules.Registry, selects, ignores []string) {
	if len(selects) == 0 && len(ignores) == 0 {
		return
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]any{}
	}
	for _, r := range registry.All() {
		code := r.Metadata().Code
		if matchesAny(selects, code) {
			cfg.Rules[code] = r.Metadata().DefaultSeverity.String()
		}
	}
	for _, r := range registry.All() {
		code := r.Metadata().Code
		if matchesAny(ignores, code) {
			cfg.Rules[code] = "off"
		}
	}
}

func matchesAny(patterns []string, code string) bool {
	for _, p := range patterns {
		if p == "*" || p == code {
			return true
		}
	}
	return false
}
