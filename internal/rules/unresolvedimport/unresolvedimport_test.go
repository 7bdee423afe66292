package unresolvedimport_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
	"github.com/DonIsaac/zlint-sub002/internal/rules/unresolvedimport"
	"github.com/DonIsaac/zlint-sub002/internal/semantic"
	"github.com/DonIsaac/zlint-sub002/internal/source"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

func run(text string) []diagnostic.Diagnostic {
	reg := rules.NewRegistry()
	reg.Register(unresolvedimport.Rule{})
	src := source.New("a.zig", []byte(text))
	tree := zigsyntax.Parse(src)
	model := semantic.Build(tree)
	return rules.Dispatch(reg, "a.zig", tree, model, src, func(string) diagnostic.Severity {
		return diagnostic.SeverityErr
	}, nil)
}

func TestFlagsFileImportWithoutZigExtension(t *testing.T) {
	diags := run(`const x = @import("build.zig.zon");` + "\n")
	require.Len(t, diags, 1)
	require.Equal(t, unresolvedimport.Code, diags[0].Code)
}

func TestAllowsModuleImport(t *testing.T) {
	diags := run(`const std = @import("std");` + "\n")
	require.Empty(t, diags)
}
