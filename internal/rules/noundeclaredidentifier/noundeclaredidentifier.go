// Package noundeclaredidentifier implements the no-undeclared-identifier
// rule: flags an identifier reference the semantic builder could not
// resolve to any symbol in scope.
package noundeclaredidentifier

import (
	"regexp"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/rules"
)

const Code = "no-undeclared-identifier"

// primitiveTypes are the fixed-name built-in types Zig programs reference
// without ever declaring: this rule must not treat them as undeclared.
var primitiveTypes = map[string]bool{
	"bool": true, "void": true, "noreturn": true, "type": true,
	"anyerror": true, "anyframe": true, "anytype": true, "anyopaque": true,
	"comptime_int": true, "comptime_float": true,
	"isize": true, "usize": true,
	"c_char": true, "c_short": true, "c_ushort": true, "c_int": true, "c_uint": true,
	"c_long": true, "c_ulong": true, "c_longlong": true, "c_ulonglong": true, "c_longdouble": true,
	"f16": true, "f32": true, "f64": true, "f80": true, "f128": true,
}

// builtinRoots are the implicit, never-declared namespace roots a Zig
// file may reference: the standard library, the root module, and the
// build-time `builtin` module. Like primitiveTypes, these never get a
// Symbol from the semantic builder and must not be flagged.
var builtinRoots = map[string]bool{
	"std": true, "builtin": true, "root": true,
}

// arbitraryWidthInt matches Zig's iN/uN arbitrary-width integer types
// (i7, u256, ...), which have no fixed enumeration.
var arbitraryWidthInt = regexp.MustCompile(`^[iu][0-9]+$`)

// isBuiltin reports whether name is a primitive type, arbitrary-width
// integer type, or implicit namespace root that the semantic builder
// never declares a Symbol for.
func isBuiltin(name string) bool {
	return primitiveTypes[name] || builtinRoots[name] || arbitraryWidthInt.MatchString(name)
}

type Rule struct{}

func (Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "no undeclared identifier",
		Description:      "identifier is referenced but never declared in any enclosing scope",
		Category:         "correctness",
		DefaultSeverity:  diagnostic.SeverityErr,
		EnabledByDefault: true,
	}
}

func (Rule) RunOnModel(ctx *rules.LintContext) {
	for _, refID := range ctx.Model.UnresolvedReferences {
		ref := ctx.Model.Reference(refID)
		name := ctx.Tree.TokenText(ref.IdentifierToken)
		// `_` is the discard target of `_ = expr;`, never a declaration.
		if name == "_" || isBuiltin(name) {
			continue
		}
		span := ctx.Tree.TokenSpan(ref.IdentifierToken)
		ctx.Report(diagnostic.New(ctx.Severity, Code, "use of undeclared identifier \""+name+"\"", span).
			WithHelp("check for a typo, or a missing import/declaration"))
	}
}

func init() { rules.Register(Rule{}) }
