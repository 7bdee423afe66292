// Package semantic builds the symbol table, lexical scope tree, and
// reference graph on top of a parsed zigsyntax.Tree. It is the analyzer
// every rule queries through LintContext.
package semantic

// SymbolId, ScopeId, and ReferenceId are dense indices into a Model's
// parallel arrays, not pointers. Index 0 is reserved as the null
// sentinel in each array; real entries start at index 1.
type SymbolId uint32
type ScopeId uint32
type ReferenceId uint32

const (
	NoSymbol    SymbolId    = 0
	NoScope     ScopeId     = 0
	NoReference ReferenceId = 0
)

// SymbolFlags is a packed bitset describing what kind of declaration a
// Symbol represents.
type SymbolFlags uint16

const (
	SymConst SymbolFlags = 1 << iota
	SymVariable
	SymMember
	SymFn
	SymFnParam
	SymPayload
	SymCatchParam
	SymComptime
	SymExport
	SymExtern
	SymStruct
	SymEnum
	SymUnion
	SymError
)

func (f SymbolFlags) Has(flag SymbolFlags) bool { return f&flag != 0 }

// ScopeFlags is a packed bitset describing what kind of lexical
// container a Scope represents.
type ScopeFlags uint16

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeBlock
	ScopeStruct
	ScopeEnum
	ScopeUnion
	ScopeComptime
	ScopeCatch
)

// IsContainer reports whether a scope participates in forward-reference
// resolution (§4.1 point 3): the file root and struct/enum/union bodies.
func (f ScopeFlags) IsContainer() bool {
	return f&(ScopeTop|ScopeStruct|ScopeUnion|ScopeEnum) != 0
}

// ReferenceFlags is a packed bitset describing how an identifier is used
// at a reference site.
type ReferenceFlags uint8

const (
	RefRead ReferenceFlags = 1 << iota
	RefWrite
	RefCall
	RefType
)

func (f ReferenceFlags) Has(flag ReferenceFlags) bool { return f&flag != 0 }

// ScopeState is the per-scope lifecycle state machine from §4.1:
// Open -> Declaring -> Closing -> Closed. References may be recorded in
// any state up to Closing; a Closed scope is immutable.
type ScopeState int

const (
	ScopeOpen ScopeState = iota
	ScopeDeclaring
	ScopeClosing
	ScopeClosed
)
