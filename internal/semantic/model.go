package semantic

import (
	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// Symbol is a named, declared entity: a variable, function, parameter,
// container member, or payload capture.
type Symbol struct {
	Name     string
	DeclNode zigsyntax.NodeId
	Scope    ScopeId
	Token    zigsyntax.TokenId
	Flags    SymbolFlags
}

// Reference is a use-site of an identifier. Symbol is NoSymbol until
// resolved; IdentifierToken names the used identifier.
type Reference struct {
	Symbol          SymbolId
	Node            zigsyntax.NodeId
	Scope           ScopeId
	IdentifierToken zigsyntax.TokenId
	Flags           ReferenceFlags
}

// Scope is a lexical container introduced by blocks, functions,
// containers, comptime, or the file root.
type Scope struct {
	ID     ScopeId
	Parent ScopeId
	Flags  ScopeFlags
	State  ScopeState
	// ContainerKeyword is the struct/enum/union/error keyword token for
	// container scopes (TokenTagNone for other scopes). The builder tells
	// an error set's members (SymError) from other members (SymMember) by
	// the keyword token while visiting the container, not by this field.
	ContainerKeyword zigsyntax.TokenTag
}

// Model is the immutable result of running Build over one file's
// Tree. It borrows the Tree (and transitively the Source) for its entire
// lifetime and is never mutated after construction.
type Model struct {
	Tree *zigsyntax.Tree

	symbols    []Symbol    // index 0 unused
	scopes     []Scope     // index 0 unused
	references []Reference // index 0 unused

	scopeChildren map[ScopeId][]ScopeId
	scopeSymbols  map[ScopeId][]SymbolId
	symbolRefs    map[SymbolId][]ReferenceId
	nodeParents   map[zigsyntax.NodeId]zigsyntax.NodeId

	Imports              []zigsyntax.ModuleRecord
	UnresolvedReferences []ReferenceId
	Diagnostics          []diagnostic.Diagnostic
}

// Symbol returns the symbol at id.
func (m *Model) Symbol(id SymbolId) Symbol {
	if id == NoSymbol || int(id) >= len(m.symbols) {
		return Symbol{}
	}
	return m.symbols[id]
}

// SymbolCount returns the number of declared symbols (excluding the null
// sentinel at index 0).
func (m *Model) SymbolCount() int { return len(m.symbols) - 1 }

// Symbols returns every symbol id in declaration order.
func (m *Model) Symbols() []SymbolId {
	ids := make([]SymbolId, 0, len(m.symbols)-1)
	for i := 1; i < len(m.symbols); i++ {
		ids = append(ids, SymbolId(i))
	}
	return ids
}

// Scope returns the scope at id.
func (m *Model) Scope(id ScopeId) Scope {
	if id == NoScope || int(id) >= len(m.scopes) {
		return Scope{}
	}
	return m.scopes[id]
}

// Reference returns the reference at id.
func (m *Model) Reference(id ReferenceId) Reference {
	if id == NoReference || int(id) >= len(m.references) {
		return Reference{}
	}
	return m.references[id]
}

// References returns every reference id in the order they were recorded.
func (m *Model) References() []ReferenceId {
	ids := make([]ReferenceId, 0, len(m.references)-1)
	for i := 1; i < len(m.references); i++ {
		ids = append(ids, ReferenceId(i))
	}
	return ids
}

// ChildScopes returns id's direct child scopes.
func (m *Model) ChildScopes(id ScopeId) []ScopeId { return m.scopeChildren[id] }

// SymbolsInScope returns the symbols declared directly in scope id, in
// declaration order.
func (m *Model) SymbolsInScope(id ScopeId) []SymbolId { return m.scopeSymbols[id] }

// ReferencesOf returns symbol id's references, ascending by source
// position, per the "references[symbol] is sorted" invariant.
func (m *Model) ReferencesOf(id SymbolId) []ReferenceId { return m.symbolRefs[id] }

// ParentNode returns node's parent, or zigsyntax.NoNode at the root.
func (m *Model) ParentNode(node zigsyntax.NodeId) zigsyntax.NodeId {
	return m.nodeParents[node]
}

// Ancestors iterates node's ancestors from its immediate parent to the
// root, calling visit for each. It stops early if visit returns false.
func (m *Model) Ancestors(node zigsyntax.NodeId, visit func(zigsyntax.NodeId) bool) {
	cur := m.ParentNode(node)
	for cur != zigsyntax.NoNode {
		if !visit(cur) {
			return
		}
		cur = m.ParentNode(cur)
	}
}

// IsAncestorScope reports whether ancestor is scope itself or a lexical
// ancestor of it, walking the Parent chain.
func (m *Model) IsAncestorScope(ancestor, scope ScopeId) bool {
	for cur := scope; cur != NoScope; cur = m.Scope(cur).Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}
