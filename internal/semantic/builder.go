package semantic

import (
	"sort"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
	"github.com/DonIsaac/zlint-sub002/internal/zigsyntax"
)

// Build walks tree once, depth-first, producing a fully resolved Model.
// Declarations in container scopes (the file root and struct/enum/union
// bodies) may be referenced before their textual position; declarations in
// function and block scopes may not. A reference that cannot be resolved
// against its own scope chain is retried when its nearest enclosing
// container finishes declaring, then bubbles to the next container out,
// finally landing in Model.UnresolvedReferences if the root scope closes
// without finding it.
func Build(tree *zigsyntax.Tree) *Model {
	b := &builder{tree: tree}
	b.model = &Model{
		Tree:          tree,
		scopeChildren: map[ScopeId][]ScopeId{},
		scopeSymbols:  map[ScopeId][]SymbolId{},
		symbolRefs:    map[SymbolId][]ReferenceId{},
		nodeParents:   map[zigsyntax.NodeId]zigsyntax.NodeId{},
		Imports:       tree.Imports,
	}
	b.model.symbols = append(b.model.symbols, Symbol{})
	b.model.scopes = append(b.model.scopes, Scope{})
	b.model.references = append(b.model.references, Reference{})
	b.names = map[ScopeId]map[string]SymbolId{}
	b.pending = map[ScopeId][]ReferenceId{}

	b.pushScope(NoScope, ScopeTop, TokenTagNone)
	b.visit(tree.Root, zigsyntax.NoNode, 0, false)
	b.popScope()

	for sym, refs := range b.model.symbolRefs {
		sort.Slice(refs, func(i, j int) bool {
			return tree.Span(b.model.references[refs[i]].Node).Start < tree.Span(b.model.references[refs[j]].Node).Start
		})
		b.model.symbolRefs[sym] = refs
	}
	return b.model
}

// TokenTagNone is the zero value of zigsyntax.TokenTag (TokEOF), used on
// non-container scopes where Scope.ContainerKeyword does not apply.
const TokenTagNone = zigsyntax.TokenTag(0)

type builder struct {
	tree       *zigsyntax.Tree
	model      *Model
	scopeStack []ScopeId
	names      map[ScopeId]map[string]SymbolId
	pending    map[ScopeId][]ReferenceId
}

func (b *builder) currentScope() ScopeId { return b.scopeStack[len(b.scopeStack)-1] }

func (b *builder) setParent(child, parent zigsyntax.NodeId) {
	if child != zigsyntax.NoNode {
		b.model.nodeParents[child] = parent
	}
}

func (b *builder) pushScope(parent ScopeId, flags ScopeFlags, containerKw zigsyntax.TokenTag) ScopeId {
	id := ScopeId(len(b.model.scopes))
	b.model.scopes = append(b.model.scopes, Scope{
		ID: id, Parent: parent, Flags: flags, State: ScopeOpen, ContainerKeyword: containerKw,
	})
	if parent != NoScope {
		b.model.scopeChildren[parent] = append(b.model.scopeChildren[parent], id)
	}
	b.names[id] = map[string]SymbolId{}
	b.scopeStack = append(b.scopeStack, id)
	return id
}

// popScope closes the current scope. If it is a container, its pending
// references get one more resolution attempt against the container scopes
// of their chain now that every member name is visible, then bubble to the
// next enclosing container (or UnresolvedReferences, if this was the root).
func (b *builder) popScope() {
	id := b.currentScope()
	b.scopeStack = b.scopeStack[:len(b.scopeStack)-1]
	b.model.scopes[id].State = ScopeClosing

	if b.model.scopes[id].Flags.IsContainer() {
		pending := b.pending[id]
		delete(b.pending, id)
		var stillUnresolved []ReferenceId
		for _, refId := range pending {
			ref := b.model.references[refId]
			name := b.tree.TokenText(ref.IdentifierToken)
			sym, ok := NoSymbol, false
			for cur := ref.Scope; cur != NoScope && !ok; cur = b.model.scopes[cur].Parent {
				if b.model.scopes[cur].Flags.IsContainer() {
					sym, ok = b.names[cur][name]
				}
			}
			if ok {
				b.model.references[refId].Symbol = sym
				b.model.symbolRefs[sym] = append(b.model.symbolRefs[sym], refId)
			} else {
				stillUnresolved = append(stillUnresolved, refId)
			}
		}
		if len(stillUnresolved) > 0 {
			if len(b.scopeStack) == 0 {
				b.model.UnresolvedReferences = append(b.model.UnresolvedReferences, stillUnresolved...)
			} else {
				nc := b.nearestContainer()
				b.pending[nc] = append(b.pending[nc], stillUnresolved...)
			}
		}
	}
	b.model.scopes[id].State = ScopeClosed
}

// nearestContainer returns the innermost open scope (including the
// current top of stack) that is a container, walking outward. The root
// scope is always a container, so this never fails while any scope is open.
func (b *builder) nearestContainer() ScopeId {
	for i := len(b.scopeStack) - 1; i >= 0; i-- {
		if b.model.scopes[b.scopeStack[i]].Flags.IsContainer() {
			return b.scopeStack[i]
		}
	}
	return NoScope
}

func (b *builder) resolveInChain(scope ScopeId, name string) (SymbolId, bool) {
	for cur := scope; cur != NoScope; cur = b.model.scopes[cur].Parent {
		if m, ok := b.names[cur]; ok {
			if id, ok2 := m[name]; ok2 {
				return id, true
			}
		}
	}
	return NoSymbol, false
}

// declare registers a new symbol in scope. The blank identifier "_" and an
// empty name never bind. A second declaration sharing (scope, name) still
// gets its own Symbol entry (so every declaration site is recorded) but
// shadows the first in the name map and is flagged as a conflict.
func (b *builder) declare(name string, scope ScopeId, declNode zigsyntax.NodeId, tok zigsyntax.TokenId, flags SymbolFlags) SymbolId {
	if name == "" || name == "_" {
		return NoSymbol
	}
	id := SymbolId(len(b.model.symbols))
	b.model.symbols = append(b.model.symbols, Symbol{Name: name, DeclNode: declNode, Scope: scope, Token: tok, Flags: flags})
	if _, dup := b.names[scope][name]; dup {
		span := b.tree.TokenSpan(tok)
		d := diagnostic.New(diagnostic.SeverityErr, "duplicate-declaration",
			"\""+name+"\" is already declared in this scope", span)
		b.model.Diagnostics = append(b.model.Diagnostics, d)
	}
	b.names[scope][name] = id
	b.model.scopeSymbols[scope] = append(b.model.scopeSymbols[scope], id)
	return id
}

// reference records a use of an identifier token, resolving it immediately
// against the scope chain visible right now. An unresolved reference is
// queued on its nearest enclosing container for a retry once that
// container finishes declaring (forward references, §4.1 point 3).
func (b *builder) reference(tok zigsyntax.TokenId, node zigsyntax.NodeId, flags ReferenceFlags) ReferenceId {
	scope := b.currentScope()
	name := b.tree.TokenText(tok)
	id := ReferenceId(len(b.model.references))
	b.model.references = append(b.model.references, Reference{
		Symbol: NoSymbol, Node: node, Scope: scope, IdentifierToken: tok, Flags: flags,
	})
	if sym, ok := b.resolveInChain(scope, name); ok {
		b.model.references[id].Symbol = sym
		b.model.symbolRefs[sym] = append(b.model.symbolRefs[sym], id)
	} else {
		nc := b.nearestContainer()
		b.pending[nc] = append(b.pending[nc], id)
	}
	return id
}

// visit is the single recursive dispatcher driving declaration, scope, and
// reference recording for every node tag. flags/isType carry the reference
// context (write/read/call/type-position) down through wrapper nodes
// (field access, grouping, unary, try) to the identifier leaves that
// actually record a Reference.
func (b *builder) visit(id zigsyntax.NodeId, parent zigsyntax.NodeId, flags ReferenceFlags, isType bool) {
	if id == zigsyntax.NoNode {
		return
	}
	b.setParent(id, parent)
	n := b.tree.Node(id)

	switch n.Tag {
	case zigsyntax.NTRoot:
		for _, c := range n.Children {
			b.visit(c, id, 0, false)
		}

	case zigsyntax.NTVarDecl:
		b.visit(n.Type, id, RefType, true)
		b.visit(n.Then, id, RefRead, false)
		symFlags := SymVariable
		if n.Flags&zigsyntax.FlagConst != 0 {
			symFlags = SymConst
		}
		if n.Flags&zigsyntax.FlagExport != 0 {
			symFlags |= SymExport
		}
		if n.Flags&zigsyntax.FlagExtern != 0 {
			symFlags |= SymExtern
		}
		if n.Flags&zigsyntax.FlagComptime != 0 {
			symFlags |= SymComptime
		}
		b.declare(b.tree.TokenText(n.NameTok), b.currentScope(), id, n.NameTok, symFlags)

	case zigsyntax.NTFnDecl:
		symFlags := SymFn
		if n.Flags&zigsyntax.FlagExport != 0 {
			symFlags |= SymExport
		}
		if n.Flags&zigsyntax.FlagExtern != 0 {
			symFlags |= SymExtern
		}
		b.declare(b.tree.TokenText(n.NameTok), b.currentScope(), id, n.NameTok, symFlags)
		b.pushScope(b.currentScope(), ScopeFunction, TokenTagNone)
		for _, p := range n.Children {
			b.visit(p, id, 0, false)
		}
		b.visit(n.Type, id, RefType, true)
		b.visitBodyInline(n.Then, id)
		b.popScope()

	case zigsyntax.NTParamDecl:
		b.visit(n.Type, id, RefType, true)
		name := b.tree.TokenText(n.NameTok)
		b.declare(name, b.currentScope(), id, n.NameTok, SymFnParam)

	case zigsyntax.NTBlock:
		b.pushScope(b.currentScope(), ScopeBlock, TokenTagNone)
		for _, c := range n.Children {
			b.visit(c, id, 0, false)
		}
		b.popScope()

	case zigsyntax.NTContainerDecl:
		kw := b.tree.Token(n.Main).Tag
		scopeFlags, memberFlag := containerScopeFlags(kw)
		b.pushScope(b.currentScope(), scopeFlags, kw)
		for _, m := range n.Children {
			b.visitContainerMember(m, id, memberFlag)
		}
		b.popScope()

	case zigsyntax.NTContainerField:
		b.visit(n.Type, id, RefType, true)
		b.visit(n.Then, id, RefRead, false)
		b.declare(b.tree.TokenText(n.NameTok), b.currentScope(), id, n.NameTok, SymMember)

	case zigsyntax.NTIf:
		b.visit(n.Cond, id, RefRead, false)
		b.visitWithPayload(n.PayloadTok, n.Then, id, SymPayload, ScopeBlock)
		b.visit(n.Else, id, 0, false)

	case zigsyntax.NTWhile:
		b.visit(n.Cond, id, RefRead, false)
		b.visitWithPayload(n.PayloadTok, n.Then, id, SymPayload, ScopeBlock)
		b.visit(n.Else, id, 0, false)

	case zigsyntax.NTFor:
		b.visit(n.Cond, id, RefRead, false)
		b.visitWithPayload(n.PayloadTok, n.Then, id, SymPayload, ScopeBlock)

	case zigsyntax.NTSwitch:
		b.visit(n.Cond, id, RefRead, false)
		for _, c := range n.Children {
			b.visit(c, id, 0, false)
		}

	case zigsyntax.NTSwitchCase:
		for _, m := range n.Children {
			b.visit(m, id, RefRead, false)
		}
		b.visitWithPayload(n.PayloadTok, n.Then, id, SymPayload, ScopeBlock)

	case zigsyntax.NTCatch:
		b.visit(n.Then, id, RefRead, false)
		b.visitWithPayload(n.PayloadTok, n.Else, id, SymCatchParam, ScopeCatch)

	case zigsyntax.NTOrElse:
		b.visit(n.Then, id, RefRead, false)
		b.visit(n.Else, id, RefRead, false)

	case zigsyntax.NTErrDefer:
		b.visitWithPayload(n.PayloadTok, n.Then, id, SymCatchParam, ScopeCatch)

	case zigsyntax.NTDefer:
		b.visit(n.Then, id, 0, false)

	case zigsyntax.NTReturn:
		b.visit(n.Then, id, RefRead, false)

	case zigsyntax.NTTry:
		b.visit(n.Then, id, RefRead, false)

	case zigsyntax.NTComptime:
		b.pushScope(b.currentScope(), ScopeComptime, TokenTagNone)
		b.visitBodyInline(n.Then, id)
		b.popScope()

	case zigsyntax.NTTest:
		b.pushScope(b.currentScope(), ScopeFunction, TokenTagNone)
		b.visitBodyInline(n.Then, id)
		b.popScope()

	case zigsyntax.NTIdentifier:
		refFlags := flags
		if refFlags&(RefRead|RefWrite) == 0 {
			refFlags |= RefRead
		}
		if isType {
			refFlags |= RefType
		}
		b.reference(n.Main, id, refFlags)

	case zigsyntax.NTFieldAccess:
		b.visit(n.Then, id, flags, isType)

	case zigsyntax.NTCall:
		b.visit(n.Then, id, RefRead|RefCall, false)
		for _, a := range n.Children {
			b.visit(a, id, RefRead, false)
		}

	case zigsyntax.NTBuiltinCall:
		for _, a := range n.Children {
			b.visit(a, id, RefRead, false)
		}

	case zigsyntax.NTAssign:
		lhsFlags := RefWrite
		if b.tree.Token(n.Main).Tag != zigsyntax.TokEqual {
			lhsFlags |= RefRead
		}
		b.visit(n.Then, id, lhsFlags, false)
		b.visit(n.Else, id, RefRead, false)

	case zigsyntax.NTBinaryExpr:
		b.visit(n.Then, id, RefRead, isType)
		b.visit(n.Else, id, RefRead, isType)

	case zigsyntax.NTUnaryExpr:
		b.visit(n.Then, id, flags, isType)

	case zigsyntax.NTGrouped:
		b.visit(n.Then, id, flags, isType)

	case zigsyntax.NTNumberLiteral, zigsyntax.NTStringLiteral, zigsyntax.NTCharLiteral,
		zigsyntax.NTBoolLiteral, zigsyntax.NTNullLiteral, zigsyntax.NTUndefinedLiteral:
		// leaves; nothing to declare or reference
	}
}

// visitBodyInline walks a function/test/comptime body's statements in the
// caller's already-pushed scope, instead of letting NTBlock push a second,
// redundant block scope around the very scope the parameters were
// declared into.
func (b *builder) visitBodyInline(body zigsyntax.NodeId, owner zigsyntax.NodeId) {
	if body == zigsyntax.NoNode {
		return
	}
	b.setParent(body, owner)
	n := b.tree.Node(body)
	if n.Tag != zigsyntax.NTBlock {
		b.visit(body, owner, 0, false)
		return
	}
	for _, stmt := range n.Children {
		b.visit(stmt, body, 0, false)
	}
}

func (b *builder) visitContainerMember(id, parent zigsyntax.NodeId, memberFlag SymbolFlags) {
	n := b.tree.Node(id)
	if n.Tag == zigsyntax.NTContainerField {
		b.setParent(id, parent)
		b.visit(n.Type, id, RefType, true)
		b.visit(n.Then, id, RefRead, false)
		b.declare(b.tree.TokenText(n.NameTok), b.currentScope(), id, n.NameTok, memberFlag)
		return
	}
	b.visit(id, parent, 0, false)
}

func (b *builder) visitWithPayload(payloadTok zigsyntax.TokenId, body zigsyntax.NodeId, parent zigsyntax.NodeId, symFlag SymbolFlags, scopeFlag ScopeFlags) {
	if payloadTok == zigsyntax.NoToken {
		b.visit(body, parent, 0, false)
		return
	}
	b.pushScope(b.currentScope(), scopeFlag, TokenTagNone)
	b.declare(b.tree.TokenText(payloadTok), b.currentScope(), parent, payloadTok, symFlag)
	b.visit(body, parent, 0, false)
	b.popScope()
}

// containerScopeFlags maps a struct/enum/union/error keyword to the scope
// flag it opens and the flag its members are declared with. Error-set
// members are flagged SymError rather than SymMember since they name error
// codes, not fields.
func containerScopeFlags(kw zigsyntax.TokenTag) (ScopeFlags, SymbolFlags) {
	switch kw {
	case zigsyntax.TokKwEnum:
		return ScopeEnum, SymMember
	case zigsyntax.TokKwUnion:
		return ScopeUnion, SymMember
	case zigsyntax.TokKwError:
		return ScopeStruct, SymError
	default:
		return ScopeStruct, SymMember
	}
}
