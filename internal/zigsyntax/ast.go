package zigsyntax

import "github.com/DonIsaac/zlint-sub002/internal/source"

// NodeId is a dense index into a Tree's node array. The zero value,
// NodeId(0), is the reserved null/root-absent sentinel; the tree's real
// root is appended last, after all of its descendants (see Tree.Root).
type NodeId uint32

// NoNode is the null node id.
const NoNode NodeId = 0

// NodeTag classifies a Node. Interpretation of a Node's fields depends on
// its tag; each tag's convention is documented on the constant.
type NodeTag int

const (
	// NTRoot's Children are the file's top-level declarations.
	NTRoot NodeTag = iota
	// NTVarDecl: Main = const/var keyword token, NameTok = declared name,
	// Type = optional type expr (NoNode if elided), Then = initializer
	// expr. Flags (pub/export/extern/comptime/const) are set inline on
	// the Node itself (see Node.Flags below).
	NTVarDecl
	// NTParamDecl: NameTok = parameter name ("_" allowed), Type = type expr.
	NTParamDecl
	// NTFnDecl: Main = fn keyword, NameTok = name, Children = NTParamDecl
	// nodes, Type = return type expr, Then = body Block (NoNode for an
	// extern/forward declaration).
	NTFnDecl
	// NTBlock: Children = statement nodes, in source order.
	NTBlock
	// NTContainerDecl: Main = struct/enum/union/error keyword, Children =
	// member nodes (NTContainerField and/or nested decls).
	NTContainerDecl
	// NTContainerField: NameTok = field name, Type = type expr (optional
	// for error sets and plain enums), Then = default value expr.
	NTContainerField
	// NTIf: Cond = condition, PayloadTok = optional capture identifier,
	// Then = then-branch, Else = optional else-branch.
	NTIf
	// NTWhile: Cond = condition, PayloadTok = optional capture, Then = body.
	NTWhile
	// NTFor: Cond = iterable expr, PayloadTok = capture, Then = body.
	NTFor
	// NTSwitch: Cond = subject expr, Children = NTSwitchCase nodes.
	NTSwitch
	// NTSwitchCase: Children = match expressions (empty = else arm),
	// PayloadTok = optional capture, Then = case body expr.
	NTSwitchCase
	// NTCatch: Then = left-hand (fallible) expr, PayloadTok = optional
	// error capture, Else = handler expr.
	NTCatch
	// NTOrElse: Then = left expr, Else = fallback expr.
	NTOrElse
	// NTErrDefer: PayloadTok optional capture, Then = deferred expr/block.
	NTErrDefer
	// NTDefer: Then = deferred expr/block.
	NTDefer
	// NTReturn: Then = optional returned expr (NoNode for bare return).
	NTReturn
	// NTTry: Then = wrapped expr.
	NTTry
	// NTComptime: Then = wrapped block or expr.
	NTComptime
	// NTTest: NameTok optional name token, Then = body block.
	NTTest
	// NTIdentifier: Main = identifier token.
	NTIdentifier
	// NTFieldAccess: Then = base expr, NameTok = field name token.
	NTFieldAccess
	// NTCall: Then = callee expr, Children = argument expressions.
	NTCall
	// NTBuiltinCall: Main = builtin token (@name), Children = arguments.
	NTBuiltinCall
	// NTAssign: Main = assignment operator token, Then = lhs, Else = rhs.
	NTAssign
	// NTBinaryExpr: Main = operator token, Then = lhs, Else = rhs.
	NTBinaryExpr
	// NTUnaryExpr: Main = operator token, Then = operand.
	NTUnaryExpr
	// NTGrouped: Then = inner expr.
	NTGrouped
	// NTNumberLiteral, NTStringLiteral, NTCharLiteral, NTBoolLiteral,
	// NTNullLiteral, NTUndefinedLiteral: Main = literal token.
	NTNumberLiteral
	NTStringLiteral
	NTCharLiteral
	NTBoolLiteral
	NTNullLiteral
	NTUndefinedLiteral
)

// DeclFlags packs the modifier keywords a declaration may carry.
type DeclFlags uint8

const (
	FlagPub DeclFlags = 1 << iota
	FlagExport
	FlagExtern
	FlagComptime
	FlagConst // set on NTVarDecl when declared with "const", clear for "var"
)

// Node is one entry in a Tree's dense node array. See NodeTag constants
// for how each tag uses these fields; unused fields hold their zero value
// (NoNode / NoToken).
type Node struct {
	Tag        NodeTag
	Main       TokenId
	NameTok    TokenId
	PayloadTok TokenId
	Type       NodeId
	Cond       NodeId
	Then       NodeId
	Else       NodeId
	Children   []NodeId
	Flags      DeclFlags
}

// ImportKind classifies a ModuleRecord entry.
type ImportKind int

const (
	ImportFile ImportKind = iota
	ImportModule
)

// ModuleRecord is one @import("...") call site.
type ModuleRecord struct {
	Specifier string
	Kind      ImportKind
	Node      NodeId
}

// ParseError is a recoverable syntax problem found while parsing. Parse
// errors are surfaced as diagnostics by the linter engine but do not
// prevent the semantic builder from running on the partial tree.
type ParseError struct {
	Message string
	Span    source.Span
}

// Tree is the parsed AST plus the token stream and comments it was built
// from. It is immutable once Parse returns and is lent, read-only, to the
// semantic builder and every rule.
type Tree struct {
	Source   *source.Source
	Tokens   []Token
	Comments []Comment
	Nodes    []Node // index 0 is an unused placeholder so NoNode (0) is invalid
	Root     NodeId
	Imports  []ModuleRecord
	Errors   []ParseError
}

// Node returns the node at id, or the zero Node if id is NoNode.
func (t *Tree) Node(id NodeId) Node {
	if id == NoNode || int(id) >= len(t.Nodes) {
		return Node{}
	}
	return t.Nodes[id]
}

// Token returns the token at id.
func (t *Tree) Token(id TokenId) Token {
	if id == NoToken || int(id) >= len(t.Tokens) {
		return Token{}
	}
	return t.Tokens[id]
}

// TokenSpan is a convenience wrapper returning a token's span directly.
func (t *Tree) TokenSpan(id TokenId) source.Span { return t.Token(id).Span }

// TokenText returns the token's source text.
func (t *Tree) TokenText(id TokenId) string {
	return t.Source.Snippet(t.TokenSpan(id))
}

// Span computes a node's covering span. For nodes with no natural extent
// beyond their main token (identifiers, literals), it returns the main
// token's span.
func (t *Tree) Span(id NodeId) source.Span {
	n := t.Node(id)
	switch n.Tag {
	case NTIdentifier, NTNumberLiteral, NTStringLiteral, NTCharLiteral,
		NTBoolLiteral, NTNullLiteral, NTUndefinedLiteral:
		return t.TokenSpan(n.Main)
	}
	start := t.TokenSpan(n.Main)
	end := start
	consider := func(id NodeId) {
		if id == NoNode {
			return
		}
		s := t.Span(id)
		if s.Start < start.Start || start.IsEmpty() {
			start = source.Span{Start: min32(start.Start, s.Start), End: start.End}
		}
		if s.End > end.End {
			end = source.Span{Start: end.Start, End: s.End}
		}
	}
	consider(n.Type)
	consider(n.Cond)
	consider(n.Then)
	consider(n.Else)
	for _, c := range n.Children {
		consider(c)
	}
	if start.Start > end.End {
		return start
	}
	return source.Span{Start: start.Start, End: end.End}
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Walk performs a pre-order traversal of the tree starting at root,
// invoking visit for every reachable node including root itself.
func (t *Tree) Walk(root NodeId, visit func(NodeId, Node)) {
	if root == NoNode {
		return
	}
	n := t.Node(root)
	visit(root, n)
	t.Walk(n.Type, visit)
	t.Walk(n.Cond, visit)
	t.Walk(n.Then, visit)
	t.Walk(n.Else, visit)
	for _, c := range n.Children {
		t.Walk(c, visit)
	}
}
