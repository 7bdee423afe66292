package zigsyntax

import (
	"strings"

	"github.com/DonIsaac/zlint-sub002/internal/source"
)

// Parse lexes and parses src, producing a Tree. Parse never returns a nil
// Tree: on malformed input it records ParseErrors and returns as much of
// the tree as could be recovered, so rules can still run on the partial
// AST per the builder's documented error handling.
func Parse(src *source.Source) *Tree {
	tokens, comments := Lex(src)
	tree := &Tree{Source: src, Tokens: tokens, Comments: comments}
	tree.Nodes = append(tree.Nodes, Node{}) // index 0: reserved null node
	p := &parser{tree: tree}

	var top []NodeId
	for !p.check(TokEOF) {
		before := p.pos
		if id := p.parseTopLevelDecl(); id != NoNode {
			top = append(top, id)
		}
		if p.pos == before {
			p.advance() // guarantee forward progress on unrecognized input
		}
	}
	tree.Root = p.addNode(Node{Tag: NTRoot, Children: top})
	return tree
}

type parser struct {
	tree *Tree
	pos  int
}

func (p *parser) addNode(n Node) NodeId {
	p.tree.Nodes = append(p.tree.Nodes, n)
	return NodeId(len(p.tree.Nodes) - 1)
}

func (p *parser) cur() Token {
	if p.pos >= len(p.tree.Tokens) {
		return p.tree.Tokens[len(p.tree.Tokens)-1]
	}
	return p.tree.Tokens[p.pos]
}

func (p *parser) curId() TokenId { return TokenId(p.pos) }

func (p *parser) check(tag TokenTag) bool { return p.cur().Tag == tag }

func (p *parser) advance() TokenId {
	id := p.curId()
	if p.pos < len(p.tree.Tokens)-1 {
		p.pos++
	}
	return id
}

func (p *parser) accept(tag TokenTag) (TokenId, bool) {
	if p.check(tag) {
		return p.advance(), true
	}
	return NoToken, false
}

func (p *parser) expect(tag TokenTag, what string) TokenId {
	if id, ok := p.accept(tag); ok {
		return id
	}
	p.tree.Errors = append(p.tree.Errors, ParseError{Message: "expected " + what, Span: p.cur().Span})
	return NoToken
}

// parseTopLevelDecl parses one declaration at file scope or inside a
// container body: an optional modifier run (pub/export/extern/comptime)
// followed by const/var, fn, test, or a bare comptime block.
func (p *parser) parseTopLevelDecl() NodeId {
	var flags DeclFlags
	for {
		switch p.cur().Tag {
		case TokKwPub:
			p.advance()
			flags |= FlagPub
		case TokKwExport:
			p.advance()
			flags |= FlagExport
		case TokKwExtern:
			p.advance()
			flags |= FlagExtern
		case TokKwComptime:
			if p.peekIsDeclStart() {
				p.advance()
				flags |= FlagComptime
				continue
			}
			// Bare "comptime { ... }" block, not a modifier.
			comptimeTok := p.advance()
			body := p.parseBlockOrExpr()
			return p.addNode(Node{Tag: NTComptime, Main: comptimeTok, Then: body})
		default:
			goto decl
		}
	}
decl:
	switch p.cur().Tag {
	case TokKwConst, TokKwVar:
		return p.parseVarDecl(flags)
	case TokKwFn:
		return p.parseFnDecl(flags)
	case TokKwTest:
		return p.parseTestDecl()
	default:
		return NoNode
	}
}

// peekIsDeclStart reports whether the token after the current one begins
// a const/var/fn declaration, distinguishing "comptime" the modifier from
// "comptime { ... }" the block expression.
func (p *parser) peekIsDeclStart() bool {
	if p.pos+1 >= len(p.tree.Tokens) {
		return false
	}
	switch p.tree.Tokens[p.pos+1].Tag {
	case TokKwConst, TokKwVar, TokKwFn:
		return true
	default:
		return false
	}
}

func (p *parser) parseVarDecl(flags DeclFlags) NodeId {
	kw := p.advance() // const | var
	if p.tree.Tokens[kw].Tag == TokKwConst {
		flags |= FlagConst
	}
	nameTok := p.expect(TokIdentifier, "declaration name")
	typ := NoNode
	if _, ok := p.accept(TokColon); ok {
		typ = p.parseExpr()
	}
	p.expect(TokEqual, "'='")
	val := p.parseExpr()
	p.expect(TokSemicolon, "';'")
	return p.addNode(Node{Tag: NTVarDecl, Main: kw, NameTok: nameTok, Type: typ, Then: val, Flags: flags})
}

func (p *parser) parseFnDecl(flags DeclFlags) NodeId {
	fnTok := p.advance()
	nameTok := p.expect(TokIdentifier, "function name")
	p.expect(TokLParen, "'('")
	var params []NodeId
	for !p.check(TokRParen) && !p.check(TokEOF) {
		pname := p.expect(TokIdentifier, "parameter name")
		p.expect(TokColon, "':'")
		ptype := p.parseExpr()
		params = append(params, p.addNode(Node{Tag: NTParamDecl, NameTok: pname, Type: ptype}))
		if _, ok := p.accept(TokComma); !ok {
			break
		}
	}
	p.expect(TokRParen, "')'")
	retType := p.parseUnary()
	body := NoNode
	if p.check(TokLBrace) {
		body = p.parseBlock()
	} else {
		p.expect(TokSemicolon, "';'")
	}
	return p.addNode(Node{Tag: NTFnDecl, Main: fnTok, NameTok: nameTok, Children: params, Type: retType, Then: body, Flags: flags})
}

func (p *parser) parseTestDecl() NodeId {
	testTok := p.advance()
	nameTok := NoToken
	if p.check(TokString) {
		nameTok = p.advance()
	}
	body := p.parseBlock()
	return p.addNode(Node{Tag: NTTest, Main: testTok, NameTok: nameTok, Then: body})
}

// parseContainerDecl parses a struct/enum/union/error literal, used both
// as a top-level const's value and nested inside other containers.
func (p *parser) parseContainerDecl() NodeId {
	kw := p.advance() // struct | enum | union | error
	p.expect(TokLBrace, "'{'")
	var members []NodeId
	for !p.check(TokRBrace) && !p.check(TokEOF) {
		before := p.pos
		switch p.cur().Tag {
		case TokKwPub, TokKwExport, TokKwExtern, TokKwComptime, TokKwConst, TokKwVar, TokKwFn, TokKwTest:
			members = append(members, p.parseTopLevelDecl())
		case TokIdentifier:
			members = append(members, p.parseContainerField())
		case TokComma:
			p.advance()
		default:
			p.tree.Errors = append(p.tree.Errors, ParseError{Message: "unexpected token in container body", Span: p.cur().Span})
			p.advance()
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(TokRBrace, "'}'")
	return p.addNode(Node{Tag: NTContainerDecl, Main: kw, Children: members})
}

func (p *parser) parseContainerField() NodeId {
	nameTok := p.advance()
	typ := NoNode
	if _, ok := p.accept(TokColon); ok {
		typ = p.parseExpr()
	}
	val := NoNode
	if _, ok := p.accept(TokEqual); ok {
		val = p.parseExpr()
	}
	p.accept(TokComma)
	return p.addNode(Node{Tag: NTContainerField, NameTok: nameTok, Type: typ, Then: val})
}

func (p *parser) parseBlock() NodeId {
	lbrace := p.expect(TokLBrace, "'{'")
	var stmts []NodeId
	for !p.check(TokRBrace) && !p.check(TokEOF) {
		before := p.pos
		stmts = append(stmts, p.parseStatement())
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(TokRBrace, "'}'")
	return p.addNode(Node{Tag: NTBlock, Main: lbrace, Children: stmts})
}

// parseBlockOrExpr parses a block when one follows, otherwise a single
// expression. This loosely models Zig's single-statement branch bodies
// for if/while/for without requiring full statement-grammar fidelity.
func (p *parser) parseBlockOrExpr() NodeId {
	if p.check(TokLBrace) {
		return p.parseBlock()
	}
	return p.parseExpr()
}

func (p *parser) parseStatement() NodeId {
	switch p.cur().Tag {
	case TokKwConst, TokKwVar:
		return p.parseVarDecl(0)
	case TokKwComptime:
		if p.peekIsDeclStart() {
			return p.parseTopLevelDecl()
		}
		kw := p.advance()
		body := p.parseBlockOrExpr()
		return p.addNode(Node{Tag: NTComptime, Main: kw, Then: body})
	case TokKwReturn:
		kw := p.advance()
		val := NoNode
		if !p.check(TokSemicolon) {
			val = p.parseExpr()
		}
		p.expect(TokSemicolon, "';'")
		return p.addNode(Node{Tag: NTReturn, Main: kw, Then: val})
	case TokKwDefer:
		kw := p.advance()
		body := p.parseBlockOrExpr()
		if p.tree.Node(body).Tag != NTBlock {
			p.expect(TokSemicolon, "';'")
		}
		return p.addNode(Node{Tag: NTDefer, Main: kw, Then: body})
	case TokKwErrdefer:
		kw := p.advance()
		payload := NoToken
		if _, ok := p.accept(TokPipe); ok {
			payload = p.expect(TokIdentifier, "capture name")
			p.expect(TokPipe, "'|'")
		}
		body := p.parseBlockOrExpr()
		if p.tree.Node(body).Tag != NTBlock {
			p.expect(TokSemicolon, "';'")
		}
		return p.addNode(Node{Tag: NTErrDefer, Main: kw, PayloadTok: payload, Then: body})
	case TokLBrace:
		return p.parseBlock()
	default:
		expr := p.parseExprStatement()
		return expr
	}
}

func (p *parser) parseExprStatement() NodeId {
	lhs := p.parseExpr()
	switch p.cur().Tag {
	case TokEqual, TokPlusEqual, TokMinusEqual, TokStarEqual, TokSlashEqual:
		op := p.advance()
		rhs := p.parseExpr()
		p.expect(TokSemicolon, "';'")
		return p.addNode(Node{Tag: NTAssign, Main: op, Then: lhs, Else: rhs})
	default:
		switch p.tree.Node(lhs).Tag {
		case NTIf, NTWhile, NTFor, NTSwitch, NTBlock, NTComptime:
			p.accept(TokSemicolon)
		default:
			p.expect(TokSemicolon, "';'")
		}
		return lhs
	}
}

// parseExpr is the expression entry point: orelse/catch bind loosest.
func (p *parser) parseExpr() NodeId {
	left := p.parseBinary()
	for {
		switch p.cur().Tag {
		case TokKwOrelse:
			p.advance()
			right := p.parseBinary()
			left = p.addNode(Node{Tag: NTOrElse, Then: left, Else: right})
		case TokKwCatch:
			kw := p.advance()
			payload := NoToken
			if _, ok := p.accept(TokPipe); ok {
				payload = p.expect(TokIdentifier, "capture name")
				p.expect(TokPipe, "'|'")
			}
			right := p.parseBinary()
			left = p.addNode(Node{Tag: NTCatch, Main: kw, PayloadTok: payload, Then: left, Else: right})
		default:
			return left
		}
	}
}

func (p *parser) parseBinary() NodeId {
	left := p.parseUnary()
	for {
		switch p.cur().Tag {
		case TokEqualEqual, TokBangEqual, TokPlus, TokMinus, TokStar, TokSlash,
			TokPercent, TokAmp, TokPipe, TokCaret:
			op := p.advance()
			right := p.parseUnary()
			left = p.addNode(Node{Tag: NTBinaryExpr, Main: op, Then: left, Else: right})
		default:
			return left
		}
	}
}

func (p *parser) parseUnary() NodeId {
	switch p.cur().Tag {
	case TokBang, TokMinus:
		op := p.advance()
		operand := p.parseUnary()
		return p.addNode(Node{Tag: NTUnaryExpr, Main: op, Then: operand})
	case TokKwTry:
		kw := p.advance()
		operand := p.parseUnary()
		return p.addNode(Node{Tag: NTTry, Main: kw, Then: operand})
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() NodeId {
	base := p.parsePrimary()
	for {
		switch p.cur().Tag {
		case TokDot:
			p.advance()
			if _, ok := p.accept(TokStar); ok {
				continue // pointer dereference ".*": keeps base unchanged
			}
			name := p.expect(TokIdentifier, "field name")
			base = p.addNode(Node{Tag: NTFieldAccess, Then: base, NameTok: name})
		case TokLParen:
			p.advance()
			args := p.parseArgList()
			p.expect(TokRParen, "')'")
			base = p.addNode(Node{Tag: NTCall, Then: base, Children: args})
		default:
			return base
		}
	}
}

func (p *parser) parseArgList() []NodeId {
	var args []NodeId
	for !p.check(TokRParen) && !p.check(TokEOF) {
		args = append(args, p.parseExpr())
		if _, ok := p.accept(TokComma); !ok {
			break
		}
	}
	return args
}

func (p *parser) parsePrimary() NodeId {
	switch p.cur().Tag {
	case TokIdentifier:
		tok := p.advance()
		return p.addNode(Node{Tag: NTIdentifier, Main: tok})
	case TokBuiltin:
		tok := p.advance()
		p.expect(TokLParen, "'('")
		args := p.parseArgList()
		p.expect(TokRParen, "')'")
		node := p.addNode(Node{Tag: NTBuiltinCall, Main: tok, Children: args})
		p.recordImportIfBuiltin(tok, args, node)
		return node
	case TokNumber:
		tok := p.advance()
		return p.addNode(Node{Tag: NTNumberLiteral, Main: tok})
	case TokString:
		tok := p.advance()
		return p.addNode(Node{Tag: NTStringLiteral, Main: tok})
	case TokChar:
		tok := p.advance()
		return p.addNode(Node{Tag: NTCharLiteral, Main: tok})
	case TokKwTrue, TokKwFalse:
		tok := p.advance()
		return p.addNode(Node{Tag: NTBoolLiteral, Main: tok})
	case TokKwNull:
		tok := p.advance()
		return p.addNode(Node{Tag: NTNullLiteral, Main: tok})
	case TokKwUndefined:
		tok := p.advance()
		return p.addNode(Node{Tag: NTUndefinedLiteral, Main: tok})
	case TokLParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(TokRParen, "')'")
		return p.addNode(Node{Tag: NTGrouped, Then: inner})
	case TokKwIf:
		return p.parseIfExpr()
	case TokKwWhile:
		return p.parseWhileExpr()
	case TokKwFor:
		return p.parseForExpr()
	case TokKwSwitch:
		return p.parseSwitchExpr()
	case TokKwStruct, TokKwEnum, TokKwUnion, TokKwError:
		return p.parseContainerDecl()
	case TokKwComptime:
		kw := p.advance()
		inner := p.parseBlockOrExpr()
		return p.addNode(Node{Tag: NTComptime, Main: kw, Then: inner})
	default:
		tok := p.advance()
		p.tree.Errors = append(p.tree.Errors, ParseError{Message: "expected expression", Span: p.tree.Tokens[tok].Span})
		return p.addNode(Node{Tag: NTIdentifier, Main: tok})
	}
}

func (p *parser) parsePayload() TokenId {
	if _, ok := p.accept(TokPipe); !ok {
		return NoToken
	}
	name := p.expect(TokIdentifier, "capture name")
	p.expect(TokPipe, "'|'")
	return name
}

func (p *parser) parseIfExpr() NodeId {
	ifTok := p.advance()
	p.expect(TokLParen, "'('")
	cond := p.parseExpr()
	p.expect(TokRParen, "')'")
	payload := p.parsePayload()
	then := p.parseBlockOrExpr()
	elseNode := NoNode
	if _, ok := p.accept(TokKwElse); ok {
		p.parsePayload() // error-capture on the else branch; not separately tracked
		elseNode = p.parseBlockOrExpr()
	}
	return p.addNode(Node{Tag: NTIf, Main: ifTok, Cond: cond, PayloadTok: payload, Then: then, Else: elseNode})
}

func (p *parser) parseWhileExpr() NodeId {
	whileTok := p.advance()
	p.expect(TokLParen, "'('")
	cond := p.parseExpr()
	p.expect(TokRParen, "')'")
	payload := p.parsePayload()
	if _, ok := p.accept(TokColon); ok {
		p.expect(TokLParen, "'('")
		p.parseExpr() // continue expression, discarded
		p.expect(TokRParen, "')'")
	}
	body := p.parseBlockOrExpr()
	elseNode := NoNode
	if _, ok := p.accept(TokKwElse); ok {
		elseNode = p.parseBlockOrExpr()
	}
	return p.addNode(Node{Tag: NTWhile, Main: whileTok, Cond: cond, PayloadTok: payload, Then: body, Else: elseNode})
}

func (p *parser) parseForExpr() NodeId {
	forTok := p.advance()
	p.expect(TokLParen, "'('")
	iterable := p.parseExpr()
	p.expect(TokRParen, "')'")
	payload := p.parsePayload()
	body := p.parseBlockOrExpr()
	return p.addNode(Node{Tag: NTFor, Main: forTok, Cond: iterable, PayloadTok: payload, Then: body})
}

func (p *parser) parseSwitchExpr() NodeId {
	switchTok := p.advance()
	p.expect(TokLParen, "'('")
	subject := p.parseExpr()
	p.expect(TokRParen, "')'")
	p.expect(TokLBrace, "'{'")
	var cases []NodeId
	for !p.check(TokRBrace) && !p.check(TokEOF) {
		before := p.pos
		cases = append(cases, p.parseSwitchCase())
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(TokRBrace, "'}'")
	return p.addNode(Node{Tag: NTSwitch, Main: switchTok, Cond: subject, Children: cases})
}

func (p *parser) parseSwitchCase() NodeId {
	var matches []NodeId
	if _, ok := p.accept(TokKwElse); !ok {
		matches = append(matches, p.parseExpr())
		for {
			if _, ok := p.accept(TokComma); !ok {
				break
			}
			if p.check(TokArrow) {
				break
			}
			matches = append(matches, p.parseExpr())
		}
	}
	p.expect(TokArrow, "'=>'")
	payload := p.parsePayload()
	body := p.parseExpr()
	p.accept(TokComma)
	return p.addNode(Node{Tag: NTSwitchCase, PayloadTok: payload, Then: body, Children: matches})
}

// recordImportIfBuiltin appends a ModuleRecord when the builtin call is
// @import("specifier"). The specifier's kind is "file" when it ends in
// ".zig", otherwise "module" (e.g. a package name from build.zig.zon).
func (p *parser) recordImportIfBuiltin(builtin TokenId, args []NodeId, node NodeId) {
	if p.tree.TokenText(builtin) != "@import" || len(args) != 1 {
		return
	}
	arg := p.tree.Node(args[0])
	if arg.Tag != NTStringLiteral {
		return
	}
	raw := p.tree.TokenText(arg.Main)
	spec := strings.Trim(raw, `"`)
	kind := ImportModule
	if strings.HasSuffix(spec, ".zig") {
		kind = ImportFile
	}
	p.tree.Imports = append(p.tree.Imports, ModuleRecord{Specifier: spec, Kind: kind, Node: node})
}
