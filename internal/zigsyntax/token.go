// Package zigsyntax implements the lexer and parser that stand in for the
// external Zig parser: it tokenizes Zig source and builds the dense,
// index-based AST the semantic analyzer walks. It intentionally covers
// the subset of Zig's grammar exercised by the rule catalog, not the
// full language.
package zigsyntax

import "github.com/DonIsaac/zlint-sub002/internal/source"

// TokenId is a dense index into a Tree's token array. There is no
// reserved null token id; every node's token fields default to the
// sentinel NoToken instead.
type TokenId uint32

// NoToken marks the absence of a token reference on a Node.
const NoToken TokenId = ^TokenId(0)

// TokenTag classifies a lexed token.
type TokenTag int

const (
	TokEOF TokenTag = iota
	TokInvalid

	TokIdentifier
	TokBuiltin // @name
	TokNumber
	TokString
	TokChar

	// Keywords
	TokKwConst
	TokKwVar
	TokKwFn
	TokKwPub
	TokKwExport
	TokKwExtern
	TokKwComptime
	TokKwStruct
	TokKwEnum
	TokKwUnion
	TokKwError
	TokKwIf
	TokKwElse
	TokKwWhile
	TokKwFor
	TokKwSwitch
	TokKwTry
	TokKwCatch
	TokKwErrdefer
	TokKwDefer
	TokKwReturn
	TokKwUndefined
	TokKwNull
	TokKwTrue
	TokKwFalse
	TokKwOrelse
	TokKwTest

	// Punctuation / operators
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokLBracket
	TokRBracket
	TokSemicolon
	TokComma
	TokColon
	TokDot
	TokQuestion
	TokPipe
	TokEqual
	TokEqualEqual
	TokBangEqual
	TokBang
	TokPlus
	TokPlusEqual
	TokMinus
	TokMinusEqual
	TokStar
	TokStarEqual
	TokSlash
	TokSlashEqual
	TokPercent
	TokAmp
	TokCaret
	TokArrow // =>
	TokEllipsis2
	TokEllipsis3
	TokDotStar // .*
)

var keywords = map[string]TokenTag{
	"const":     TokKwConst,
	"var":       TokKwVar,
	"fn":        TokKwFn,
	"pub":       TokKwPub,
	"export":    TokKwExport,
	"extern":    TokKwExtern,
	"comptime":  TokKwComptime,
	"struct":    TokKwStruct,
	"enum":      TokKwEnum,
	"union":     TokKwUnion,
	"error":     TokKwError,
	"if":        TokKwIf,
	"else":      TokKwElse,
	"while":     TokKwWhile,
	"for":       TokKwFor,
	"switch":    TokKwSwitch,
	"try":       TokKwTry,
	"catch":     TokKwCatch,
	"errdefer":  TokKwErrdefer,
	"defer":     TokKwDefer,
	"return":    TokKwReturn,
	"undefined": TokKwUndefined,
	"null":      TokKwNull,
	"true":      TokKwTrue,
	"false":     TokKwFalse,
	"orelse":    TokKwOrelse,
	"test":      TokKwTest,
}

// Token is one lexed unit: its classification and source span. The text
// of a token is derived on demand via Source.Snippet, not stored inline.
type Token struct {
	Tag  TokenTag
	Span source.Span
}
