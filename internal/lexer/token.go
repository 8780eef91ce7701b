// Package lexer is the character-level tokenizer. Modeled on internal/lexer/lexer.go: a
// hand-rolled rune scanner tracking byte position only (line/column is
// derived later from source.File), switching on the current rune and peeking one ahead for two-character
// operators.
package lexer

import "github.com/knotlang/knotc/internal/source"

type Kind int

const (
	EOF Kind = iota
	IDENT
	TICK_IDENT // 'a generic name
	INT
	STRING
	FORMAT_STRING // "...{...}..." kept as one raw token; re-split by the parser

	// Keywords
	KW_FN
	KW_EXTERN
	KW_TYPE
	KW_RECORD
	KW_UNION
	KW_ALIAS
	KW_LET
	KW_MATCH
	KW_WITH
	KW_IMPORT
	KW_TRUE
	KW_FALSE

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMI
	COLON
	DOT
	ARROW // ->
	FATARROW // =>
	PIPE // |
	QUESTION
	DOTDOT // ..
	ASSIGN // =

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	LT
	LE
	GT
	GE
	EQEQ
	NE
	ANDAND
	OROR
	SHL
	SHR

	ILLEGAL
)

var keywords = map[string]Kind{
	"fn":     KW_FN,
	"extern": KW_EXTERN,
	"type":   KW_TYPE,
	"record": KW_RECORD,
	"union":  KW_UNION,
	"alias":  KW_ALIAS,
	"let":    KW_LET,
	"match":  KW_MATCH,
	"with":   KW_WITH,
	"import": KW_IMPORT,
	"true":   KW_TRUE,
	"false":  KW_FALSE,
}

// Token is the unit the parser consumes. Lexeme is the raw source text;
// for INT/STRING, Literal holds the decoded value.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal string
	Span    source.Span
}
