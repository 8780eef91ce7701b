// Package parser is the recursive-descent parser.
//
// Modeled on internal/parser package: a Pratt expression
// parser (parseExpression(precedence int), prefixParseFns/infixParseFns
// keyed by token kind, LOWEST/precedence table in expressions_core.go)
// wrapped by hand-written recursive-descent for statements/declarations
// (statements_types.go, statements_functions.go). Knot's grammar is far
// smaller, so it lives in one package with one file per concern
// (expr.go, items.go, patterns.go, types.go), and keeps the same two-layer shape: parseExpr (Pratt) plus
// parseItem/parseType/parsePattern (plain recursive descent).
package parser

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/lexer"
	"github.com/knotlang/knotc/internal/source"
)

type Parser struct {
	sourceID source.ID
	lex      *lexer.Lexer
	cur, pk  lexer.Token
	emitter  *diagnostics.Emitter
}

func New(file *source.File, emitter *diagnostics.Emitter) *Parser {
	p := &Parser{sourceID: file.ID, lex: lexer.New(file.ID, file.Contents), emitter: emitter}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.pk
	p.pk = p.lex.NextToken()
}

func (p *Parser) errorf(span source.Span, format string, args ...interface{}) {
	p.emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, span, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(k lexer.Kind, what string) lexer.Token {
	if p.cur.Kind != k {
		p.errorf(p.cur.Span, "expected %s, got %q", what, p.cur.Lexeme)
		return p.cur
	}
	t := p.cur
	p.next()
	return t
}

// ParseFile parses one source file into an ast.File. Recovery on a
// malformed item is "skip to the next item-starting keyword", so one bad
// declaration does not stop every other diagnostic in the file from being
// collected; this mirrors "continue on errors" pipeline
// comment.
func ParseFile(file *source.File, emitter *diagnostics.Emitter) *ast.File {
	p := New(file, emitter)
	f := &ast.File{Path: file.Path}
	for p.cur.Kind != lexer.EOF {
		item := p.parseItem()
		if item != nil {
			f.Items = append(f.Items, item)
		} else {
			p.next()
		}
	}
	return f
}

func (p *Parser) parseItem() ast.Item {
	switch p.cur.Kind {
	case lexer.KW_IMPORT:
		return p.parseImport()
	case lexer.KW_TYPE:
		return p.parseNewtype()
	case lexer.KW_EXTERN:
		return p.parseExtern()
	case lexer.KW_FN:
		return p.parseFuncOrAscription()
	default:
		p.errorf(p.cur.Span, "expected a top-level item, got %q", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseImport() ast.Item {
	start := p.cur.Span
	p.next() // import
	var segs []string
	segs = append(segs, p.expect(lexer.IDENT, "identifier").Lexeme)
	for p.cur.Kind == lexer.DOT {
		p.next()
		segs = append(segs, p.expect(lexer.IDENT, "identifier").Lexeme)
	}
	end := p.cur.Span
	return &ast.Import{Base: ast.Base{SpanV: source.Cover(start, end)}, Path: segs}
}
