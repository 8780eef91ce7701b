package parser

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/lexer"
	"github.com/knotlang/knotc/internal/source"
)

// parseType parses a type annotation. Grammar (low to high binding):
//
//	type   := atom ('->' type)?
//	atom   := 'a | IDENT ('.' IDENT)* ('<' type (',' type)* '>')? | '[' type (',' type)* ']' | 'list' 'of' atom
func (p *Parser) parseType() ast.TypeExpr {
	lhs := p.parseAtomType()
	if p.cur.Kind == lexer.ARROW {
		p.next()
		rhs := p.parseType()
		return &ast.TEFunc{Base: ast.Base{SpanV: source.Cover(lhs.Span(), rhs.Span())}, Param: lhs, Result: rhs}
	}
	return lhs
}

func (p *Parser) parseAtomType() ast.TypeExpr {
	start := p.cur.Span
	switch p.cur.Kind {
	case lexer.TICK_IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.TEGeneric{Base: ast.Base{SpanV: start}, Name: name}
	case lexer.LBRACKET:
		p.next()
		var elems []ast.TypeExpr
		for p.cur.Kind != lexer.RBRACKET && p.cur.Kind != lexer.EOF {
			elems = append(elems, p.parseType())
			if p.cur.Kind == lexer.COMMA {
				p.next()
			}
		}
		end := p.cur.Span
		p.expect(lexer.RBRACKET, "']'")
		return &ast.TETuple{Base: ast.Base{SpanV: source.Cover(start, end)}, Elems: elems}
	case lexer.IDENT:
		var segs []string
		segs = append(segs, p.cur.Lexeme)
		p.next()
		for p.cur.Kind == lexer.DOT {
			p.next()
			segs = append(segs, p.expect(lexer.IDENT, "identifier").Lexeme)
		}
		if len(segs) == 1 && segs[0] == "list" {
			// `list of T`
			p.expect(lexer.IDENT, "'of'") // lexed as IDENT "of"
			elem := p.parseAtomType()
			return &ast.TEList{Base: ast.Base{SpanV: source.Cover(start, elem.Span())}, Elem: elem}
		}
		var args []ast.TypeExpr
		if p.cur.Kind == lexer.LT {
			p.next()
			for p.cur.Kind != lexer.GT && p.cur.Kind != lexer.EOF {
				args = append(args, p.parseType())
				if p.cur.Kind == lexer.COMMA {
					p.next()
				}
			}
			p.expect(lexer.GT, "'>'")
		}
		return &ast.TEName{Base: ast.Base{SpanV: source.Cover(start, p.cur.Span)}, Path: segs, Args: args}
	default:
		p.errorf(p.cur.Span, "expected a type, got %q", p.cur.Lexeme)
		p.next()
		return &ast.TEName{Base: ast.Base{SpanV: start}, Path: []string{"unit"}}
	}
}
