package parser

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/lexer"
	"github.com/knotlang/knotc/internal/source"
)

// parsePrimaryPattern parses one pattern. Refutability is not checked
// here; the
// parser accepts any pattern anywhere and lets Lowering reject a
// refutable one in a let/parameter position (diagnostics.ErrRefutablePattern).
func (p *Parser) parsePrimaryPattern() ast.Pattern {
	start := p.cur.Span
	switch p.cur.Kind {
	case lexer.IDENT:
		if p.cur.Lexeme == "_" {
			p.next()
			return &ast.PWildcard{Base: ast.Base{SpanV: start}}
		}
		name := p.cur.Lexeme
		p.next()
		if p.cur.Kind == lexer.LPAREN {
			p.next()
			sub := p.parsePattern()
			end := p.cur.Span
			p.expect(lexer.RPAREN, "')'")
			return &ast.PVariant{Base: ast.Base{SpanV: source.Cover(start, end)}, Name: name, Sub: sub}
		}
		return &ast.PBinding{Base: ast.Base{SpanV: start}, Name: name}
	case lexer.INT:
		v, _ := lexer.ParseIntLiteral(p.cur.Literal)
		p.next()
		return &ast.PInt{Base: ast.Base{SpanV: start}, Value: v}
	case lexer.STRING:
		v := p.cur.Literal
		p.next()
		return &ast.PString{Base: ast.Base{SpanV: start}, Value: v}
	case lexer.KW_TRUE:
		p.next()
		return &ast.PBool{Base: ast.Base{SpanV: start}, Value: true}
	case lexer.KW_FALSE:
		p.next()
		return &ast.PBool{Base: ast.Base{SpanV: start}, Value: false}
	case lexer.LPAREN:
		p.next()
		var elems []ast.Pattern
		for p.cur.Kind != lexer.RPAREN && p.cur.Kind != lexer.EOF {
			elems = append(elems, p.parsePattern())
			if p.cur.Kind == lexer.COMMA {
				p.next()
			}
		}
		end := p.cur.Span
		p.expect(lexer.RPAREN, "')'")
		if len(elems) == 1 {
			return elems[0]
		}
		return &ast.PTuple{Base: ast.Base{SpanV: source.Cover(start, end)}, Elems: elems}
	case lexer.LBRACKET:
		return p.parseListPattern(start)
	default:
		p.errorf(p.cur.Span, "expected a pattern, got %q", p.cur.Lexeme)
		p.next()
		return &ast.PWildcard{Base: ast.Base{SpanV: start}}
	}
}

// parsePattern is an alias kept distinct from parsePrimaryPattern so a
// future precedence layer (e.g. `pat | pat` or-patterns) has a seam;
// Knot doesn't have or-patterns, so today it just forwards.
func (p *Parser) parsePattern() ast.Pattern {
	return p.parsePrimaryPattern()
}

// parseListPattern parses `[]`, `[a, b]`, or `[head; ..tail]`.
func (p *Parser) parseListPattern(start source.Span) ast.Pattern {
	p.next() // [
	if p.cur.Kind == lexer.RBRACKET {
		end := p.cur.Span
		p.next()
		return &ast.PListEmpty{Base: ast.Base{SpanV: source.Cover(start, end)}}
	}

	var heads []ast.Pattern
	var tail ast.Pattern
	for p.cur.Kind != lexer.RBRACKET && p.cur.Kind != lexer.EOF {
		if p.cur.Kind == lexer.SEMI {
			p.next()
			p.expect(lexer.DOTDOT, "'..'")
			tail = p.parsePattern()
			break
		}
		heads = append(heads, p.parsePattern())
		if p.cur.Kind == lexer.COMMA {
			p.next()
		}
	}
	end := p.cur.Span
	p.expect(lexer.RBRACKET, "']'")

	if tail == nil {
		tail = &ast.PListEmpty{Base: ast.Base{SpanV: end}}
	}
	result := tail
	for i := len(heads) - 1; i >= 0; i-- {
		result = &ast.PListCons{Base: ast.Base{SpanV: source.Cover(start, end)}, Head: heads[i], Tail: result}
	}
	return result
}
