package parser

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/lexer"
	"github.com/knotlang/knotc/internal/source"
)

// parseNewtype parses `type Name<'a,'b> = record { ... }` / `= union
// { ... }` / `= alias T`.
func (p *Parser) parseNewtype() ast.Item {
	start := p.cur.Span
	p.next() // type
	name := p.expect(lexer.IDENT, "type name").Lexeme

	var generics []string
	if p.cur.Kind == lexer.LT {
		p.next()
		for {
			generics = append(generics, p.expect(lexer.TICK_IDENT, "generic parameter").Literal)
			if p.cur.Kind == lexer.COMMA {
				p.next()
				continue
			}
			break
		}
		p.expect(lexer.GT, "'>'")
	}

	p.expect(lexer.ASSIGN, "'='")

	var kind ast.NewtypeKind
	switch p.cur.Kind {
	case lexer.KW_RECORD:
		p.next()
		p.expect(lexer.LBRACE, "'{'")
		var fields []ast.RecordField
		for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
			fname := p.expect(lexer.IDENT, "field name").Lexeme
			p.expect(lexer.COLON, "':'")
			ftype := p.parseType()
			fields = append(fields, ast.RecordField{Name: fname, Type: ftype})
			if p.cur.Kind == lexer.SEMI || p.cur.Kind == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACE, "'}'")
		kind = ast.RecordKind{Fields: fields}
	case lexer.KW_UNION:
		p.next()
		p.expect(lexer.LBRACE, "'{'")
		var variants []ast.VariantDecl
		for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
			vname := p.expect(lexer.IDENT, "variant name").Lexeme
			var payload ast.TypeExpr
			if p.cur.Kind == lexer.LPAREN {
				p.next()
				payload = p.parseType()
				p.expect(lexer.RPAREN, "')'")
			}
			variants = append(variants, ast.VariantDecl{Name: vname, Payload: payload})
			if p.cur.Kind == lexer.SEMI || p.cur.Kind == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACE, "'}'")
		kind = ast.UnionKind{Variants: variants}
	case lexer.KW_ALIAS:
		p.next()
		kind = ast.AliasKind{Type: p.parseType()}
	default:
		p.errorf(p.cur.Span, "expected record, union or alias, got %q", p.cur.Lexeme)
		return nil
	}

	return &ast.NewtypeDecl{
		Base:     ast.Base{SpanV: source.Cover(start, p.cur.Span)},
		Name:     name,
		Generics: generics,
		Kind:     kind,
	}
}

func (p *Parser) parseExtern() ast.Item {
	start := p.cur.Span
	p.next() // extern
	name := p.expect(lexer.IDENT, "extern name").Lexeme
	p.expect(lexer.COLON, "':'")
	t := p.parseType()
	return &ast.ExternDecl{Base: ast.Base{SpanV: source.Cover(start, p.cur.Span)}, Name: name, Type: t}
}

// parseFuncOrAscription parses `fn name : T` (ascription) or
// `fn name p1 p2 -> body` (definition).
func (p *Parser) parseFuncOrAscription() ast.Item {
	start := p.cur.Span
	p.next() // fn
	name := p.expect(lexer.IDENT, "function name").Lexeme

	if p.cur.Kind == lexer.COLON {
		p.next()
		t := p.parseType()
		return &ast.Ascription{Base: ast.Base{SpanV: source.Cover(start, p.cur.Span)}, Name: name, Type: t}
	}

	var params []ast.Pattern
	for p.cur.Kind != lexer.ARROW && p.cur.Kind != lexer.EOF {
		params = append(params, p.parsePrimaryPattern())
	}
	p.expect(lexer.ARROW, "'->'")
	body := p.parseExpr(LOWEST)
	return &ast.FuncDecl{
		Base:   ast.Base{SpanV: source.Cover(start, p.cur.Span)},
		Name:   name,
		Params: params,
		Body:   body,
	}
}
