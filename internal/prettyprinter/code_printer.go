// Package prettyprinter renders a parsed ast.File back to Knot source
// text, backing the `knotc fmt` subcommand.
//
// Modeled on internal/prettyprinter/code_printer.go: a
// CodePrinter struct tracking indent/column and a precedence table
// driving when a sub-expression needs parens. Knot's ast has no
// Accept(visitor) method (unlike the prior ast package), so the
// per-node-kind Visit* methods are replaced with the same switch-based
// recursive-descent style internal/lowering and internal/backend
// already use elsewhere in this module.
package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/knotlang/knotc/internal/ast"
)

// binaryOpText and binaryPrecedence mirror the parser's own operator
// table (internal/parser/expr.go) so fmt's output re-parses to the same
// tree it started from.
var binaryOpText = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
	ast.OpLt: "<", ast.OpLe: "<=", ast.OpGt: ">", ast.OpGe: ">=",
	ast.OpEq: "==", ast.OpNe: "!=", ast.OpAnd: "&&", ast.OpOr: "||",
	ast.OpShl: "<<", ast.OpShr: ">>",
}

var binaryPrecedence = map[ast.BinaryOp]int{
	ast.OpOr:  1,
	ast.OpAnd: 2,
	ast.OpEq:  3, ast.OpNe: 3,
	ast.OpLt: 4, ast.OpLe: 4, ast.OpGt: 4, ast.OpGe: 4,
	ast.OpShl: 5, ast.OpShr: 5,
	ast.OpAdd: 6, ast.OpSub: 6,
	ast.OpMul: 7, ast.OpDiv: 7, ast.OpMod: 7,
}

// CodePrinter accumulates formatted source text.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string { return p.buf.String() }

func (p *CodePrinter) write(s string) { p.buf.WriteString(s) }

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) writeln() { p.buf.WriteByte('\n') }

// PrintFile formats an entire file: every item separated by a blank
// line.
func (p *CodePrinter) PrintFile(f *ast.File) string {
	for i, item := range f.Items {
		if i > 0 {
			p.writeln()
		}
		p.printItem(item)
		p.writeln()
	}
	return p.String()
}

func (p *CodePrinter) printItem(item ast.Item) {
	switch it := item.(type) {
	case *ast.Import:
		p.write("import " + dotted(it.Path))
	case *ast.NewtypeDecl:
		p.printNewtype(it)
	case *ast.FuncDecl:
		p.printFunc(it)
	case *ast.ExternDecl:
		p.write(fmt.Sprintf("extern %s : ", it.Name))
		p.printType(it.Type)
	case *ast.Ascription:
		p.write(fmt.Sprintf("fn %s : ", it.Name))
		p.printType(it.Type)
	default:
		p.write(fmt.Sprintf("<?item %T?>", item))
	}
}

func (p *CodePrinter) printNewtype(it *ast.NewtypeDecl) {
	p.write("type " + it.Name)
	if len(it.Generics) > 0 {
		p.write("<")
		for i, g := range it.Generics {
			if i > 0 {
				p.write(", ")
			}
			p.write("'" + g)
		}
		p.write(">")
	}
	p.write(" = ")
	switch k := it.Kind.(type) {
	case ast.RecordKind:
		p.write("record {")
		p.writeln()
		p.indent++
		for _, f := range k.Fields {
			p.writeIndent()
			p.write(f.Name + ": ")
			p.printType(f.Type)
			p.writeln()
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case ast.UnionKind:
		p.write("union {")
		p.writeln()
		p.indent++
		for _, v := range k.Variants {
			p.writeIndent()
			p.write(v.Name)
			if v.Payload != nil {
				p.write("(")
				p.printType(v.Payload)
				p.write(")")
			}
			p.writeln()
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case ast.AliasKind:
		p.write("alias ")
		p.printType(k.Type)
	}
}

func (p *CodePrinter) printFunc(it *ast.FuncDecl) {
	p.write("fn " + it.Name)
	for _, param := range it.Params {
		p.write(" ")
		p.printPattern(param)
	}
	p.write(" ->")
	if _, ok := it.Body.(*ast.EBlock); ok {
		p.write(" ")
		p.printExpr(it.Body, 0)
		return
	}
	p.indent++
	p.writeln()
	p.writeIndent()
	p.printExpr(it.Body, 0)
	p.indent--
}

func (p *CodePrinter) printType(t ast.TypeExpr) {
	switch ty := t.(type) {
	case *ast.TEName:
		p.write(dotted(ty.Path))
		if len(ty.Args) > 0 {
			p.write("<")
			for i, a := range ty.Args {
				if i > 0 {
					p.write(", ")
				}
				p.printType(a)
			}
			p.write(">")
		}
	case *ast.TEGeneric:
		p.write("'" + ty.Name)
	case *ast.TEFunc:
		p.printType(ty.Param)
		p.write(" -> ")
		p.printType(ty.Result)
	case *ast.TETuple:
		p.write("[")
		for i, e := range ty.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.printType(e)
		}
		p.write("]")
	case *ast.TEList:
		p.write("list of ")
		p.printType(ty.Elem)
	default:
		p.write(fmt.Sprintf("<?type %T?>", t))
	}
}

func (p *CodePrinter) printPattern(pat ast.Pattern) {
	switch pt := pat.(type) {
	case *ast.PWildcard:
		p.write("_")
	case *ast.PBinding:
		p.write(pt.Name)
	case *ast.PTuple:
		p.write("(")
		for i, e := range pt.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.printPattern(e)
		}
		p.write(")")
	case *ast.PBool:
		p.write(strconv.FormatBool(pt.Value))
	case *ast.PInt:
		p.write(strconv.FormatInt(pt.Value, 10))
	case *ast.PString:
		p.write(strconv.Quote(pt.Value))
	case *ast.PVariant:
		if len(pt.TypePath) > 0 {
			p.write(dotted(pt.TypePath) + ".")
		}
		p.write(pt.Name)
		if pt.Sub != nil {
			p.write("(")
			p.printPattern(pt.Sub)
			p.write(")")
		}
	case *ast.PListEmpty:
		p.write("[]")
	case *ast.PListCons:
		p.write("[")
		p.printPattern(pt.Head)
		p.write("; ..")
		p.printPattern(pt.Tail)
		p.write("]")
	default:
		p.write(fmt.Sprintf("<?pattern %T?>", pat))
	}
}

// printExpr prints an expression, parenthesizing a binary sub-expression
// only when its precedence is lower than the enclosing one needs.
func (p *CodePrinter) printExpr(e ast.Expr, parentPrec int) {
	switch x := e.(type) {
	case *ast.EInt:
		p.write(strconv.FormatInt(x.Value, 10))
	case *ast.EBool:
		p.write(strconv.FormatBool(x.Value))
	case *ast.EString:
		p.write(strconv.Quote(x.Value))
	case *ast.EFormat:
		p.write(`"`)
		for _, part := range x.Parts {
			if part.Expr != nil {
				p.write("{")
				p.printExpr(part.Expr, 0)
				p.write("}")
			} else {
				p.write(part.Literal)
			}
		}
		p.write(`"`)
	case *ast.EPath:
		p.write(dotted(x.Segments))
	case *ast.ELet:
		p.write("let ")
		p.printPattern(x.Pattern)
		p.write(" = ")
		p.printExpr(x.Value, 0)
	case *ast.ERecord:
		p.write(dotted(x.TypePath))
		p.printFieldInits(x.Fields)
	case *ast.EWith:
		p.printExpr(x.Target, 10)
		p.write(" with")
		p.printFieldInits(x.Fields)
	case *ast.EListEmpty:
		p.write("[]")
	case *ast.EListCons:
		p.write("[")
		for i, it := range x.Items {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(it, 0)
		}
		if x.Tail != nil {
			p.write("; ..")
			p.printExpr(x.Tail, 0)
		}
		p.write("]")
	case *ast.ETuple:
		p.write("(")
		for i, el := range x.Elems {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(el, 0)
		}
		p.write(")")
	case *ast.EVariant:
		if len(x.TypePath) > 0 {
			p.write(dotted(x.TypePath) + ".")
		}
		p.write(x.Name)
		if x.Arg != nil {
			p.write("(")
			p.printExpr(x.Arg, 0)
			p.write(")")
		}
	case *ast.ECall:
		p.printExpr(x.Callee, 10)
		p.write("(")
		for i, a := range x.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(a, 0)
		}
		p.write(")")
	case *ast.EBinary:
		prec := binaryPrecedence[x.Op]
		needParen := prec < parentPrec
		if needParen {
			p.write("(")
		}
		p.printExpr(x.Lhs, prec)
		p.write(" " + binaryOpText[x.Op] + " ")
		p.printExpr(x.Rhs, prec+1)
		if needParen {
			p.write(")")
		}
	case *ast.ETry:
		p.printExpr(x.Value, 10)
		p.write("?")
	case *ast.EField:
		p.printExpr(x.Target, 10)
		p.write("." + x.Name)
	case *ast.EMatch:
		p.write("match ")
		p.printExpr(x.Subject, 0)
		p.write(" {")
		p.writeln()
		p.indent++
		for _, arm := range x.Arms {
			p.writeIndent()
			p.printPattern(arm.Pattern)
			p.write(" -> ")
			p.printExpr(arm.Body, 0)
			p.writeln()
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case *ast.EBlock:
		p.write("{")
		p.writeln()
		p.indent++
		for _, st := range x.Exprs {
			p.writeIndent()
			p.printExpr(st, 0)
			p.writeln()
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case *ast.ELambda:
		p.write("|")
		for i, param := range x.Params {
			if i > 0 {
				p.write(", ")
			}
			p.printPattern(param)
		}
		p.write("| ")
		p.printExpr(x.Body, 0)
	default:
		p.write(fmt.Sprintf("<?expr %T?>", e))
	}
}

func (p *CodePrinter) printFieldInits(fields []ast.FieldInit) {
	p.write("{")
	for i, f := range fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name + ": ")
		p.printExpr(f.Value, 0)
	}
	p.write("}")
}

func dotted(segments []string) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
