package backend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/tir"
)

// ScriptBackend emits a single Lua script: a runtime prelude (list
// cons-cell and variant-tag helpers) followed by one function per
// specialized body, followed by a call into the entry body. Lua is a
// plausible stand-in for a dynamically-typed scripting backend — its
// tables double as tuples, records and cons cells with no runtime
// library of its own.
//
// Modeled on internal/backend/treewalk.go: a single
// recursive switch over every expression kind, mechanically walking
// the IR node by node. Knot's switch below plays the same role over
// tir.Expr instead of ast nodes, emitting text instead of evaluating.
type ScriptBackend struct{}

func NewScript() *ScriptBackend { return &ScriptBackend{} }

func (b *ScriptBackend) Name() string { return "script" }

const prelude = `-- generated by knotc; do not edit
local function __cons(h, t) return { h, t } end
local function __variant(tag, payload) return { tag = tag, payload = payload } end
local function __with(base, overrides)
  local t = {}
  for k, v in pairs(base) do t[k] = v end
  for k, v in pairs(overrides) do t[k] = v end
  return t
end
`

func (b *ScriptBackend) Emit(prog *tir.Program) (string, error) {
	e := &emitter{prog: prog, buf: &strings.Builder{}}
	e.buf.WriteString(prelude)

	for _, body := range prog.Bodies {
		e.emitBody(body)
	}

	fmt.Fprintf(e.buf, "\n%s()\n", bodyFuncName(prog.Entry))
	return e.buf.String(), nil
}

type emitter struct {
	prog *tir.Program
	buf  *strings.Builder
	tmp  int

	// out and indent track where the statement currently being emitted
	// lands: the body function itself, or the innermost block/match IIFE
	// presently under construction. A construct that needs to emit a
	// statement (try's error check, a let binding) writes through emit,
	// never appending to buf directly, so the statement reaches whichever
	// Lua function is actually in scope at that point in the walk.
	out    *strings.Builder
	indent int
}

func bodyFuncName(id ids.TBodyID) string {
	return fmt.Sprintf("__body_%d", id)
}

func localName(id ids.TLocalID) string {
	return fmt.Sprintf("l%d", id)
}

func (e *emitter) freshTemp() string {
	e.tmp++
	return fmt.Sprintf("__t%d", e.tmp)
}

// emit writes one indented statement line to the currently active
// statement target (see emitter.out).
func (e *emitter) emit(format string, args ...any) {
	fmt.Fprintf(e.out, "%s%s\n", strings.Repeat("  ", e.indent), fmt.Sprintf(format, args...))
}

// enterScope redirects statement emission to out at the given indent,
// returning a restore function that puts the previous target back.
func (e *emitter) enterScope(out *strings.Builder, indent int) func() {
	prevOut, prevIndent := e.out, e.indent
	e.out, e.indent = out, indent
	return func() { e.out, e.indent = prevOut, prevIndent }
}

func (e *emitter) emitBody(body *tir.Body) {
	params := make([]string, len(body.Inputs))
	for i := range body.Inputs {
		params[i] = fmt.Sprintf("__arg%d", i)
	}
	fmt.Fprintf(e.buf, "\nlocal function %s(%s)\n", bodyFuncName(body.ID), strings.Join(params, ", "))

	if body.Expr == nil {
		// Extern binding: the host runtime must supply a global of the
		// same name; the generated stub just forwards to it.
		fmt.Fprintf(e.buf, "  return %s(%s)\n", body.Name, strings.Join(params, ", "))
		e.buf.WriteString("end\n")
		return
	}

	exit := e.enterScope(e.buf, 1)
	for i, p := range body.Inputs {
		for _, stmt := range e.bindPattern(p, params[i]) {
			e.emit("%s", stmt)
		}
	}

	expr := e.expr(body.Expr)
	e.emit("return %s", expr)
	exit()
	e.buf.WriteString("end\n")
}

// bindPattern destructures val (a Lua expression string, already
// evaluated into something safe to reference more than once — callers
// pass either a parameter name or a fresh temp) against p, returning
// the Lua statements needed to bind every name p introduces. Only
// irrefutable shapes reach here (wildcard, binding, tuple) per spec
// §3's pattern invariant for let/parameter positions.
func (e *emitter) bindPattern(p *tir.Pattern, val string) []string {
	switch p.KindOf() {
	case tir.PWildcard:
		return nil
	case tir.PBinding:
		return []string{fmt.Sprintf("local %s = %s", localName(p.Local), val)}
	case tir.PTuple:
		var out []string
		for i, elem := range p.Elems {
			out = append(out, e.bindPattern(elem, fmt.Sprintf("%s[%d]", val, i+1))...)
		}
		return out
	default:
		panic(fmt.Sprintf("backend: refutable pattern kind %v in irrefutable position", p.KindOf()))
	}
}

func (e *emitter) expr(x *tir.Expr) string {
	switch x.KindOf() {
	case tir.EInt:
		return strconv.FormatInt(x.IntVal, 10)
	case tir.EBool:
		return strconv.FormatBool(x.BoolVal)
	case tir.EStr:
		return strconv.Quote(x.StrVal)
	case tir.EFormat:
		return e.format(x)
	case tir.ELocal:
		return localName(x.Local)
	case tir.EBodyRef:
		return bodyFuncName(x.Body)
	case tir.ELet:
		return e.block([]*tir.Expr{x}, "nil")
	case tir.ERecord:
		return e.record(x)
	case tir.EWith:
		return e.with(x)
	case tir.EListEmpty:
		return "nil"
	case tir.EListCons:
		return fmt.Sprintf("__cons(%s, %s)", e.expr(x.Head), e.expr(x.Tail))
	case tir.ETuple:
		parts := make([]string, len(x.Elems))
		for i, el := range x.Elems {
			parts[i] = e.expr(el)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case tir.EVariant:
		payload := "nil"
		if x.Arg != nil {
			payload = e.expr(x.Arg)
		}
		return fmt.Sprintf("__variant(%q, %s)", x.VariantName, payload)
	case tir.ECall:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = e.expr(a)
		}
		return fmt.Sprintf("%s(%s)", e.expr(x.Callee), strings.Join(args, ", "))
	case tir.EBinary:
		return e.binary(x)
	case tir.ETry:
		return e.tryExpr(x)
	case tir.EField:
		return fmt.Sprintf("%s.%s", e.expr(x.Target), x.FieldName)
	case tir.EMatch:
		return e.match(x)
	case tir.EBlock:
		return e.block(x.Stmts, "nil")
	default:
		panic(fmt.Sprintf("backend: unhandled expr kind %v", x.KindOf()))
	}
}

func (e *emitter) format(x *tir.Expr) string {
	parts := make([]string, 0, len(x.FormatParts))
	for _, p := range x.FormatParts {
		if p.Expr != nil {
			parts = append(parts, fmt.Sprintf("tostring(%s)", e.expr(p.Expr)))
		} else {
			parts = append(parts, strconv.Quote(p.Literal))
		}
	}
	if len(parts) == 0 {
		return `""`
	}
	return strings.Join(parts, " .. ")
}

func (e *emitter) record(x *tir.Expr) string {
	parts := make([]string, len(x.Fields))
	for i, f := range x.Fields {
		parts[i] = fmt.Sprintf("%s = %s", f.Name, e.expr(f.Expr))
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// tryExpr evaluates x.TryValue into a temp once, emitting a guard that
// returns the error variant outright from whichever Lua function is
// currently being built; the expression's own value is then the
// unwrapped payload, not the raw tagged variant.
func (e *emitter) tryExpr(x *tir.Expr) string {
	result := e.freshTemp()
	e.emit("local %s = %s", result, e.expr(x.TryValue))
	e.emit("if %s.tag == \"err\" then", result)
	e.indent++
	e.emit("return %s", result)
	e.indent--
	e.emit("end")
	return result + ".payload"
}

func (e *emitter) with(x *tir.Expr) string {
	overrides := make([]string, len(x.Fields))
	for i, f := range x.Fields {
		overrides[i] = fmt.Sprintf("%s = %s", f.Name, e.expr(f.Expr))
	}
	return fmt.Sprintf("__with(%s, { %s })", e.expr(x.WithTarget), strings.Join(overrides, ", "))
}

var binaryOps = map[ast.BinaryOp]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "//", ast.OpMod: "%",
	ast.OpLt: "<", ast.OpLe: "<=", ast.OpGt: ">", ast.OpGe: ">=",
	ast.OpEq: "==", ast.OpNe: "~=", ast.OpAnd: "and", ast.OpOr: "or",
}

func (e *emitter) binary(x *tir.Expr) string {
	op, ok := binaryOps[x.Op]
	if !ok {
		panic(fmt.Sprintf("backend: unsupported binary operator %v", x.Op))
	}
	return fmt.Sprintf("(%s %s %s)", e.expr(x.Left), op, e.expr(x.Right))
}

// block emits a sequence of statement expressions as a Lua IIFE,
// binding every mid-sequence ELet's names and returning the last
// expression's value (or fallback if the sequence is empty).
func (e *emitter) block(stmts []*tir.Expr, fallback string) string {
	var b strings.Builder
	b.WriteString("(function()\n")
	exit := e.enterScope(&b, 2)

	for i, st := range stmts {
		last := i == len(stmts)-1
		if st.KindOf() == tir.ELet {
			tmp := e.freshTemp()
			e.emit("local %s = %s", tmp, e.expr(st.LetValue))
			for _, line := range e.bindPattern(st.LetPattern, tmp) {
				e.emit("%s", line)
			}
			if last {
				e.emit("return nil")
			}
			continue
		}
		if last {
			e.emit("return %s", e.expr(st))
		} else {
			e.emit("local %s = %s", e.freshTemp(), e.expr(st))
		}
	}
	if len(stmts) == 0 {
		e.emit("return %s", fallback)
	}

	exit()
	b.WriteString("  end)()")
	return b.String()
}

// match compiles a match expression into an IIFE over the subject
// bound once to a local, tested against each arm's pattern in order
// with an if/elseif chain — exhaustiveness was already proven during
// Lowering, so no arm is required to fall through.
func (e *emitter) match(x *tir.Expr) string {
	subject := e.freshTemp()
	var b strings.Builder
	fmt.Fprintf(&b, "(function()\n    local %s = %s\n", subject, e.expr(x.Subject))
	exit := e.enterScope(&b, 3)

	for i, arm := range x.Arms {
		keyword := "if"
		if i > 0 {
			keyword = "elseif"
		}
		cond, binds := e.matchTest(arm.Pattern, subject)
		fmt.Fprintf(&b, "    %s %s then\n", keyword, cond)
		for _, line := range binds {
			e.emit("%s", line)
		}
		e.emit("return %s", e.expr(arm.Expr))
	}

	exit()
	b.WriteString("    end\n  end)()")
	return b.String()
}

// matchTest returns a boolean Lua expression testing whether val
// matches p, plus the binding statements to run once that test
// succeeds.
func (e *emitter) matchTest(p *tir.Pattern, val string) (string, []string) {
	switch p.KindOf() {
	case tir.PWildcard:
		return "true", nil
	case tir.PBinding:
		return "true", []string{fmt.Sprintf("local %s = %s", localName(p.Local), val)}
	case tir.PBool:
		return fmt.Sprintf("%s == %s", val, strconv.FormatBool(p.BoolVal)), nil
	case tir.PInt:
		return fmt.Sprintf("%s == %d", val, p.IntVal), nil
	case tir.PStr:
		return fmt.Sprintf("%s == %s", val, strconv.Quote(p.StrVal)), nil
	case tir.PListEmpty:
		return fmt.Sprintf("%s == nil", val), nil
	case tir.PListCons:
		hc, hb := e.matchTest(p.Head, val+"[1]")
		tc, tb := e.matchTest(p.Tail, val+"[2]")
		binds := append(hb, tb...)
		return fmt.Sprintf("%s ~= nil and %s and %s", val, hc, tc), binds
	case tir.PTuple:
		cond := "true"
		var binds []string
		for i, elem := range p.Elems {
			ec, eb := e.matchTest(elem, fmt.Sprintf("%s[%d]", val, i+1))
			cond += " and " + ec
			binds = append(binds, eb...)
		}
		return cond, binds
	case tir.PVariant:
		cond := fmt.Sprintf("%s.tag == %s", val, strconv.Quote(p.VariantName))
		var binds []string
		if p.Sub != nil {
			sc, sb := e.matchTest(p.Sub, val+".payload")
			cond += " and " + sc
			binds = sb
		}
		return cond, binds
	default:
		panic(fmt.Sprintf("backend: unhandled pattern kind %v in match", p.KindOf()))
	}
}
