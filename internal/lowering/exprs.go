package lowering

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerExpr is a structural walk over the expression tree. Each case
// both builds the untyped IR node and constrains the type context so
// the expression's Type slot is meaningful once the owning body's
// substitution is eventually applied.
func (el *exprLowerer) lowerExpr(e ast.Expr) *uir.Expr {
	switch ex := e.(type) {
	case *ast.EInt:
		n := uir.NewInt(ex.Value, ex.Span())
		n.Type = types.Int
		return n

	case *ast.EBool:
		n := uir.NewBool(ex.Value, ex.Span())
		n.Type = types.Bool
		return n

	case *ast.EString:
		n := uir.NewStr(ex.Value, ex.Span())
		n.Type = types.Str
		return n

	case *ast.EFormat:
		parts := make([]uir.FormatPart, len(ex.Parts))
		for i, p := range ex.Parts {
			if p.Expr == nil {
				parts[i] = uir.FormatPart{Literal: p.Literal}
				continue
			}
			parts[i] = uir.FormatPart{Expr: el.lowerExpr(p.Expr)}
		}
		n := uir.NewFormat(parts, ex.Span())
		n.Type = types.Str
		return n

	case *ast.EPath:
		return el.lowerPath(ex)

	case *ast.ELet:
		value := el.lowerExpr(ex.Value)
		if el.lowerPatternRefutable(ex.Pattern) {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrRefutablePattern, ex.Span(),
				"let binding requires an irrefutable pattern"))
		}
		pat := el.lowerPattern(ex.Pattern, value.Type)
		n := uir.NewLet(pat, value, ex.Span())
		n.Type = types.Unit
		return n

	case *ast.ERecord:
		return el.lowerRecord(ex)

	case *ast.EWith:
		target := el.lowerExpr(ex.Target)
		fields := make([]uir.FieldInit, len(ex.Fields))
		for i, f := range ex.Fields {
			v := el.lowerExpr(f.Value)
			el.l.Types.Field(target.Type, f.Name, v.Type, ex.Span())
			fields[i] = uir.FieldInit{Name: f.Name, Expr: v}
		}
		n := uir.NewWith(target, fields, ex.Span())
		n.Type = target.Type
		return n

	case *ast.EListEmpty:
		elem := el.l.Types.FreshVar(ex.Span())
		n := uir.NewListEmpty(ex.Span())
		n.Type = types.TList{Elem: elem}
		return n

	case *ast.EListCons:
		return el.lowerList(ex)

	case *ast.ETuple:
		elems := make([]*uir.Expr, len(ex.Elems))
		elemTypes := make([]types.Type, len(ex.Elems))
		for i, e2 := range ex.Elems {
			elems[i] = el.lowerExpr(e2)
			elemTypes[i] = elems[i].Type
		}
		n := uir.NewTuple(elems, ex.Span())
		n.Type = types.TTuple{Elems: elemTypes}
		return n

	case *ast.EVariant:
		return el.lowerVariantExpr(ex)

	case *ast.ECall:
		return el.lowerCall(ex)

	case *ast.EBinary:
		return el.lowerBinary(ex)

	case *ast.ETry:
		value := el.lowerExpr(ex.Value)
		n := uir.NewTry(value, ex.Span())
		n.Type = value.Type
		return n

	case *ast.EField:
		target := el.lowerExpr(ex.Target)
		result := el.l.Types.FreshVar(ex.Span())
		el.l.Types.Field(target.Type, ex.Name, result, ex.Span())
		n := uir.NewFieldAccess(target, ex.Name, ex.Span())
		n.Type = result
		return n

	case *ast.EMatch:
		return el.lowerMatch(ex)

	case *ast.EBlock:
		return el.lowerBlock(ex)

	case *ast.ELambda:
		return el.lowerLambda(ex)

	default:
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, e.Span(), "unhandled expression shape"))
		n := uir.NewInt(0, e.Span())
		n.Type = el.l.Types.FreshVar(e.Span())
		return n
	}
}

// lowerPatternRefutable checks refutability without first lowering the
// pattern, by looking only at its AST shape (mirrors the invariant
// internal/uir.Pattern.Refutable computes post-lowering).
func (el *exprLowerer) lowerPatternRefutable(p ast.Pattern) bool {
	switch pt := p.(type) {
	case *ast.PWildcard, *ast.PBinding:
		return false
	case *ast.PTuple:
		for _, e := range pt.Elems {
			if el.lowerPatternRefutable(e) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// lowerPath resolves a path expression: length 1 first tries local
// scope, then captures from enclosing bodies, then looks up a body of
// that name in the module; length ≥2 addresses a body in a module
// directly.
func (el *exprLowerer) lowerPath(ex *ast.EPath) *uir.Expr {
	if len(ex.Segments) == 1 {
		name := ex.Segments[0]
		if local, ok := el.resolveOwnScope(name); ok {
			n := uir.NewLocal(local, ex.Span())
			n.Type = el.body.LocalType(local)
			return n
		}
		if local, ok := el.captureLocal(name); ok {
			n := uir.NewLocal(local, ex.Span())
			n.Type = el.body.LocalType(local)
			return n
		}
		if bid, ok := el.module.Bodies[name]; ok {
			return el.bodyRef(bid, ex.Span())
		}
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedLocal, ex.Span(),
			fmt.Sprintf("unresolved name %q", name)))
		n := uir.NewInt(0, ex.Span())
		n.Type = el.l.Types.FreshVar(ex.Span())
		return n
	}

	owner, ok := el.module.Lookup(ex.Segments[:len(ex.Segments)-1])
	last := ex.Segments[len(ex.Segments)-1]
	if !ok {
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, ex.Span(),
			fmt.Sprintf("no such module in path %q", joinSegs(ex.Segments))))
		n := uir.NewInt(0, ex.Span())
		n.Type = el.l.Types.FreshVar(ex.Span())
		return n
	}
	bid, ok := owner.Bodies[last]
	if !ok {
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, ex.Span(),
			fmt.Sprintf("%q not found", joinSegs(ex.Segments))))
		n := uir.NewInt(0, ex.Span())
		n.Type = el.l.Types.FreshVar(ex.Span())
		return n
	}
	return el.bodyRef(bid, ex.Span())
}

// bodyRef resolves a body reference at a use site: the substitution is
// applied to the callee's current (possibly still-being-inferred) type;
// if the caller
// is not part of a recursion cycle including the callee, that type is
// additionally instantiated with fresh variables. Recursive calls see
// the uninstantiated type so monomorphic recursion converges.
func (el *exprLowerer) bodyRef(bid ids.UBodyID, span source.Span) *uir.Expr {
	// Ensure the callee has a stub (and, if it's a plain function, lower
	// it eagerly when it's not already in flight — on-demand lowering
	// driven by reference order.
	if !el.l.inRecursionCycle(bid) {
		el.l.lowerBodyOnDemand(bid)
	}

	callee := el.l.Program.Body(bid)
	calleeTy := el.l.Types.Substitute(callee.Type)

	recursive := el.l.inRecursionCycle(bid) || bid == el.body.ID
	ty := calleeTy
	if !recursive {
		ty = el.l.Types.Instantiate(calleeTy, span)
	}

	n := uir.NewBodyRef(bid, !recursive, span)
	n.Type = ty
	return n
}
