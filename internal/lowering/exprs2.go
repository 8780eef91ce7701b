package lowering

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/modtree"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerRecord lowers a record literal: the type path resolves to
// a record newtype; explicit generic arguments prefix-fill its
// parameter list, remaining positions get fresh variables; each
// provided field is unified against the declared field type under that
// substitution; duplicate fields and missing fields are hard errors;
// extra fields are hard errors.
func (el *exprLowerer) lowerRecord(ex *ast.ERecord) *uir.Expr {
	owner := el.module
	name := ex.TypePath[len(ex.TypePath)-1]
	if len(ex.TypePath) > 1 {
		var ok bool
		owner, ok = el.module.Lookup(ex.TypePath[:len(ex.TypePath)-1])
		if !ok {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, ex.Span(),
				"no such module in record type path"))
			return el.errExpr(ex.Span())
		}
	}
	tid, ok := owner.Newtypes[name]
	if !ok {
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, ex.Span(),
			fmt.Sprintf("unknown record type %q", name)))
		return el.errExpr(ex.Span())
	}
	decl := el.l.Types.Newtype(tid)

	args := make([]types.Type, len(decl.Generics))
	for i := range decl.Generics {
		if i < len(ex.TypeArgs) {
			args[i] = el.lowerTypeExprAsGeneric(ex.TypeArgs[i])
		} else {
			args[i] = el.l.Types.FreshVar(ex.Span())
		}
	}
	sub := make(map[ids.VarID]types.Type, len(decl.Generics))
	for i, g := range decl.Generics {
		sub[g.Var] = args[i]
	}

	seen := make(map[string]bool, len(ex.Fields))
	fields := make([]uir.FieldInit, len(ex.Fields))
	for i, f := range ex.Fields {
		if seen[f.Name] {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrDuplicateField, ex.Span(),
				fmt.Sprintf("duplicate field %q", f.Name)))
		}
		seen[f.Name] = true

		declType, isField := fieldType(decl, f.Name)
		if !isField {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrExtraField, ex.Span(),
				fmt.Sprintf("%q has no field %q", name, f.Name)))
		}
		v := el.lowerExpr(f.Value)
		if isField {
			el.l.Types.Unify(v.Type, substituteGenerics(declType, sub), ex.Span())
		}
		fields[i] = uir.FieldInit{Name: f.Name, Expr: v}
	}
	for _, rf := range decl.Fields {
		if !seen[rf.Name] {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrMissingField, ex.Span(),
				fmt.Sprintf("missing field %q", rf.Name)))
		}
	}

	n := uir.NewRecord(tid, fields, ex.Span())
	n.Type = types.TNewtype{ID: tid, Args: args}
	return n
}

func fieldType(decl *types.Newtype, name string) (types.Type, bool) {
	for _, f := range decl.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// substituteGenerics is the public-facing entry point into the same
// deep-rewrite the type context uses internally for alias unfolding and
// field-bound checking (internal/types/unify.go's substituteVars);
// exposed here for record-literal lowering, which does not live in
// package types.
func substituteGenerics(ty types.Type, sub map[ids.VarID]types.Type) types.Type {
	return types.SubstituteGenerics(ty, sub)
}

func (el *exprLowerer) lowerTypeExprAsGeneric(te ast.TypeExpr) types.Type {
	return el.l.lowerTypeExpr(te, el.module, newGenericScope())
}

// lowerList lowers a list literal: an element variable is created; the
// optional tail (if any) is unified against `list of element`; each
// item is unified against element; the list is built right-to-left as
// cons(head, …).
func (el *exprLowerer) lowerList(ex *ast.EListCons) *uir.Expr {
	elem := el.l.Types.FreshVar(ex.Span())
	listTy := types.TList{Elem: elem}

	var tail *uir.Expr
	if ex.Tail != nil {
		tail = el.lowerExpr(ex.Tail)
		el.l.Types.Unify(tail.Type, listTy, ex.Span())
	} else {
		tail = uir.NewListEmpty(ex.Span())
		tail.Type = listTy
	}

	items := make([]*uir.Expr, len(ex.Items))
	for i, it := range ex.Items {
		items[i] = el.lowerExpr(it)
		el.l.Types.Unify(items[i].Type, elem, ex.Span())
	}

	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = uir.NewListCons(items[i], result, ex.Span())
		result.Type = listTy
	}
	return result
}

// lowerVariantExpr constructs a union value: the constructor body is
// looked up exactly like a path reference of length 1/2, since it's
// just another body in the owning module's Bodies map.
func (el *exprLowerer) lowerVariantExpr(ex *ast.EVariant) *uir.Expr {
	owner := el.module
	if len(ex.TypePath) > 0 {
		var ok bool
		owner, ok = el.module.Lookup(ex.TypePath)
		if !ok {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, ex.Span(),
				"no such module in variant constructor path"))
			return el.errExpr(ex.Span())
		}
	}
	ref, ok := owner.Variants[ex.Name]
	if !ok {
		ref, ok = findVariantAnywhere(el.module, ex.Name)
		if !ok {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, ex.Span(),
				fmt.Sprintf("unknown variant %q", ex.Name)))
			return el.errExpr(ex.Span())
		}
	}

	ctorRef := el.bodyRef(ref.BodyID, ex.Span())
	if ex.Arg == nil {
		return ctorRef
	}
	arg := el.lowerExpr(ex.Arg)
	fnTy, ok := ctorRef.Type.(types.TFunc)
	result := el.l.Types.FreshVar(ex.Span())
	if ok {
		el.l.Types.Unify(fnTy.Param, arg.Type, ex.Span())
		el.l.Types.Unify(fnTy.Result, result, ex.Span())
	} else {
		el.l.Types.Unify(ctorRef.Type, types.TFunc{Param: arg.Type, Result: result}, ex.Span())
	}
	n := uir.NewCall(ctorRef, []*uir.Expr{arg}, ex.Span())
	n.Type = result
	return n
}

func findVariantAnywhere(m *modtree.Module, name string) (modtree.VariantRef, bool) {
	ref, ok := m.Variants[name]
	return ref, ok
}

func (el *exprLowerer) errExpr(span source.Span) *uir.Expr {
	n := uir.NewInt(0, span)
	n.Type = el.l.Types.FreshVar(span)
	return n
}
