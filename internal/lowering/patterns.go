package lowering

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerPattern lowers p against subject, the type the pattern is
// matched against. Bindings
// introduced along the way are added to el's current scope.
func (el *exprLowerer) lowerPattern(p ast.Pattern, subject types.Type) *uir.Pattern {
	switch pt := p.(type) {
	case *ast.PWildcard:
		up := uir.NewWildcard(pt.Span())
		up.Type = subject
		return up

	case *ast.PBinding:
		local := el.bind(pt.Name)
		el.body.SetLocalType(local, subject)
		up := uir.NewBinding(local, pt.Span())
		up.Type = subject
		return up

	case *ast.PTuple:
		elemVars := make([]types.Type, len(pt.Elems))
		for i := range elemVars {
			elemVars[i] = el.l.Types.FreshVar(pt.Span())
		}
		el.l.Types.Unify(subject, types.TTuple{Elems: elemVars}, pt.Span())
		elems := make([]*uir.Pattern, len(pt.Elems))
		for i, sub := range pt.Elems {
			elems[i] = el.lowerPattern(sub, elemVars[i])
		}
		up := uir.NewTuplePattern(elems, pt.Span())
		up.Type = subject
		return up

	case *ast.PBool:
		el.l.Types.Unify(subject, types.Bool, pt.Span())
		up := uir.NewBoolPattern(pt.Value, pt.Span())
		up.Type = subject
		return up

	case *ast.PInt:
		el.l.Types.Unify(subject, types.Int, pt.Span())
		up := uir.NewIntPattern(pt.Value, pt.Span())
		up.Type = subject
		return up

	case *ast.PString:
		el.l.Types.Unify(subject, types.Str, pt.Span())
		up := uir.NewStrPattern(pt.Value, pt.Span())
		up.Type = subject
		return up

	case *ast.PVariant:
		owner := el.module
		if len(pt.TypePath) > 0 {
			var ok bool
			owner, ok = el.module.Lookup(pt.TypePath)
			if !ok {
				el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, pt.Span(),
					"no such module in variant pattern path"))
				return el.errPattern(pt.Span(), subject)
			}
		}
		ref, ok := owner.Variants[pt.Name]
		if !ok {
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, pt.Span(),
				fmt.Sprintf("unknown variant %q", pt.Name)))
			return el.errPattern(pt.Span(), subject)
		}
		decl := el.l.Types.Newtype(ref.NewtypeID)
		el.l.Types.Unify(subject, instantiatedNewtypeShape(el.l.Types, decl, pt.Span()), pt.Span())


		var payload types.Type
		for _, v := range decl.Variants {
			if v.Name == pt.Name {
				payload = v.Payload
				break
			}
		}
		var sub *uir.Pattern
		switch {
		case pt.Sub != nil && payload == nil:
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrVariantNoPayload, pt.Span(),
				fmt.Sprintf("variant %q carries no payload", pt.Name)))
		case pt.Sub == nil && payload != nil:
			el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrVariantNeedsArg, pt.Span(),
				fmt.Sprintf("variant %q requires a sub-pattern", pt.Name)))
		case pt.Sub != nil:
			sub = el.lowerPattern(pt.Sub, payload)
		}
		up := uir.NewVariantPattern(ref.NewtypeID, pt.Name, sub, pt.Span())
		up.Type = subject
		return up

	case *ast.PListEmpty:
		elem := el.l.Types.FreshVar(pt.Span())
		el.l.Types.Unify(subject, types.TList{Elem: elem}, pt.Span())
		up := uir.NewListEmptyPattern(pt.Span())
		up.Type = subject
		return up

	case *ast.PListCons:
		elem := el.l.Types.FreshVar(pt.Span())
		el.l.Types.Unify(subject, types.TList{Elem: elem}, pt.Span())
		head := el.lowerPattern(pt.Head, elem)
		tail := el.lowerPattern(pt.Tail, subject)
		up := uir.NewListConsPattern(head, tail, pt.Span())
		up.Type = subject
		return up

	default:
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, p.Span(), "unhandled pattern shape"))
		return el.errPattern(p.Span(), subject)
	}
}

func (el *exprLowerer) errPattern(span source.Span, subject types.Type) *uir.Pattern {
	up := uir.NewWildcard(span)
	up.Type = subject
	return up
}

// instantiatedNewtypeShape builds a TNewtype application for decl with
// one fresh variable per declared generic, used as the subject shape a
// bare variant pattern/path constrains its subject to.
func instantiatedNewtypeShape(ctx *types.Context, decl *types.Newtype, span source.Span) types.Type {
	args := make([]types.Type, len(decl.Generics))
	for i := range decl.Generics {
		args[i] = ctx.FreshVar(span)
	}
	return types.TNewtype{ID: decl.ID, Args: args}
}
