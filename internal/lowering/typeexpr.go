package lowering

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/modtree"
	"github.com/knotlang/knotc/internal/types"
)

// genericScope threads the on-demand generic binding extern
// annotations need: parse the declared type with generics extended on
// demand, so every unseen generic name allocates a fresh variable. The
// same scope is reused for newtype field/variant annotations and
// ascriptions, since all three are just a TypeExpr lowered in the
// context of a set of already-bound generics.
type genericScope struct {
	vars map[string]ids.VarID
}

func newGenericScope() *genericScope {
	return &genericScope{vars: make(map[string]ids.VarID)}
}

// seed pre-binds the scope's generics to a newtype's declared
// (name, var) pairs, so a record/union/alias body's TypeExprs resolve
// its own generic parameters to the same variables Pass 1 allocated.
func (g *genericScope) seed(generics []types.GenericParam) {
	for _, p := range generics {
		g.vars[p.Name] = p.Var
	}
}

// lowerTypeExpr converts a parsed type annotation into a internal/types
// Type, resolving newtype/primitive names against mod (and, through
// mod.Lookup, its submodules), and extending scope with a fresh
// variable the first time any generic name is seen.
func (l *Lowerer) lowerTypeExpr(te ast.TypeExpr, mod *modtree.Module, scope *genericScope) types.Type {
	switch t := te.(type) {
	case *ast.TEGeneric:
		if v, ok := scope.vars[t.Name]; ok {
			return types.TVar{ID: v, Origin: t.Span()}
		}
		fresh := l.Types.FreshVar(t.Span())
		scope.vars[t.Name] = fresh.ID
		return fresh

	case *ast.TEName:
		if len(t.Path) == 1 {
			switch t.Path[0] {
			case "int":
				return types.Int
			case "str":
				return types.Str
			case "bool":
				return types.Bool
			case "unit":
				return types.Unit
			}
		}
		owner := mod
		name := t.Path[len(t.Path)-1]
		if len(t.Path) > 1 {
			var ok bool
			owner, ok = mod.Lookup(t.Path[:len(t.Path)-1])
			if !ok {
				l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, t.Span(),
					fmt.Sprintf("no such module in type path %q", joinSegs(t.Path))))
				return l.Types.FreshVar(t.Span())
			}
		}
		tid, ok := owner.Newtypes[name]
		if !ok {
			l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, t.Span(),
				fmt.Sprintf("unknown type %q", name)))
			return l.Types.FreshVar(t.Span())
		}
		decl := l.Types.Newtype(tid)
		args := make([]types.Type, 0, len(decl.Generics))
		for i := range decl.Generics {
			if i < len(t.Args) {
				args = append(args, l.lowerTypeExpr(t.Args[i], mod, scope))
			} else {
				args = append(args, l.Types.FreshVar(t.Span()))
			}
		}
		if len(t.Args) > len(decl.Generics) {
			l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrTooManyGenerics, t.Span(),
				fmt.Sprintf("%q takes %d generic argument(s)", name, len(decl.Generics))))
		}
		return types.TNewtype{ID: tid, Args: args}

	case *ast.TEFunc:
		return types.TFunc{
			Param:  l.lowerTypeExpr(t.Param, mod, scope),
			Result: l.lowerTypeExpr(t.Result, mod, scope),
		}

	case *ast.TETuple:
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = l.lowerTypeExpr(e, mod, scope)
		}
		return types.TTuple{Elems: elems}

	case *ast.TEList:
		return types.TList{Elem: l.lowerTypeExpr(t.Elem, mod, scope)}

	default:
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, te.Span(), "unhandled type expression shape"))
		return l.Types.FreshVar(te.Span())
	}
}

func joinSegs(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
