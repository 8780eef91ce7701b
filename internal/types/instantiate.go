package types

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

// Instantiate takes a possibly-generalized type and returns a fresh copy
// with every free variable replaced by a brand-new one, carrying forward
// that variable's bounds as an independent clone -> ty'"). Each call allocates its own substitution so
// two instantiations of the same generalized type never share variables,
// which is what lets two call sites of one polymorphic body specialize
// independently.
//
// Modeled on internal/typesystem instantiate step (called
// from analyzer.go at every use of a generic function symbol), which
// walks the scheme's bound variables and builds a fresh TVar per one;
// Knot's version also clones structural bounds, which prior art's
// trait-based scheme does not need to do since traits are resolved by
// dictionary lookup rather than carried per-variable.
func (c *Context) Instantiate(ty Type, span source.Span) Type {
	sub := make(map[ids.VarID]Type)
	return c.instantiate(ty, sub, span)
}

func (c *Context) instantiate(ty Type, sub map[ids.VarID]Type, span source.Span) Type {
	ty = c.chase(ty)
	switch t := ty.(type) {
	case TVar:
		if fresh, ok := sub[t.ID]; ok {
			return fresh
		}
		fresh := c.FreshVar(span)
		sub[t.ID] = fresh
		if old := c.bounds[t.ID]; old != nil && !old.Empty() {
			clone := old.clone()
			clone.Fields = instantiateFieldBounds(c, clone.Fields, sub, span)
			c.bounds[fresh.ID] = clone
		}
		return fresh
	case TList:
		return TList{Elem: c.instantiate(t.Elem, sub, span)}
	case TTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.instantiate(e, sub, span)
		}
		return TTuple{Elems: elems}
	case TFunc:
		return TFunc{Param: c.instantiate(t.Param, sub, span), Result: c.instantiate(t.Result, sub, span)}
	case TNewtype:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.instantiate(a, sub, span)
		}
		return TNewtype{ID: t.ID, Args: args}
	default:
		return ty
	}
}

func instantiateFieldBounds(c *Context, fields map[string]Type, sub map[ids.VarID]Type, span source.Span) map[string]Type {
	out := make(map[string]Type, len(fields))
	for name, ty := range fields {
		out[name] = c.instantiate(ty, sub, span)
	}
	return out
}
