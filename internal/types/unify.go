package types

import (
	"fmt"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

// Unify imposes equality between lhs and rhs at span. Modeled on internal/typesystem/unify.go: chase
// substitutions first, short-circuit identical sides, unwrap one-step
// aliases before comparing applications, then match constructors
// pointwise — UnifyWithResolver(t1, t2, resolver) plays the
// same role with an external Resolver in place of Knot's Context owning
// the newtype table directly.
func (c *Context) Unify(lhs, rhs Type, span source.Span) {
	lhs = c.chase(lhs)
	rhs = c.chase(rhs)

	if sameType(lhs, rhs) {
		return
	}

	key := recursionKey{a: repr(lhs), b: repr(rhs)}
	if c.recursionCache[key] {
		return
	}
	c.recursionCache[key] = true
	defer delete(c.recursionCache, key)

	if v, ok := lhs.(TVar); ok {
		c.bind(v, rhs, span)
		return
	}
	if v, ok := rhs.(TVar); ok {
		c.bind(v, lhs, span)
		return
	}

	// Alias transparency: unwrap one step and retry.
	if nt, ok := lhs.(TNewtype); ok {
		if decl := c.newtypes[nt.ID]; decl != nil && decl.Kind == KindAlias {
			c.Unify(c.instantiateAlias(decl, nt.Args), rhs, span)
			return
		}
	}
	if nt, ok := rhs.(TNewtype); ok {
		if decl := c.newtypes[nt.ID]; decl != nil && decl.Kind == KindAlias {
			c.Unify(lhs, c.instantiateAlias(decl, nt.Args), span)
			return
		}
	}

	switch l := lhs.(type) {
	case TPrim:
		r, ok := rhs.(TPrim)
		if !ok || r.Prim != l.Prim {
			c.reportMismatch(span, lhs, rhs, diagnostics.ErrUnifyMismatch, "cannot unify primitive types")
			return
		}
	case TList:
		r, ok := rhs.(TList)
		if !ok {
			c.reportMismatch(span, lhs, rhs, diagnostics.ErrUnifyMismatch, "cannot unify list with non-list")
			return
		}
		c.Unify(l.Elem, r.Elem, span)
	case TTuple:
		r, ok := rhs.(TTuple)
		if !ok {
			c.reportMismatch(span, lhs, rhs, diagnostics.ErrUnifyMismatch, "cannot unify tuple with non-tuple")
			return
		}
		if len(l.Elems) != len(r.Elems) {
			c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrTupleArity, span,
				fmt.Sprintf("tuple arity mismatch: %d vs %d", len(l.Elems), len(r.Elems))))
			return
		}
		for i := range l.Elems {
			c.Unify(l.Elems[i], r.Elems[i], span)
		}
	case TFunc:
		r, ok := rhs.(TFunc)
		if !ok {
			c.reportMismatch(span, lhs, rhs, diagnostics.ErrUnifyMismatch, "cannot unify function type with non-function")
			return
		}
		c.Unify(l.Param, r.Param, span)
		c.Unify(l.Result, r.Result, span)
	case TNewtype:
		r, ok := rhs.(TNewtype)
		if !ok || r.ID != l.ID {
			c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrNewtypeMismatch, span,
				fmt.Sprintf("cannot unify %s with a different type", c.nameOf(l.ID))))
			return
		}
		for i := range l.Args {
			c.Unify(l.Args[i], r.Args[i], span)
		}
	default:
		c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, span, "unify: unhandled type shape"))
	}
}

func (c *Context) nameOf(id ids.TypeID) string {
	if nt := c.newtypes[id]; nt != nil {
		return nt.Name
	}
	return "<unknown type>"
}

// Number asserts that ty can be used where a numeric value is required
//"): a variable picks up the Number bound
// for later re-assertion on bind; a concrete type must already be int.
func (c *Context) Number(ty Type, span source.Span) {
	ty = c.chase(ty)
	if v, ok := ty.(TVar); ok {
		c.boundsOf(v.ID).Number = true
		return
	}
	p, ok := ty.(TPrim)
	if !ok || p.Prim != PInt {
		c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrNotNumeric, span,
			fmt.Sprintf("expected a numeric type, found %s", c.Format(ty))))
	}
}

// Field asserts that ty has a field named name of type expected (spec
// §4.1 "field(ty, name, expected, span)"): a variable picks up the field
// bound (unifying against any bound already recorded for that name); a
// concrete record newtype is checked directly against its declared
// fields.
func (c *Context) Field(ty Type, name string, expected Type, span source.Span) {
	ty = c.chase(ty)
	if v, ok := ty.(TVar); ok {
		b := c.boundsOf(v.ID)
		if existing, ok := b.Fields[name]; ok {
			c.Unify(existing, expected, span)
			return
		}
		b.Fields[name] = expected
		return
	}
	nt, ok := ty.(TNewtype)
	if !ok {
		c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrNoSuchField, span,
			fmt.Sprintf("%s has no field %q", c.Format(ty), name)))
		return
	}
	decl := c.newtypes[nt.ID]
	if decl == nil || decl.Kind != KindRecord {
		c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrNoSuchField, span,
			fmt.Sprintf("%s has no field %q", c.Format(ty), name)))
		return
	}
	sub := make(map[ids.VarID]Type, len(decl.Generics))
	for i, g := range decl.Generics {
		if i < len(nt.Args) {
			sub[g.Var] = nt.Args[i]
		}
	}
	for _, f := range decl.Fields {
		if f.Name == name {
			c.Unify(substituteVars(f.Type, sub), expected, span)
			return
		}
	}
	c.report(diagnostics.New(diagnostics.Error, diagnostics.ErrNoSuchField, span,
		fmt.Sprintf("%s has no field %q", c.Format(ty), name)))
}

func sameType(a, b Type) bool {
	av, aok := a.(TVar)
	bv, bok := b.(TVar)
	if aok && bok {
		return av.ID == bv.ID
	}
	return false
}

func (c *Context) reportMismatch(span source.Span, lhs, rhs Type, code diagnostics.Code, msg string) {
	c.report(diagnostics.New(diagnostics.Error, code, span, msg).
		With(originSpan(lhs), "this has type "+c.Format(lhs)).
		With(originSpan(rhs), "this has type "+c.Format(rhs)))
}

func originSpan(ty Type) source.Span {
	if v, ok := ty.(TVar); ok {
		return v.Origin
	}
	return source.Span{}
}

// instantiateAlias substitutes an alias newtype's declared generics with
// the concrete argument list and returns its one-step-unfolded body.
func (c *Context) instantiateAlias(decl *Newtype, args []Type) Type {
	sub := make(map[ids.VarID]Type, len(decl.Generics))
	for i, g := range decl.Generics {
		if i < len(args) {
			sub[g.Var] = args[i]
		}
	}
	return substituteVars(decl.Alias, sub)
}

// SubstituteGenerics deep-rewrites every TVar in ty whose id appears in
// sub, leaving the rest of the structure untouched. Exported for
// Lowering's record-literal call site and Specialization's alias
// unfolding in extractGenerics.
func SubstituteGenerics(ty Type, sub map[ids.VarID]Type) Type {
	return substituteVars(ty, sub)
}

// substituteVars is SubstituteGenerics' unexported implementation,
// shared with alias unfolding in Unify.
func substituteVars(ty Type, sub map[ids.VarID]Type) Type {
	switch t := ty.(type) {
	case TVar:
		if repl, ok := sub[t.ID]; ok {
			return repl
		}
		return t
	case TList:
		return TList{Elem: substituteVars(t.Elem, sub)}
	case TTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = substituteVars(e, sub)
		}
		return TTuple{Elems: elems}
	case TFunc:
		return TFunc{Param: substituteVars(t.Param, sub), Result: substituteVars(t.Result, sub)}
	case TNewtype:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = substituteVars(a, sub)
		}
		return TNewtype{ID: t.ID, Args: args}
	default:
		return ty
	}
}
