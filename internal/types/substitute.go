package types

import "github.com/knotlang/knotc/internal/ids"

// Substitute deep-copies ty, following every variable to its bound
// target all the way down (unlike chase, which only follows the chain
// for the top-level type). This is the operation Specialization uses to
// turn an inferred, still-variable-laden type into the fully concrete
// type it memoizes bodies under -> ty with no
// remaining free variables, given a finished Context").
func (c *Context) Substitute(ty Type) Type {
	ty = c.chase(ty)
	switch t := ty.(type) {
	case TVar:
		return t
	case TList:
		return TList{Elem: c.Substitute(t.Elem)}
	case TTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.Substitute(e)
		}
		return TTuple{Elems: elems}
	case TFunc:
		return TFunc{Param: c.Substitute(t.Param), Result: c.Substitute(t.Result)}
	case TNewtype:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.Substitute(a)
		}
		return TNewtype{ID: t.ID, Args: args}
	default:
		return ty
	}
}

// FreeVars reports the distinct free variables remaining in ty after
// substitution, in occurrence order (the same walk Format uses to name
// variables).
func (c *Context) FreeVars(ty Type) []ids.VarID {
	return c.collectVars(ty, nil)
}
