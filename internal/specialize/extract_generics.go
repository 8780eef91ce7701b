package specialize

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/tir"
	"github.com/knotlang/knotc/internal/types"
)

// extractGenerics structurally walks calleeType (still carrying the
// callee's free variables) in parallel with concrete (the ground type
// the call site actually uses), binding every variable it encounters to
// the corresponding concrete type. A structural
// disagreement is a compiler bug — callers
// panic on the returned error rather than diagnosing it to the user.
func extractGenerics(s *Specializer, calleeType types.Type, concrete tir.Type, out Subst) error {
	calleeType = s.types.Substitute(calleeType)

	if nt, ok := calleeType.(types.TNewtype); ok {
		if decl := s.types.Newtype(nt.ID); decl != nil && decl.Kind == types.KindAlias {
			genSub := make(map[ids.VarID]types.Type, len(decl.Generics))
			for i, g := range decl.Generics {
				if i < len(nt.Args) {
					genSub[g.Var] = nt.Args[i]
				}
			}
			return extractGenerics(s, types.SubstituteGenerics(decl.Alias, genSub), concrete, out)
		}
	}

	if v, ok := calleeType.(types.TVar); ok {
		if existing, ok := out[v.ID]; ok {
			if reprTirType(existing) != reprTirType(concrete) {
				return fmt.Errorf("variable bound to both %s and %s", reprTirType(existing), reprTirType(concrete))
			}
			return nil
		}
		out[v.ID] = concrete
		return nil
	}

	switch l := calleeType.(type) {
	case types.TPrim:
		r, ok := concrete.(tir.TPrim)
		if !ok || r.Prim != l.Prim {
			return fmt.Errorf("shape mismatch on primitive type")
		}
		return nil
	case types.TList:
		r, ok := concrete.(tir.TList)
		if !ok {
			return fmt.Errorf("shape mismatch on list type")
		}
		return extractGenerics(s, l.Elem, r.Elem, out)
	case types.TTuple:
		r, ok := concrete.(tir.TTuple)
		if !ok || len(l.Elems) != len(r.Elems) {
			return fmt.Errorf("shape mismatch on tuple type")
		}
		for i := range l.Elems {
			if err := extractGenerics(s, l.Elems[i], r.Elems[i], out); err != nil {
				return err
			}
		}
		return nil
	case types.TFunc:
		r, ok := concrete.(tir.TFunc)
		if !ok {
			return fmt.Errorf("shape mismatch on function type")
		}
		if err := extractGenerics(s, l.Param, r.Param, out); err != nil {
			return err
		}
		return extractGenerics(s, l.Result, r.Result, out)
	case types.TNewtype:
		r, ok := concrete.(tir.TNewtype)
		if !ok {
			return fmt.Errorf("shape mismatch on newtype")
		}
		concreteArgs := s.typeArgs[r.ID]
		if len(l.Args) != len(concreteArgs) {
			return fmt.Errorf("newtype argument count mismatch")
		}
		for i := range l.Args {
			if err := extractGenerics(s, l.Args[i], concreteArgs[i], out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unhandled type shape %T", calleeType)
	}
}
