package types

import (
	"fmt"
	"strings"
)

// repr produces a cheap canonical string for a type, used only as a
// recursion-cache key (never shown to the user — see format.go for the
// user-facing pretty-printer). It does not follow substitutions, since
// the recursion cache is keyed on the two sides of one unify call as
// originally passed in.
func repr(ty Type) string {
	switch t := ty.(type) {
	case TVar:
		return fmt.Sprintf("v%d", t.ID)
	case TPrim:
		return t.Prim.String()
	case TList:
		return "list<" + repr(t.Elem) + ">"
	case TTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = repr(e)
		}
		return "(" + strings.Join(parts, ",") + ")"
	case TFunc:
		return repr(t.Param) + "->" + repr(t.Result)
	case TNewtype:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = repr(a)
		}
		return fmt.Sprintf("t%d<%s>", t.ID, strings.Join(parts, ","))
	default:
		return "?"
	}
}
