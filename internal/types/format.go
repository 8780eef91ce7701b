package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knotlang/knotc/internal/ids"
)

// Format renders ty the way a user sees it: generalized over its free
// variables with base-26 names (a, b, ..., z, aa, ab, ...) and, when any
// of those variables carry bounds, a trailing `where` clause").
//
// Modeled on internal/typesystem formatting in
// type_printer.go, which walks the same Type sum and special-cases
// function/tuple/list application; Knot adds the `where` clause since
// structural bounds have no counterpart in trait system.
func (c *Context) Format(ty Type) string {
	names := make(map[ids.VarID]string)
	order := c.collectVars(ty, nil)
	for i, id := range order {
		names[id] = varName(i)
	}
	body := c.formatWith(ty, names)

	var clauses []string
	for _, id := range order {
		b := c.bounds[id]
		if b == nil || b.Empty() {
			continue
		}
		clauses = append(clauses, boundsClause(names[id], b, c, names))
	}
	if len(clauses) == 0 {
		return body
	}
	return body + " where " + strings.Join(clauses, ", ")
}

func boundsClause(name string, b *Bounds, c *Context, names map[ids.VarID]string) string {
	var parts []string
	if b.Number {
		parts = append(parts, name+" is number")
	}
	fieldNames := make([]string, 0, len(b.Fields))
	for f := range b.Fields {
		fieldNames = append(fieldNames, f)
	}
	sort.Strings(fieldNames)
	for _, f := range fieldNames {
		parts = append(parts, fmt.Sprintf("%s.%s: %s", name, f, c.formatWith(b.Fields[f], names)))
	}
	return strings.Join(parts, ", ")
}

// collectVars walks ty depth-first (chasing substitutions) and appends
// each distinct free variable id the first time it's seen, in occurrence
// order — the order Format assigns display names in.
func (c *Context) collectVars(ty Type, seen []ids.VarID) []ids.VarID {
	ty = c.chase(ty)
	switch t := ty.(type) {
	case TVar:
		for _, id := range seen {
			if id == t.ID {
				return seen
			}
		}
		return append(seen, t.ID)
	case TList:
		return c.collectVars(t.Elem, seen)
	case TTuple:
		for _, e := range t.Elems {
			seen = c.collectVars(e, seen)
		}
		return seen
	case TFunc:
		seen = c.collectVars(t.Param, seen)
		return c.collectVars(t.Result, seen)
	case TNewtype:
		for _, a := range t.Args {
			seen = c.collectVars(a, seen)
		}
		return seen
	default:
		return seen
	}
}

func (c *Context) formatWith(ty Type, names map[ids.VarID]string) string {
	ty = c.chase(ty)
	switch t := ty.(type) {
	case TVar:
		if n, ok := names[t.ID]; ok {
			return "'" + n
		}
		return fmt.Sprintf("'v%d", t.ID)
	case TPrim:
		return t.Prim.String()
	case TList:
		return "list of " + c.formatWith(t.Elem, names)
	case TTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = c.formatWith(e, names)
		}
		return "tuple of (" + strings.Join(parts, ", ") + ")"
	case TFunc:
		param := c.formatWith(t.Param, names)
		if _, ok := t.Param.(TFunc); ok {
			param = "(" + param + ")"
		}
		return param + " -> " + c.formatWith(t.Result, names)
	case TNewtype:
		decl := c.newtypes[t.ID]
		name := "<unknown>"
		if decl != nil {
			name = decl.Name
		}
		if len(t.Args) == 0 {
			return name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = c.formatWith(a, names)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	default:
		return "?"
	}
}

// varName produces the base-26 letter sequence a, b, ..., z, aa, ab, ...
// used for generalized type-variable display names.
func varName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < 26 {
		return string(letters[i])
	}
	return varName(i/26-1) + string(letters[i%26])
}
