// Package types is the Type Context: it owns the newtype
// registry, the substitution table, per-variable structural bounds, and
// a unification recursion cache, and offers unification, instantiation,
// formatting and deep substitution.
//
// Modeled on internal/typesystem package: a Type interface
// with concrete TVar/TApp/TCon/TFunc/TTuple/TRecord/TUnion structs, and a
// free-standing Unify(t1, t2 Type) (Subst, error) function that threads a
// Resolver for alias lookups (internal/typesystem/unify.go). Knot keeps
// the same interface-plus-concrete-struct shape but folds unification,
// substitution and bounds into methods on one long-lived *Context per
// compilation, since Knot treats them as operations of a single stateful
// owner rather than pure functions over an external resolver.
package types

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

// Type is a Variable, or one of the four Application shapes (primitive,
// list, tuple, function) plus newtype.
type Type interface {
	isType()
}

// TVar is an inference variable, carrying its
// own identity and an origin span used in diagnostics ("lhs origin",
// "rhs origin" in the three-label unification diagnostic).
type TVar struct {
	ID     ids.VarID
	Origin source.Span
}

func (TVar) isType() {}

// Prim enumerates the primitive application shapes.
type Prim int

const (
	PInt Prim = iota
	PStr
	PBool
	PUnit
)

func (p Prim) String() string {
	switch p {
	case PInt:
		return "int"
	case PStr:
		return "str"
	case PBool:
		return "bool"
	default:
		return "unit"
	}
}

type TPrim struct{ Prim Prim }

func (TPrim) isType() {}

// TList is `list of T`.
type TList struct{ Elem Type }

func (TList) isType() {}

// TTuple is `tuple of [T...]`.
type TTuple struct{ Elems []Type }

func (TTuple) isType() {}

// TFunc is `T -> U`.
type TFunc struct{ Param, Result Type }

func (TFunc) isType() {}

// TNewtype is `newtype(tid, [T...])`; len(Args) == the newtype's declared
// arity is an invariant enforced at construction.
type TNewtype struct {
	ID   ids.TypeID
	Args []Type
}

func (TNewtype) isType() {}

var (
	Int  = TPrim{Prim: PInt}
	Str  = TPrim{Prim: PStr}
	Bool = TPrim{Prim: PBool}
	Unit = TPrim{Prim: PUnit}
)

// NewtypeKindTag distinguishes a newtype's Kind.
type NewtypeKindTag int

const (
	KindRecord NewtypeKindTag = iota
	KindUnion
	KindAlias
)

// GenericParam pairs a user-written generic name with the specific
// variable it's bound to, so each use site can instantiate a fresh
// substitution from it.
type GenericParam struct {
	Name string
	Var  ids.VarID
}

type RecordFieldDecl struct {
	Name string
	Type Type
}

// VariantTypeDecl is one union case; BodyID is the constructor body
// allocated for it in Lowering Pass 1.
type VariantTypeDecl struct {
	Name    string
	Payload Type // nil when the variant carries no payload
	BodyID  ids.UBodyID
}

// Newtype is a user declaration: record, union or alias.
type Newtype struct {
	ID       ids.TypeID
	Name     string
	Generics []GenericParam
	Kind     NewtypeKindTag

	Fields   []RecordFieldDecl // KindRecord
	Variants []VariantTypeDecl // KindUnion
	Alias    Type              // KindAlias

	Arity int
}
