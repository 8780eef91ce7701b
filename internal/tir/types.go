// Package tir is the typed intermediate representation Specialization
// produces: bodies and newtypes
// arenas with an entry body id, every type fully ground — no type
// variables, no generics. The backend consumes this package directly
// and never sees internal/types or internal/uir.
//
// Modeled on internal/ast nodes post-typechecking, reinterpreted:
// the AST-annotation approach never splits an untyped/typed IR
// boundary, instead annotating concrete types directly onto the same
// AST nodes lowering used. Knot keeps the untyped/typed split spec
// §4.4 describes, but carries the same flat enum-tagged-struct node
// shape into both internal/uir and this package.
package tir

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/types"
)

// Type is the ground counterpart of types.Type with the Variable case
// removed — by the time Specialization hands back a tir.Type, every
// variable has been resolved to a concrete shape or defaulted to unit.
type Type interface {
	isType()
}

type TPrim struct{ Prim types.Prim }

func (TPrim) isType() {}

type TList struct{ Elem Type }

func (TList) isType() {}

type TTuple struct{ Elems []Type }

func (TTuple) isType() {}

type TFunc struct{ Param, Result Type }

func (TFunc) isType() {}

// TNewtype references one concrete instantiation of a record or union —
// specialization's `types: (uir-tid, [concrete-type]) -> tir-tid` memo
// means a generic newtype used at two different concrete argument lists
// becomes two distinct TNewtype ids, each carrying no further arguments
// of its own.
type TNewtype struct{ ID ids.TTypeID }

func (TNewtype) isType() {}

var (
	Int  = TPrim{Prim: types.PInt}
	Str  = TPrim{Prim: types.PStr}
	Bool = TPrim{Prim: types.PBool}
	Unit = TPrim{Prim: types.PUnit}
)

// NewtypeKindTag distinguishes a specialized newtype's shape. Alias
// newtypes never reach here — they're transparent and erase entirely
// during specialization.
type NewtypeKindTag int

const (
	KindRecord NewtypeKindTag = iota
	KindUnion
)

type RecordFieldDecl struct {
	Name string
	Type Type
}

// VariantDecl is one specialized union case; BodyID is the already
// (or lazily) specialized constructor body for this exact
// instantiation.
type VariantDecl struct {
	Name    string
	Payload Type // nil when the variant carries no payload
	BodyID  ids.TBodyID
}

// Newtype is one ground instantiation of a user record or union.
type Newtype struct {
	ID   ids.TTypeID
	Name string
	Kind NewtypeKindTag

	Fields   []RecordFieldDecl // KindRecord
	Variants []VariantDecl     // KindUnion
}
