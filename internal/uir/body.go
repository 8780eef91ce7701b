// Package uir is the untyped intermediate representation Lowering
// produces: bodies (functions, variant constructors, externs and
// lambdas), expressions and patterns, all still carrying inference
// variables rather than ground types. Specialization consumes this
// package's Program and produces a parallel, variable-free tir.Program.
//
// Modeled on an AST-as-IR approach (internal/ast nodes double as both
// surface syntax and the structure the analyzer annotates in place);
// Knot instead gives Lowering its own arena-indexed IR distinct from
// internal/ast, treating bodies/locals as index-stable arenas rather
// than an in-place-annotated tree.
package uir

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/types"
)

// LocalDecl is one arena slot in a body's locals list").
type LocalDecl struct {
	Name string
	Type types.Type
}

// Body is the shape shared by functions, variant constructors, externs
// and lambdas: a name, a locals arena, an ordered
// list of input patterns (each binding into Locals), an optional
// expression (nil means extern), and a top-level type.
type Body struct {
	ID     ids.UBodyID
	Name   string
	Module ids.ModuleID

	Locals []LocalDecl
	Inputs []*Pattern

	// Expr is nil for an extern declaration").
	Expr *Expr

	Type types.Type

	// Captures lists, in order, the locals this body's closure frame
	// threads in from an enclosing body — empty for top-level functions,
	// extern stubs and variant constructors.
	Captures []CaptureSlot
}

// CaptureSlot records one captured variable: the local id it occupies in
// this body, and the local id in the immediately enclosing body it was
// threaded from.
type CaptureSlot struct {
	Local       ids.ULocalID
	OuterLocal  ids.ULocalID
	OuterBodyID ids.UBodyID
}

func (b *Body) AddLocal(name string, ty types.Type) ids.ULocalID {
	id := ids.ULocalID(len(b.Locals))
	b.Locals = append(b.Locals, LocalDecl{Name: name, Type: ty})
	return id
}

func (b *Body) LocalType(id ids.ULocalID) types.Type {
	return b.Locals[id].Type
}

func (b *Body) SetLocalType(id ids.ULocalID, ty types.Type) {
	b.Locals[id].Type = ty
}

// Program is the whole-program untyped IR: every body allocated across
// every module, indexed by id.
type Program struct {
	Bodies []*Body
}

func NewProgram() *Program {
	return &Program{}
}

func (p *Program) NewBody(name string, module ids.ModuleID) *Body {
	id := ids.UBodyID(len(p.Bodies))
	b := &Body{ID: id, Name: name, Module: module}
	p.Bodies = append(p.Bodies, b)
	return b
}

func (p *Program) Body(id ids.UBodyID) *Body {
	return p.Bodies[id]
}
