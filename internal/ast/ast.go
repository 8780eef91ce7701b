// Package ast is the external interface from the parser into Lowering
//: a module tree of files, each an ordered list of
// items (import / newtype / function / extern / ascription), carrying
// spans for diagnostics.
//
// Modeled on internal/ast package: a small Node interface
// plus many concrete statement/expression structs, each embedding a
// token/span and implementing a single-method tag interface
// (statementNode/expressionNode in prior art; itemNode/exprNode/
// patternNode/typeNode here). Doc comments above each type show the
// concrete-syntax shape the way ast_core.go does ("kVAL :- 123").
package ast

import "github.com/knotlang/knotc/internal/source"

// Node is the Base interface every AST node implements.
type Node interface {
	Span() source.Span
}

// File is one leaf of the module tree: a single source file's ordered
// item list.
type File struct {
	Path  string
	Items []Item
}

// Item is a top-level declaration: import, newtype, function, extern or
// ascription.
type Item interface {
	Node
	itemNode()
}

type Base struct{ SpanV source.Span }

func (b Base) Span() source.Span { return b.SpanV }

// Import is `import a.b.c`.
type Import struct {
	Base
	Path []string
}

func (*Import) itemNode() {}

// NewtypeDecl is `type name<'a, 'b> = record { ... }` /
// `= union { ... }` / `= alias T`.
type NewtypeDecl struct {
	Base
	Name     string
	Generics []string
	Kind     NewtypeKind
}

func (*NewtypeDecl) itemNode() {}

// NewtypeKind is one of RecordKind, UnionKind or AliasKind.
type NewtypeKind interface {
	newtypeKindNode()
}

// RecordKind is `record { x: int; y: int }`.
type RecordKind struct {
	Fields []RecordField
}

func (RecordKind) newtypeKindNode() {}

type RecordField struct {
	Name string
	Type TypeExpr
}

// UnionKind is `union { red; some(int) }`.
type UnionKind struct {
	Variants []VariantDecl
}

func (UnionKind) newtypeKindNode() {}

type VariantDecl struct {
	Name    string
	Payload TypeExpr // nil if the variant carries no payload
}

// AliasKind is `alias int`.
type AliasKind struct {
	Type TypeExpr
}

func (AliasKind) newtypeKindNode() {}

// FuncDecl is `fn name p1 p2 -> body`.
type FuncDecl struct {
	Base
	Name   string
	Params []Pattern
	Body   Expr
}

func (*FuncDecl) itemNode() {}

// ExternDecl is `extern name : T`.
type ExternDecl struct {
	Base
	Name string
	Type TypeExpr
}

func (*ExternDecl) itemNode() {}

// Ascription is `fn name : T` (a standalone type signature for a function
// declared elsewhere in the same file).
type Ascription struct {
	Base
	Name string
	Type TypeExpr
}

func (*Ascription) itemNode() {}
