package uir

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
)

// ExprKind tags which expression shape a node is.
type ExprKind int

const (
	EInt ExprKind = iota
	EBool
	EStr
	EFormat
	ELocal
	EBodyRef
	ELet
	ERecord
	EWith
	EListEmpty
	EListCons
	ETuple
	EVariant
	ECall
	EBinary
	ETry
	EField
	EMatch
	EBlock
)

// FormatPart mirrors ast.FormatPart once its expression half has been
// lowered.
type FormatPart struct {
	Literal string
	Expr    *Expr // nil for a pure-literal part
}

type FieldInit struct {
	Name string
	Expr *Expr
}

type MatchArm struct {
	Pattern *Pattern
	Expr    *Expr
}

// Expr is every expression kind, carrying a kind, a span and a type slot
// filled in by unification as lowering proceeds.
type Expr struct {
	Span source.Span
	Type types.Type

	kind ExprKind

	IntVal  int64
	BoolVal bool
	StrVal  string

	FormatParts []FormatPart

	// ELocal
	Local ids.ULocalID

	// EBodyRef: the referenced body, and whether call-site instantiation
	// applied (false inside a recursion cycle, to avoid infinite
	// instantiation of a recursive generic call).
	Body         ids.UBodyID
	Instantiated bool

	// ELet
	LetPattern *Pattern
	LetValue   *Expr

	// ERecord / EWith
	RecordType ids.TypeID
	Fields     []FieldInit
	WithTarget *Expr

	// EListCons
	Head *Expr
	Tail *Expr

	// ETuple
	Elems []*Expr

	// EVariant
	VariantType ids.TypeID
	VariantName string
	Arg         *Expr

	// ECall
	Callee *Expr
	Args   []*Expr

	// EBinary
	Op    ast.BinaryOp
	Left  *Expr
	Right *Expr

	// ETry
	TryValue *Expr

	// EField
	Target    *Expr
	FieldName string

	// EMatch
	Subject *Expr
	Arms    []MatchArm

	// EBlock
	Stmts []*Expr
}

func (e *Expr) KindOf() ExprKind { return e.kind }

func newExpr(kind ExprKind, span source.Span) *Expr {
	return &Expr{kind: kind, Span: span}
}

func NewInt(v int64, span source.Span) *Expr {
	e := newExpr(EInt, span)
	e.IntVal = v
	return e
}

func NewBool(v bool, span source.Span) *Expr {
	e := newExpr(EBool, span)
	e.BoolVal = v
	return e
}

func NewStr(v string, span source.Span) *Expr {
	e := newExpr(EStr, span)
	e.StrVal = v
	return e
}

func NewFormat(parts []FormatPart, span source.Span) *Expr {
	e := newExpr(EFormat, span)
	e.FormatParts = parts
	return e
}

func NewLocal(id ids.ULocalID, span source.Span) *Expr {
	e := newExpr(ELocal, span)
	e.Local = id
	return e
}

func NewBodyRef(id ids.UBodyID, instantiated bool, span source.Span) *Expr {
	e := newExpr(EBodyRef, span)
	e.Body = id
	e.Instantiated = instantiated
	return e
}

func NewLet(pat *Pattern, value *Expr, span source.Span) *Expr {
	e := newExpr(ELet, span)
	e.LetPattern = pat
	e.LetValue = value
	return e
}

func NewRecord(tid ids.TypeID, fields []FieldInit, span source.Span) *Expr {
	e := newExpr(ERecord, span)
	e.RecordType = tid
	e.Fields = fields
	return e
}

func NewWith(target *Expr, fields []FieldInit, span source.Span) *Expr {
	e := newExpr(EWith, span)
	e.WithTarget = target
	e.Fields = fields
	return e
}

func NewListEmpty(span source.Span) *Expr {
	return newExpr(EListEmpty, span)
}

func NewListCons(head, tail *Expr, span source.Span) *Expr {
	e := newExpr(EListCons, span)
	e.Head = head
	e.Tail = tail
	return e
}

func NewTuple(elems []*Expr, span source.Span) *Expr {
	e := newExpr(ETuple, span)
	e.Elems = elems
	return e
}

func NewVariant(tid ids.TypeID, name string, arg *Expr, span source.Span) *Expr {
	e := newExpr(EVariant, span)
	e.VariantType = tid
	e.VariantName = name
	e.Arg = arg
	return e
}

func NewCall(callee *Expr, args []*Expr, span source.Span) *Expr {
	e := newExpr(ECall, span)
	e.Callee = callee
	e.Args = args
	return e
}

func NewBinary(op ast.BinaryOp, left, right *Expr, span source.Span) *Expr {
	e := newExpr(EBinary, span)
	e.Op = op
	e.Left = left
	e.Right = right
	return e
}

func NewTry(value *Expr, span source.Span) *Expr {
	e := newExpr(ETry, span)
	e.TryValue = value
	return e
}

func NewFieldAccess(target *Expr, name string, span source.Span) *Expr {
	e := newExpr(EField, span)
	e.Target = target
	e.FieldName = name
	return e
}

func NewMatch(subject *Expr, arms []MatchArm, span source.Span) *Expr {
	e := newExpr(EMatch, span)
	e.Subject = subject
	e.Arms = arms
	return e
}

func NewBlock(stmts []*Expr, span source.Span) *Expr {
	e := newExpr(EBlock, span)
	e.Stmts = stmts
	return e
}
