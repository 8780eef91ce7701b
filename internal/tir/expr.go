package tir

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/ids"
)

// ExprKind mirrors uir.ExprKind; specialization is a type-driven
// rewrite, not a shape-changing one.
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

type FormatPart struct {
	Literal string
	Expr    *Expr
}

type FieldInit struct {
	Name string
	Expr *Expr
}

type MatchArm struct {
	Pattern *Pattern
	Expr    *Expr
}

type Expr struct {
	Type Type

	kind ExprKind

	IntVal  int64
	BoolVal bool
	StrVal  string

	FormatParts []FormatPart

	Local ids.TLocalID

	Body ids.TBodyID

	LetPattern *Pattern
	LetValue   *Expr

	RecordType ids.TTypeID
	Fields     []FieldInit
	WithTarget *Expr

	Head *Expr
	Tail *Expr

	Elems []*Expr

	VariantType ids.TTypeID
	VariantName string
	Arg         *Expr

	Callee *Expr
	Args   []*Expr

	Op    ast.BinaryOp
	Left  *Expr
	Right *Expr

	TryValue *Expr

	Target    *Expr
	FieldName string

	Subject *Expr
	Arms    []MatchArm

	Stmts []*Expr
}

func (e *Expr) KindOf() ExprKind { return e.kind }

func newExpr(kind ExprKind) *Expr {
	return &Expr{kind: kind}
}

func NewInt(v int64) *Expr {
	e := newExpr(EInt)
	e.IntVal = v
	return e
}

func NewBool(v bool) *Expr {
	e := newExpr(EBool)
	e.BoolVal = v
	return e
}

func NewStr(v string) *Expr {
	e := newExpr(EStr)
	e.StrVal = v
	return e
}

func NewFormat(parts []FormatPart) *Expr {
	e := newExpr(EFormat)
	e.FormatParts = parts
	return e
}

func NewLocal(id ids.TLocalID) *Expr {
	e := newExpr(ELocal)
	e.Local = id
	return e
}

func NewBodyRef(id ids.TBodyID) *Expr {
	e := newExpr(EBodyRef)
	e.Body = id
	return e
}

func NewLet(pat *Pattern, value *Expr) *Expr {
	e := newExpr(ELet)
	e.LetPattern = pat
	e.LetValue = value
	return e
}

func NewRecord(tid ids.TTypeID, fields []FieldInit) *Expr {
	e := newExpr(ERecord)
	e.RecordType = tid
	e.Fields = fields
	return e
}

func NewWith(target *Expr, fields []FieldInit) *Expr {
	e := newExpr(EWith)
	e.WithTarget = target
	e.Fields = fields
	return e
}

func NewListEmpty() *Expr { return newExpr(EListEmpty) }

func NewListCons(head, tail *Expr) *Expr {
	e := newExpr(EListCons)
	e.Head = head
	e.Tail = tail
	return e
}

func NewTuple(elems []*Expr) *Expr {
	e := newExpr(ETuple)
	e.Elems = elems
	return e
}

func NewVariant(tid ids.TTypeID, name string, arg *Expr) *Expr {
	e := newExpr(EVariant)
	e.VariantType = tid
	e.VariantName = name
	e.Arg = arg
	return e
}

func NewCall(callee *Expr, args []*Expr) *Expr {
	e := newExpr(ECall)
	e.Callee = callee
	e.Args = args
	return e
}

func NewBinary(op ast.BinaryOp, left, right *Expr) *Expr {
	e := newExpr(EBinary)
	e.Op = op
	e.Left = left
	e.Right = right
	return e
}

func NewTry(value *Expr) *Expr {
	e := newExpr(ETry)
	e.TryValue = value
	return e
}

func NewFieldAccess(target *Expr, name string) *Expr {
	e := newExpr(EField)
	e.Target = target
	e.FieldName = name
	return e
}

func NewMatch(subject *Expr, arms []MatchArm) *Expr {
	e := newExpr(EMatch)
	e.Subject = subject
	e.Arms = arms
	return e
}

func NewBlock(stmts []*Expr) *Expr {
	e := newExpr(EBlock)
	e.Stmts = stmts
	return e
}
