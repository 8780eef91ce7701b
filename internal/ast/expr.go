package ast

// Expr is a parsed expression: integer, boolean, string, format-string,
// local/body reference (both collapse to EPath; Lowering's path
// resolution decides which), let-binding, record construction, record
// update, list-empty, list-cons, tuple, variant constructor, call,
// binary op, try, field access, match, block.
type Expr interface {
	Node
	exprNode()
}

type EInt struct {
	Base
	Value int64
}

func (*EInt) exprNode() {}

type EBool struct {
	Base
	Value bool
}

func (*EBool) exprNode() {}

type EString struct {
	Base
	Value string
}

func (*EString) exprNode() {}

// FormatPart is one piece of a format-string literal: either a literal
// chunk or a re-tokenized/re-parsed `{expr}` interpolation.
type FormatPart struct {
	Literal string
	Expr    Expr // nil when Literal is set
}

type EFormat struct {
	Base
	Parts []FormatPart
}

func (*EFormat) exprNode() {}

// EPath is a dotted name reference; length 1 resolves through local
// scope, capture, then same-module bodies; length ≥2
// addresses a body in a module directly.
type EPath struct {
	Base
	Segments []string
}

func (*EPath) exprNode() {}

// ELet is `let pattern = value` — an expression valued at unit, used
// inside a block to introduce bindings visible to the rest of that
// block.
type ELet struct {
	Base
	Pattern Pattern
	Value   Expr
}

func (*ELet) exprNode() {}

type FieldInit struct {
	Name  string
	Value Expr
}

// ERecord is `TypeName{ field: value, ... }`. The parser never fills
// TypeArgs: explicit generic arguments are not accepted before the `{`.
type ERecord struct {
	Base
	TypePath []string
	TypeArgs []TypeExpr
	Fields   []FieldInit
}

func (*ERecord) exprNode() {}

// EWith is `target with { field: value, ... }`.
type EWith struct {
	Base
	Target Expr
	Fields []FieldInit
}

func (*EWith) exprNode() {}

type EListEmpty struct {
	Base
}

func (*EListEmpty) exprNode() {}

// EListCons is `[a, b, c; ..tail]`; Tail is nil for a plain literal list.
type EListCons struct {
	Base
	Items []Expr
	Tail  Expr
}

func (*EListCons) exprNode() {}

type ETuple struct {
	Base
	Elems []Expr
}

func (*ETuple) exprNode() {}

// EVariant constructs a union value: `red` or `some(5)`, optionally
// qualified by the union's path.
type EVariant struct {
	Base
	TypePath []string
	Name     string
	Arg      Expr // nil when the variant carries no payload
}

func (*EVariant) exprNode() {}

type ECall struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*ECall) exprNode() {}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	// OpShl/OpShr are parsed (the lexer recognizes `<<`/`>>`) and
	// pretty-printed, but Lowering has no case for them yet — using one
	// raises an internal-error diagnostic rather than silently
	// miscompiling.
	OpShl
	OpShr
)

type EBinary struct {
	Base
	Op       BinaryOp
	Lhs, Rhs Expr
}

func (*EBinary) exprNode() {}

// ETry is `value?`: lowered to a uir try node (see
// internal/lowering/exprs.go's ETry case), kept through specialization
// and emitted by the backend.
type ETry struct {
	Base
	Value Expr
}

func (*ETry) exprNode() {}

type EField struct {
	Base
	Target Expr
	Name   string
}

func (*EField) exprNode() {}

type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

type EMatch struct {
	Base
	Subject Expr
	Arms    []MatchArm
}

func (*EMatch) exprNode() {}

type EBlock struct {
	Base
	Exprs []Expr
}

func (*EBlock) exprNode() {}

// ELambda is `|x, y| body`; closure capture is resolved by Lowering
//, not by the parser.
type ELambda struct {
	Base
	Params []Pattern
	Body   Expr
}

func (*ELambda) exprNode() {}
