package ast

// Pattern is a parsed pattern; kinds are wildcard, binding, tuple,
// boolean, integer, string, variant, list-empty, list-cons.
//
// Refutability is a property computed by Lowering
// (lowerPatternRefutable in internal/lowering/exprs.go, and
// internal/uir.Pattern.Refutable after lowering), not stored on the AST
// node, since it depends only on the node's kind and its sub-patterns and
// is cheap to recompute.
type Pattern interface {
	Node
	patternNode()
}

type PWildcard struct {
	Base
}

func (*PWildcard) patternNode() {}

// PBinding introduces a local: `x`.
type PBinding struct {
	Base
	Name string
}

func (*PBinding) patternNode() {}

type PTuple struct {
	Base
	Elems []Pattern
}

func (*PTuple) patternNode() {}

type PBool struct {
	Base
	Value bool
}

func (*PBool) patternNode() {}

type PInt struct {
	Base
	Value int64
}

func (*PInt) patternNode() {}

type PString struct {
	Base
	Value string
}

func (*PString) patternNode() {}

// PVariant is `some(x)` or a bare `none`; Sub is nil for a payload-less
// variant pattern.
type PVariant struct {
	Base
	TypePath []string
	Name     string
	Sub      Pattern
}

func (*PVariant) patternNode() {}

type PListEmpty struct {
	Base
}

func (*PListEmpty) patternNode() {}

// PListCons is `[head; ..tail]`.
type PListCons struct {
	Base
	Head Pattern
	Tail Pattern
}

func (*PListCons) patternNode() {}
