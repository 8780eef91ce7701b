package ast

import "github.com/knotlang/knotc/internal/source"

// TypeExpr is a parsed type annotation, lowered by internal/lowering into
// a internal/types.Type with on-demand generic binding.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TEName is a primitive (`int`, `str`, `bool`, `unit`) or a newtype
// reference, with any generic arguments: `pair<int, str>`.
type TEName struct {
	Base
	Path []string
	Args []TypeExpr
}

func (*TEName) typeExprNode() {}

// TEGeneric is a generic parameter reference: `'a`.
type TEGeneric struct {
	Base
	Name string
}

func (*TEGeneric) typeExprNode() {}

// TEFunc is `T -> U`.
type TEFunc struct {
	Base
	Param, Result TypeExpr
}

func (*TEFunc) typeExprNode() {}

// TETuple is `[T, U, V]`.
type TETuple struct {
	Base
	Elems []TypeExpr
}

func (*TETuple) typeExprNode() {}

// TEList is `list of T`.
type TEList struct {
	Base
	Elem TypeExpr
}

func (*TEList) typeExprNode() {}

func spanOf(n Node) source.Span {
	if n == nil {
		return source.Span{}
	}
	return n.Span()
}
