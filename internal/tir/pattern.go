package tir

import "github.com/knotlang/knotc/internal/ids"

// PatternKind mirrors uir.PatternKind one-for-one; specialization never
// changes a pattern's shape, only the types hanging off it.
type PatternKind int

const (
	PWildcard PatternKind = iota
	PBinding
	PTuple
	PBool
	PInt
	PStr
	PVariant
	PListEmpty
	PListCons
)

type Pattern struct {
	Type Type

	kind PatternKind

	Local ids.TLocalID // PBinding

	Elems []*Pattern // PTuple

	BoolVal bool
	IntVal  int64
	StrVal  string

	VariantType ids.TTypeID
	VariantName string
	Sub         *Pattern

	Head *Pattern
	Tail *Pattern
}

func (p *Pattern) KindOf() PatternKind { return p.kind }

func newPattern(kind PatternKind) *Pattern {
	return &Pattern{kind: kind}
}

func NewWildcard() *Pattern { return newPattern(PWildcard) }

func NewBinding(local ids.TLocalID) *Pattern {
	p := newPattern(PBinding)
	p.Local = local
	return p
}

func NewTuplePattern(elems []*Pattern) *Pattern {
	p := newPattern(PTuple)
	p.Elems = elems
	return p
}

func NewBoolPattern(v bool) *Pattern {
	p := newPattern(PBool)
	p.BoolVal = v
	return p
}

func NewIntPattern(v int64) *Pattern {
	p := newPattern(PInt)
	p.IntVal = v
	return p
}

func NewStrPattern(v string) *Pattern {
	p := newPattern(PStr)
	p.StrVal = v
	return p
}

func NewVariantPattern(tid ids.TTypeID, name string, sub *Pattern) *Pattern {
	p := newPattern(PVariant)
	p.VariantType = tid
	p.VariantName = name
	p.Sub = sub
	return p
}

func NewListEmptyPattern() *Pattern { return newPattern(PListEmpty) }

func NewListConsPattern(head, tail *Pattern) *Pattern {
	p := newPattern(PListCons)
	p.Head = head
	p.Tail = tail
	return p
}
