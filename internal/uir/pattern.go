package uir

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
)

// PatternKind tags which pattern shape a node is.
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

// Pattern carries a kind, a span, and the subject type it was matched
// against.
type Pattern struct {
	Span source.Span
	Type types.Type

	kind PatternKind

	Local ids.ULocalID // PBinding

	Elems []*Pattern // PTuple

	BoolVal bool   // PBool
	IntVal  int64  // PInt
	StrVal  string // PStr

	// PVariant: the union newtype being matched, the variant name, and
	// an optional sub-pattern (nil for a payload-less variant).
	VariantType ids.TypeID
	VariantName string
	Sub         *Pattern

	// PListCons
	Head *Pattern
	Tail *Pattern
}

func (p *Pattern) KindOf() PatternKind { return p.kind }

func newPattern(kind PatternKind, span source.Span) *Pattern {
	return &Pattern{kind: kind, Span: span}
}

func NewWildcard(span source.Span) *Pattern {
	return newPattern(PWildcard, span)
}

func NewBinding(local ids.ULocalID, span source.Span) *Pattern {
	p := newPattern(PBinding, span)
	p.Local = local
	return p
}

func NewTuplePattern(elems []*Pattern, span source.Span) *Pattern {
	p := newPattern(PTuple, span)
	p.Elems = elems
	return p
}

func NewBoolPattern(v bool, span source.Span) *Pattern {
	p := newPattern(PBool, span)
	p.BoolVal = v
	return p
}

func NewIntPattern(v int64, span source.Span) *Pattern {
	p := newPattern(PInt, span)
	p.IntVal = v
	return p
}

func NewStrPattern(v string, span source.Span) *Pattern {
	p := newPattern(PStr, span)
	p.StrVal = v
	return p
}

func NewVariantPattern(tid ids.TypeID, name string, sub *Pattern, span source.Span) *Pattern {
	p := newPattern(PVariant, span)
	p.VariantType = tid
	p.VariantName = name
	p.Sub = sub
	return p
}

func NewListEmptyPattern(span source.Span) *Pattern {
	return newPattern(PListEmpty, span)
}

func NewListConsPattern(head, tail *Pattern, span source.Span) *Pattern {
	p := newPattern(PListCons, span)
	p.Head = head
	p.Tail = tail
	return p
}

// Refutable reports whether p or any sub-pattern is a literal, a
// variant, a list-shape, or a tuple with a refutable component. let-bindings and
// function/lambda parameters require irrefutable patterns; only match
// arms may use a refutable one.
func (p *Pattern) Refutable() bool {
	switch p.kind {
	case PWildcard, PBinding:
		return false
	case PTuple:
		for _, e := range p.Elems {
			if e.Refutable() {
				return true
			}
		}
		return false
	default:
		return true
	}
}
