package lowering

import (
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// checkExhaustive builds a one-column matrix from the arm patterns and
// recurses per the constructor-matrix specialization rule below.
func checkExhaustive(l *Lowerer, arms []uir.MatchArm, span source.Span) bool {
	matrix := make([][]*uir.Pattern, len(arms))
	for i, a := range arms {
		matrix[i] = []*uir.Pattern{a.Pattern}
	}
	return isExhaustive(l, matrix)
}

// candidateKind is which of the five "head constructor candidate set"
// shapes a column's type produces.
type candidateKind int

const (
	candBool candidateKind = iota
	candListEmpty
	candListCons
	candVariant
	candTuple
	candDefault // unenumerable domain (int, str, an unconstrained variable): covered only by a wildcard row
)

type candidate struct {
	kind        candidateKind
	boolVal     bool
	variantName string
	hasPayload  bool
	payloadType types.Type
	arity       int
	elemType    types.Type // candListCons, candTuple (single shared element type for cons)
	tupleElems  []types.Type
}

// candidatesFor computes the head constructor candidate set for one
// column's subject type: boolean → {true,false}; list →
// {empty, non-empty}; variant → every declared variant of the subject's
// union; tuple → the tuple's arity as a single destructuring
// constructor; otherwise → a single wildcard case.
func candidatesFor(l *Lowerer, ty types.Type) []candidate {
	switch t := l.Types.Substitute(ty).(type) {
	case types.TPrim:
		if t.Prim == types.PBool {
			return []candidate{{kind: candBool, boolVal: true}, {kind: candBool, boolVal: false}}
		}
		return []candidate{{kind: candDefault}}
	case types.TList:
		return []candidate{
			{kind: candListEmpty},
			{kind: candListCons, elemType: t.Elem},
		}
	case types.TTuple:
		return []candidate{{kind: candTuple, arity: len(t.Elems), tupleElems: t.Elems}}
	case types.TNewtype:
		decl := l.Types.Newtype(t.ID)
		if decl == nil || decl.Kind != types.KindUnion {
			return []candidate{{kind: candDefault}}
		}
		cands := make([]candidate, len(decl.Variants))
		for i, v := range decl.Variants {
			cands[i] = candidate{kind: candVariant, variantName: v.Name, hasPayload: v.Payload != nil, payloadType: v.Payload}
		}
		return cands
	default:
		return []candidate{{kind: candDefault}}
	}
}

// isExhaustive recursively evaluates the matrix: true iff, for every
// candidate of the first column's type, the specialized sub-matrix is
// itself exhaustive.
func isExhaustive(l *Lowerer, matrix [][]*uir.Pattern) bool {
	if len(matrix) == 0 {
		return false
	}
	if len(matrix[0]) == 0 {
		return true
	}

	cands := candidatesFor(l, matrix[0][0].Type)
	if len(cands) == 1 && cands[0].kind == candDefault {
		return isExhaustive(l, specializeDefault(matrix))
	}

	for _, c := range cands {
		if !isExhaustive(l, specialize(matrix, c)) {
			return false
		}
	}
	return true
}

func isWildcardLike(p *uir.Pattern) bool {
	return p.KindOf() == uir.PWildcard || p.KindOf() == uir.PBinding
}

// specializeDefault drops the first column from every row whose head
// is a wildcard/binding, discarding rows whose head is a literal — the
// only way to cover an unenumerable domain.
func specializeDefault(matrix [][]*uir.Pattern) [][]*uir.Pattern {
	var out [][]*uir.Pattern
	for _, row := range matrix {
		if isWildcardLike(row[0]) {
			out = append(out, row[1:])
		}
	}
	return out
}

// specialize keeps rows whose head matches cand, replacing the head
// with its sub-patterns (a wildcard/binding row produces wildcard
// fillers of cand's arity).
func specialize(matrix [][]*uir.Pattern, cand candidate) [][]*uir.Pattern {
	var out [][]*uir.Pattern
	for _, row := range matrix {
		head := row[0]
		rest := row[1:]
		if isWildcardLike(head) {
			out = append(out, append(fillerWildcards(cand, head.Span), rest...))
			continue
		}
		if sub, ok := matchesHead(head, cand); ok {
			out = append(out, append(sub, rest...))
		}
	}
	return out
}

func fillerWildcards(cand candidate, span source.Span) []*uir.Pattern {
	switch cand.kind {
	case candBool, candListEmpty:
		return nil
	case candListCons:
		head := uir.NewWildcard(span)
		head.Type = cand.elemType
		tail := uir.NewWildcard(span)
		return []*uir.Pattern{head, tail}
	case candTuple:
		fillers := make([]*uir.Pattern, cand.arity)
		for i := range fillers {
			fillers[i] = uir.NewWildcard(span)
			if i < len(cand.tupleElems) {
				fillers[i].Type = cand.tupleElems[i]
			}
		}
		return fillers
	case candVariant:
		if !cand.hasPayload {
			return nil
		}
		sub := uir.NewWildcard(span)
		sub.Type = cand.payloadType
		return []*uir.Pattern{sub}
	default:
		return nil
	}
}

// matchesHead reports whether a non-wildcard pattern's head matches
// cand, and if so the sub-patterns it contributes to the specialized
// matrix.
func matchesHead(p *uir.Pattern, cand candidate) ([]*uir.Pattern, bool) {
	switch cand.kind {
	case candBool:
		if p.KindOf() != uir.PBool || p.BoolVal != cand.boolVal {
			return nil, false
		}
		return nil, true
	case candListEmpty:
		if p.KindOf() != uir.PListEmpty {
			return nil, false
		}
		return nil, true
	case candListCons:
		if p.KindOf() != uir.PListCons {
			return nil, false
		}
		return []*uir.Pattern{p.Head, p.Tail}, true
	case candTuple:
		if p.KindOf() != uir.PTuple {
			return nil, false
		}
		return append([]*uir.Pattern(nil), p.Elems...), true
	case candVariant:
		if p.KindOf() != uir.PVariant || p.VariantName != cand.variantName {
			return nil, false
		}
		if p.Sub == nil {
			return nil, true
		}
		return []*uir.Pattern{p.Sub}, true
	default:
		return nil, false
	}
}
