package lowering

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

func newTestLowerer() *Lowerer {
	return &Lowerer{Types: types.NewContext(make(map[ids.TypeID]*types.Newtype))}
}

func armWith(p *uir.Pattern) uir.MatchArm {
	return uir.MatchArm{Pattern: p}
}

func TestCheckExhaustiveBoolBothArms(t *testing.T) {
	l := newTestLowerer()
	tru := uir.NewBoolPattern(true, source.Span{})
	tru.Type = types.Bool
	fls := uir.NewBoolPattern(false, source.Span{})
	fls.Type = types.Bool

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(tru), armWith(fls)}, source.Span{}))
}

func TestCheckExhaustiveBoolMissingArm(t *testing.T) {
	l := newTestLowerer()
	tru := uir.NewBoolPattern(true, source.Span{})
	tru.Type = types.Bool

	assert.False(t, checkExhaustive(l, []uir.MatchArm{armWith(tru)}, source.Span{}))
}

func TestCheckExhaustiveWildcardCatchesAnything(t *testing.T) {
	l := newTestLowerer()
	w := uir.NewWildcard(source.Span{})
	w.Type = types.Int

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(w)}, source.Span{}))
}

func TestCheckExhaustiveListEmptyAndCons(t *testing.T) {
	l := newTestLowerer()
	listTy := types.TList{Elem: types.Int}

	empty := uir.NewListEmptyPattern(source.Span{})
	empty.Type = listTy

	head := uir.NewWildcard(source.Span{})
	head.Type = types.Int
	tail := uir.NewWildcard(source.Span{})
	tail.Type = listTy
	cons := uir.NewListConsPattern(head, tail, source.Span{})
	cons.Type = listTy

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(empty), armWith(cons)}, source.Span{}))
	assert.False(t, checkExhaustive(l, []uir.MatchArm{armWith(empty)}, source.Span{}))
}

func TestCheckExhaustiveTupleSingleWildcardArm(t *testing.T) {
	l := newTestLowerer()
	tupTy := types.TTuple{Elems: []types.Type{types.Int, types.Bool}}

	a := uir.NewWildcard(source.Span{})
	a.Type = types.Int
	b := uir.NewWildcard(source.Span{})
	b.Type = types.Bool
	tup := uir.NewTuplePattern([]*uir.Pattern{a, b}, source.Span{})
	tup.Type = tupTy

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(tup)}, source.Span{}))
}

func TestCheckExhaustiveVariantAllCases(t *testing.T) {
	l := newTestLowerer()
	decl := &types.Newtype{
		Name: "Color",
		Kind: types.KindUnion,
		Variants: []types.VariantTypeDecl{
			{Name: "red"},
			{Name: "green"},
		},
	}
	tid := l.Types.Register(decl)
	unionTy := types.TNewtype{ID: tid}

	red := uir.NewVariantPattern(tid, "red", nil, source.Span{})
	red.Type = unionTy
	green := uir.NewVariantPattern(tid, "green", nil, source.Span{})
	green.Type = unionTy

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(red), armWith(green)}, source.Span{}))
	assert.False(t, checkExhaustive(l, []uir.MatchArm{armWith(red)}, source.Span{}))
}

func TestCheckExhaustiveVariantWithPayloadRequiresSubPattern(t *testing.T) {
	l := newTestLowerer()
	decl := &types.Newtype{
		Name: "Option",
		Kind: types.KindUnion,
		Variants: []types.VariantTypeDecl{
			{Name: "none"},
			{Name: "some", Payload: types.Int},
		},
	}
	tid := l.Types.Register(decl)
	unionTy := types.TNewtype{ID: tid}

	none := uir.NewVariantPattern(tid, "none", nil, source.Span{})
	none.Type = unionTy

	sub := uir.NewWildcard(source.Span{})
	sub.Type = types.Int
	some := uir.NewVariantPattern(tid, "some", sub, source.Span{})
	some.Type = unionTy

	assert.True(t, checkExhaustive(l, []uir.MatchArm{armWith(none), armWith(some)}, source.Span{}))
	assert.False(t, checkExhaustive(l, []uir.MatchArm{armWith(none)}, source.Span{}))
}
