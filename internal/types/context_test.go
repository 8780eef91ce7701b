package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

func newTestContext() *Context {
	return NewContext(map[ids.TypeID]*Newtype{})
}

func TestUnifyPrimitivesOK(t *testing.T) {
	c := newTestContext()
	c.Unify(Int, Int, source.Span{})

	var emitter diagnostics.Emitter
	require.NoError(t, c.Finish(&emitter))
	assert.False(t, emitter.HasErrors())
}

func TestUnifyPrimitivesMismatch(t *testing.T) {
	c := newTestContext()
	c.Unify(Int, Bool, source.Span{})

	var emitter diagnostics.Emitter
	err := c.Finish(&emitter)
	require.Error(t, err)
	require.Len(t, emitter.Diagnostics(), 1)

	d := emitter.Diagnostics()[0]
	assert.Equal(t, diagnostics.ErrUnifyMismatch, d.Code)
	// constraint site plus both operand origins (spec's three-label shape)
	assert.Len(t, d.Labels, 3)
}

func TestUnifyVariableBinds(t *testing.T) {
	c := newTestContext()
	v := c.FreshVar(source.Span{})
	c.Unify(v, Int, source.Span{})

	assert.Equal(t, Int, c.chase(v))
}

func TestUnifyTupleArityMismatch(t *testing.T) {
	c := newTestContext()
	c.Unify(TTuple{Elems: []Type{Int, Int}}, TTuple{Elems: []Type{Int}}, source.Span{})

	var emitter diagnostics.Emitter
	require.Error(t, c.Finish(&emitter))
	require.Len(t, emitter.Diagnostics(), 1)
	assert.Equal(t, diagnostics.ErrTupleArity, emitter.Diagnostics()[0].Code)
}

func TestInstantiateProducesFreshIndependentVars(t *testing.T) {
	c := newTestContext()
	v := c.FreshVar(source.Span{})
	generalized := TFunc{Param: v, Result: v}

	i1 := c.Instantiate(generalized, source.Span{}).(TFunc)
	i2 := c.Instantiate(generalized, source.Span{}).(TFunc)

	// within one instantiation both occurrences of v become the same
	// fresh variable...
	assert.Equal(t, i1.Param, i1.Result)
	// ...but the two instantiations are independent of each other.
	assert.NotEqual(t, i1.Param, i2.Param)
}

func TestFieldBoundOnVariableThenBindChecksRecord(t *testing.T) {
	nameField := ids.TypeID(1)
	newtypes := map[ids.TypeID]*Newtype{
		nameField: {
			ID:   nameField,
			Name: "Point",
			Kind: KindRecord,
			Fields: []RecordFieldDecl{
				{Name: "x", Type: Int},
				{Name: "y", Type: Int},
			},
		},
	}
	c := NewContext(newtypes)

	v := c.FreshVar(source.Span{})
	c.Field(v, "x", Int, source.Span{})
	c.Unify(v, TNewtype{ID: nameField}, source.Span{})

	var emitter diagnostics.Emitter
	require.NoError(t, c.Finish(&emitter))
}

func TestFieldBoundViolationOnBind(t *testing.T) {
	recID := ids.TypeID(1)
	newtypes := map[ids.TypeID]*Newtype{
		recID: {
			ID:   recID,
			Name: "Point",
			Kind: KindRecord,
			Fields: []RecordFieldDecl{
				{Name: "x", Type: Str},
			},
		},
	}
	c := NewContext(newtypes)

	v := c.FreshVar(source.Span{})
	c.Field(v, "x", Int, source.Span{}) // expects int, but Point.x is str
	c.Unify(v, TNewtype{ID: recID}, source.Span{})

	var emitter diagnostics.Emitter
	require.Error(t, c.Finish(&emitter))
}

func TestAliasTransparencyUnifiesThroughOneStep(t *testing.T) {
	aliasID := ids.TypeID(1)
	newtypes := map[ids.TypeID]*Newtype{
		aliasID: {
			ID:    aliasID,
			Name:  "IntAlias",
			Kind:  KindAlias,
			Alias: Int,
		},
	}
	c := NewContext(newtypes)
	c.Unify(TNewtype{ID: aliasID}, Int, source.Span{})

	var emitter diagnostics.Emitter
	require.NoError(t, c.Finish(&emitter))
}

func TestFormatGeneralizesWithLetterNames(t *testing.T) {
	c := newTestContext()
	v := c.FreshVar(source.Span{})
	got := c.Format(TFunc{Param: v, Result: v})
	assert.Equal(t, "'a -> 'a", got)
}

func TestFormatEmitsWhereClauseForNumberBound(t *testing.T) {
	c := newTestContext()
	v := c.FreshVar(source.Span{})
	c.Number(v, source.Span{})
	got := c.Format(v)
	assert.Equal(t, "'a where a is number", got)
}

func TestSubstituteLeavesNoVariableWhenFullyBound(t *testing.T) {
	c := newTestContext()
	v := c.FreshVar(source.Span{})
	c.Unify(v, TList{Elem: Int}, source.Span{})

	got := c.Substitute(v)
	assert.Equal(t, TList{Elem: Int}, got)
	assert.Empty(t, c.FreeVars(got))
}
