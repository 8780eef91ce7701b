package wsindex_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/wsindex"
)

func TestReindexAndByName(t *testing.T) {
	ix, err := wsindex.Open()
	require.NoError(t, err)
	defer ix.Close()

	sid := source.ID(uuid.New())
	err = ix.Reindex("list", []wsindex.Symbol{
		{Module: "list", Name: "map", Kind: wsindex.KindFunc, Span: source.Span{SourceID: sid, Lo: 10, Hi: 40}},
		{Module: "list", Name: "Pair", Kind: wsindex.KindNewtype, Span: source.Span{SourceID: sid, Lo: 50, Hi: 80}},
	})
	require.NoError(t, err)

	found, err := ix.ByName("map")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "list", found[0].Module)
	assert.Equal(t, wsindex.KindFunc, found[0].Kind)
}

func TestReindexReplacesModule(t *testing.T) {
	ix, err := wsindex.Open()
	require.NoError(t, err)
	defer ix.Close()

	sid := source.ID(uuid.New())
	require.NoError(t, ix.Reindex("list", []wsindex.Symbol{
		{Module: "list", Name: "map", Kind: wsindex.KindFunc, Span: source.Span{SourceID: sid, Lo: 0, Hi: 5}},
	}))
	require.NoError(t, ix.Reindex("list", []wsindex.Symbol{
		{Module: "list", Name: "filter", Kind: wsindex.KindFunc, Span: source.Span{SourceID: sid, Lo: 0, Hi: 5}},
	}))

	found, err := ix.ByName("map")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = ix.ByName("filter")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestAtOffsetFindsContainingSpan(t *testing.T) {
	ix, err := wsindex.Open()
	require.NoError(t, err)
	defer ix.Close()

	sid := source.ID(uuid.New())
	require.NoError(t, ix.Reindex("list", []wsindex.Symbol{
		{Module: "list", Name: "map", Kind: wsindex.KindFunc, Span: source.Span{SourceID: sid, Lo: 10, Hi: 40}},
	}))

	found, err := ix.AtOffset(sid, 25)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "map", found[0].Name)

	found, err = ix.AtOffset(sid, 999)
	require.NoError(t, err)
	assert.Empty(t, found)
}
