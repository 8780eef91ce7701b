package wsindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/parser"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/wsindex"
)

func TestCollectFindsFuncsExternsAndVariants(t *testing.T) {
	src := `
extern puts : string -> unit

type shape = union { circle(int); square(int) }

fn area s -> 0
`
	set := source.NewSet()
	sf := set.Add("shape.knot", src)
	emitter := diagnostics.NewEmitter()
	file := parser.ParseFile(sf, emitter)
	require.False(t, emitter.HasErrors())

	syms := wsindex.Collect("shapes", file)

	names := make(map[string]wsindex.Kind)
	for _, s := range syms {
		names[s.Name] = s.Kind
	}
	assert.Equal(t, wsindex.KindExtern, names["puts"])
	assert.Equal(t, wsindex.KindNewtype, names["shape"])
	assert.Equal(t, wsindex.KindVariant, names["circle"])
	assert.Equal(t, wsindex.KindVariant, names["square"])
	assert.Equal(t, wsindex.KindFunc, names["area"])
}
