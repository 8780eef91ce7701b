package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/backend"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/tir"
)

// TestEmitIdentityBody checks that a single trivial body compiles to a
// plain Lua function that returns its argument, plus a dispatch call to
// the entry body.
func TestEmitIdentityBody(t *testing.T) {
	prog := tir.NewProgram()
	body := prog.NewBody("identity")
	body.Inputs = []*tir.Pattern{tir.NewBinding(0)}
	body.Expr = tir.NewLocal(0)
	body.Type = tir.TFunc{Param: tir.Int, Result: tir.Int}
	prog.Entry = body.ID

	out, err := backend.NewScript().Emit(prog)
	require.NoError(t, err)
	assert.Contains(t, out, "local function __body_0(__arg0)")
	assert.Contains(t, out, "local l0 = __arg0")
	assert.Contains(t, out, "return l0")
	assert.Contains(t, out, "__body_0()")
}

// TestEmitVariantMatch checks that a match over a two-variant union
// compiles to an if/elseif chain testing the runtime tag table.
func TestEmitVariantMatch(t *testing.T) {
	prog := tir.NewProgram()
	color := prog.NewNewtype("Color", tir.KindUnion)
	color.Variants = []tir.VariantDecl{
		{Name: "red", BodyID: ids.InvalidTBody},
		{Name: "green", BodyID: ids.InvalidTBody},
	}

	pick := prog.NewBody("pick")
	subjectLocal := ids.TLocalID(0)
	pick.Inputs = []*tir.Pattern{tir.NewBinding(subjectLocal)}
	pick.Expr = tir.NewMatch(tir.NewLocal(subjectLocal), []tir.MatchArm{
		{Pattern: tir.NewVariantPattern(color.ID, "red", nil), Expr: tir.NewInt(1)},
		{Pattern: tir.NewVariantPattern(color.ID, "green", nil), Expr: tir.NewInt(2)},
	})
	prog.Entry = pick.ID

	out, err := backend.NewScript().Emit(prog)
	require.NoError(t, err)
	assert.Contains(t, out, `.tag == "red"`)
	assert.Contains(t, out, `.tag == "green"`)
}
