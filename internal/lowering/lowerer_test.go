package lowering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/types"
)

// TestRunLowersIdentityFunction exercises Pass 1/Pass 2 end to end on
// the smallest possible program: `fn identity x -> x`. The stub type
// allocated in Pass 1 should unify with the body's actual inferred type
// with no diagnostics.
func TestRunLowersIdentityFunction(t *testing.T) {
	emitter := diagnostics.NewEmitter()
	l := New(emitter)

	file := &ast.File{
		Path: "main.knot",
		Items: []ast.Item{
			&ast.FuncDecl{
				Name:   "identity",
				Params: []ast.Pattern{&ast.PBinding{Name: "x"}},
				Body:   &ast.EPath{Segments: []string{"x"}},
			},
		},
	}
	mod := l.Tree.Ensure([]string{"main"})

	bid, err := l.Run([]FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "identity")
	require.NoError(t, err)
	assert.Empty(t, emitter.Diagnostics())

	body := l.Program.Body(bid)
	fnTy, ok := l.Types.Substitute(body.Type).(types.TFunc)
	require.True(t, ok, "identity's type should be a function")

	pv, ok := fnTy.Param.(types.TVar)
	require.True(t, ok)
	rv, ok := fnTy.Result.(types.TVar)
	require.True(t, ok)
	assert.Equal(t, pv.ID, rv.ID, "identity's parameter and result should share one type variable")
}

// TestRunLowersUnionMatchExhaustive builds a two-variant union, a match
// over both cases, and an entry point that calls it — exercising
// newtype declaration, variant construction, pattern lowering and
// exhaustiveness together.
func TestRunLowersUnionMatchExhaustive(t *testing.T) {
	emitter := diagnostics.NewEmitter()
	l := New(emitter)

	colorDecl := &ast.NewtypeDecl{
		Name: "Color",
		Kind: ast.UnionKind{Variants: []ast.VariantDecl{
			{Name: "red"},
			{Name: "green"},
		}},
	}
	pickDecl := &ast.FuncDecl{
		Name:   "pick",
		Params: []ast.Pattern{&ast.PBinding{Name: "c"}},
		Body: &ast.EMatch{
			Subject: &ast.EPath{Segments: []string{"c"}},
			Arms: []ast.MatchArm{
				{Pattern: &ast.PVariant{Name: "red"}, Body: &ast.EInt{Value: 1}},
				{Pattern: &ast.PVariant{Name: "green"}, Body: &ast.EInt{Value: 2}},
			},
		},
	}
	mainDecl := &ast.FuncDecl{
		Name: "main",
		Body: &ast.ECall{
			Callee: &ast.EPath{Segments: []string{"pick"}},
			Args:   []ast.Expr{&ast.EVariant{Name: "red"}},
		},
	}

	file := &ast.File{
		Path:  "main.knot",
		Items: []ast.Item{colorDecl, pickDecl, mainDecl},
	}
	mod := l.Tree.Ensure([]string{"main"})

	bid, err := l.Run([]FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "main")
	require.NoError(t, err)
	assert.Empty(t, emitter.Diagnostics())

	body := l.Program.Body(bid)
	resultTy := l.Types.Substitute(body.Type)
	assert.Equal(t, types.Int, resultTy)
}

// TestRunReportsNonExhaustiveMatch checks the negative case: a match
// missing a variant arm is a diagnosed error, not a silent miscompile.
func TestRunReportsNonExhaustiveMatch(t *testing.T) {
	emitter := diagnostics.NewEmitter()
	l := New(emitter)

	colorDecl := &ast.NewtypeDecl{
		Name: "Color",
		Kind: ast.UnionKind{Variants: []ast.VariantDecl{
			{Name: "red"},
			{Name: "green"},
		}},
	}
	pickDecl := &ast.FuncDecl{
		Name:   "pick",
		Params: []ast.Pattern{&ast.PBinding{Name: "c"}},
		Body: &ast.EMatch{
			Subject: &ast.EPath{Segments: []string{"c"}},
			Arms: []ast.MatchArm{
				{Pattern: &ast.PVariant{Name: "red"}, Body: &ast.EInt{Value: 1}},
			},
		},
	}

	file := &ast.File{
		Path:  "main.knot",
		Items: []ast.Item{colorDecl, pickDecl},
	}
	mod := l.Tree.Ensure([]string{"main"})

	_, _ = l.Run([]FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "pick")
	assert.True(t, emitter.HasErrors())

	found := false
	for _, d := range emitter.Diagnostics() {
		if d.Code == diagnostics.ErrNonExhaustive {
			found = true
		}
	}
	assert.True(t, found, "expected a non-exhaustive match diagnostic")
}

// TestRunLowersLambdaClosureCapture checks that a lambda referencing an
// outer let-bound local gets a capture slot and that the call site
// correctly applies the captured value.
func TestRunLowersLambdaClosureCapture(t *testing.T) {
	emitter := diagnostics.NewEmitter()
	l := New(emitter)

	// fn main -> { let n = 5; (|x| x + n)(1) }
	mainDecl := &ast.FuncDecl{
		Name: "main",
		Body: &ast.EBlock{Exprs: []ast.Expr{
			&ast.ELet{
				Pattern: &ast.PBinding{Name: "n"},
				Value:   &ast.EInt{Value: 5},
			},
			&ast.ECall{
				Callee: &ast.ELambda{
					Params: []ast.Pattern{&ast.PBinding{Name: "x"}},
					Body: &ast.EBinary{
						Op:  ast.OpAdd,
						Lhs: &ast.EPath{Segments: []string{"x"}},
						Rhs: &ast.EPath{Segments: []string{"n"}},
					},
				},
				Args: []ast.Expr{&ast.EInt{Value: 1}},
			},
		}},
	}

	file := &ast.File{Path: "main.knot", Items: []ast.Item{mainDecl}}
	mod := l.Tree.Ensure([]string{"main"})

	bid, err := l.Run([]FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "main")
	require.NoError(t, err)
	assert.Empty(t, emitter.Diagnostics())

	body := l.Program.Body(bid)
	assert.Equal(t, types.Int, l.Types.Substitute(body.Type))
}
