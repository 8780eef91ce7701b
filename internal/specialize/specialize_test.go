package specialize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/lowering"
	"github.com/knotlang/knotc/internal/specialize"
	"github.com/knotlang/knotc/internal/tir"
)

// TestSpecializeIdentityDualInstantiation checks that `fn id x -> x`
// called at both int and bool produces two distinct specialized bodies,
// typed int->int and bool->bool respectively.
func TestSpecializeIdentityDualInstantiation(t *testing.T) {
	idDecl := &ast.FuncDecl{
		Name:   "id",
		Params: []ast.Pattern{&ast.PBinding{Name: "x"}},
		Body:   &ast.EPath{Segments: []string{"x"}},
	}
	mainDecl := &ast.FuncDecl{
		Name: "main",
		Body: &ast.ETuple{Elems: []ast.Expr{
			&ast.ECall{
				Callee: &ast.EPath{Segments: []string{"id"}},
				Args:   []ast.Expr{&ast.EInt{Value: 1}},
			},
			&ast.ECall{
				Callee: &ast.EPath{Segments: []string{"id"}},
				Args:   []ast.Expr{&ast.EBool{Value: true}},
			},
		}},
	}
	file := &ast.File{Path: "main.knot", Items: []ast.Item{idDecl, mainDecl}}

	emitter := diagnostics.NewEmitter()
	l := lowering.New(emitter)
	mod := l.Tree.Ensure([]string{"main"})
	entry, err := l.Run([]lowering.FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "main")
	require.NoError(t, err)
	require.False(t, emitter.HasErrors())

	sp := specialize.New(l.Program, l.Types, emitter)
	prog, tentry, err := sp.Run(entry)
	require.NoError(t, err)

	mainBody := prog.Body(tentry)
	require.NotNil(t, mainBody.Expr)

	call1 := mainBody.Expr.Elems[0]
	call2 := mainBody.Expr.Elems[1]
	require.Equal(t, tir.ECall, call1.KindOf())
	require.Equal(t, tir.ECall, call2.KindOf())

	ref1 := call1.Callee
	ref2 := call2.Callee
	require.Equal(t, tir.EBodyRef, ref1.KindOf())
	require.Equal(t, tir.EBodyRef, ref2.KindOf())

	assert.NotEqual(t, ref1.Body, ref2.Body, "id should specialize to two distinct bodies")

	idInt := prog.Body(ref1.Body)
	idBool := prog.Body(ref2.Body)
	assert.Equal(t, tir.TFunc{Param: tir.Int, Result: tir.Int}, idInt.Type)
	assert.Equal(t, tir.TFunc{Param: tir.Bool, Result: tir.Bool}, idBool.Type)
}

// TestSpecializeMemoizesSameSubstitution checks that two call sites
// using id at the exact same concrete type collapse to one specialized
// body.
func TestSpecializeMemoizesSameSubstitution(t *testing.T) {
	idDecl := &ast.FuncDecl{
		Name:   "id",
		Params: []ast.Pattern{&ast.PBinding{Name: "x"}},
		Body:   &ast.EPath{Segments: []string{"x"}},
	}
	mainDecl := &ast.FuncDecl{
		Name: "main",
		Body: &ast.ETuple{Elems: []ast.Expr{
			&ast.ECall{
				Callee: &ast.EPath{Segments: []string{"id"}},
				Args:   []ast.Expr{&ast.EInt{Value: 1}},
			},
			&ast.ECall{
				Callee: &ast.EPath{Segments: []string{"id"}},
				Args:   []ast.Expr{&ast.EInt{Value: 2}},
			},
		}},
	}
	file := &ast.File{Path: "main.knot", Items: []ast.Item{idDecl, mainDecl}}

	emitter := diagnostics.NewEmitter()
	l := lowering.New(emitter)
	mod := l.Tree.Ensure([]string{"main"})
	entry, err := l.Run([]lowering.FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "main")
	require.NoError(t, err)

	sp := specialize.New(l.Program, l.Types, emitter)
	prog, tentry, err := sp.Run(entry)
	require.NoError(t, err)

	mainBody := prog.Body(tentry)
	ref1 := mainBody.Expr.Elems[0].Callee
	ref2 := mainBody.Expr.Elems[1].Callee
	assert.Equal(t, ref1.Body, ref2.Body, "id called twice at int should specialize once")
}

// TestSpecializeRecursiveCallDoesNotReinstantiate checks that a
// recursive function specializes once per concrete element type at its
// external call sites, never spawning a separate instantiation of
// itself for the internal recursive call.
func TestSpecializeRecursiveCallDoesNotReinstantiate(t *testing.T) {
	lenDecl := &ast.FuncDecl{
		Name:   "len",
		Params: []ast.Pattern{&ast.PBinding{Name: "xs"}},
		Body: &ast.EMatch{
			Subject: &ast.EPath{Segments: []string{"xs"}},
			Arms: []ast.MatchArm{
				{Pattern: &ast.PListEmpty{}, Body: &ast.EInt{Value: 0}},
				{
					Pattern: &ast.PListCons{Head: &ast.PBinding{Name: "h"}, Tail: &ast.PBinding{Name: "rest"}},
					Body: &ast.EBinary{
						Op:  ast.OpAdd,
						Lhs: &ast.EInt{Value: 1},
						Rhs: &ast.ECall{
							Callee: &ast.EPath{Segments: []string{"len"}},
							Args:   []ast.Expr{&ast.EPath{Segments: []string{"rest"}}},
						},
					},
				},
			},
		},
	}
	mainDecl := &ast.FuncDecl{
		Name: "main",
		Body: &ast.ECall{
			Callee: &ast.EPath{Segments: []string{"len"}},
			Args: []ast.Expr{&ast.EListCons{Items: []ast.Expr{
				&ast.EInt{Value: 1}, &ast.EInt{Value: 2}, &ast.EInt{Value: 3},
			}}},
		},
	}
	file := &ast.File{Path: "main.knot", Items: []ast.Item{lenDecl, mainDecl}}

	emitter := diagnostics.NewEmitter()
	l := lowering.New(emitter)
	mod := l.Tree.Ensure([]string{"main"})
	entry, err := l.Run([]lowering.FileUnit{{File: file, Module: mod.ID}}, []string{"main"}, "main")
	require.NoError(t, err)
	require.False(t, emitter.HasErrors())

	sp := specialize.New(l.Program, l.Types, emitter)
	prog, _, err := sp.Run(entry)
	require.NoError(t, err)

	lenCount := 0
	for _, b := range prog.Bodies {
		if b.Name == "len" {
			lenCount++
		}
	}
	assert.Equal(t, 1, lenCount, "len should specialize exactly once, not once per recursive call")
}
