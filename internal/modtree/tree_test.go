package modtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

func TestLookupWalksSubmodules(t *testing.T) {
	e := diagnostics.NewEmitter()
	tr := New(e)
	leaf := tr.Ensure([]string{"std", "option"})
	leaf.Newtypes["Option"] = ids.TypeID(1)

	got, ok := tr.Root.Lookup([]string{"std", "option"})
	require.True(t, ok)
	assert.Same(t, leaf, got)

	_, ok = tr.Root.Lookup([]string{"std", "nope"})
	assert.False(t, ok)
}

func TestReexportRootMakesStdVisibleEverywhere(t *testing.T) {
	e := diagnostics.NewEmitter()
	tr := New(e)
	tr.Ensure([]string{"std"})
	userMod := tr.Ensure([]string{"app"})

	tr.ReexportRoot()

	_, ok := userMod.Submodules["std"]
	assert.True(t, ok, "app module should inherit root's std submodule")
}

func TestResolveImportsBindsAllMatchingCategories(t *testing.T) {
	e := diagnostics.NewEmitter()
	tr := New(e)
	optionMod := tr.Ensure([]string{"std", "option"})
	optionMod.Newtypes["Option"] = ids.TypeID(7)
	optionMod.Variants["Option"] = VariantRef{NewtypeID: ids.TypeID(7), Name: "Option", BodyID: ids.UBodyID(1)}

	app := tr.Ensure([]string{"app"})
	app.Imports["Option"] = []string{"std", "option", "Option"}

	tr.ReexportRoot()
	tr.ResolveImports(nil)

	require.Empty(t, app.Imports)
	assert.Equal(t, ids.TypeID(7), app.Newtypes["Option"])
	assert.Equal(t, "Option", app.Variants["Option"].Name)
	assert.False(t, e.HasErrors())
}

func TestResolveImportsChainsThroughAnotherImport(t *testing.T) {
	e := diagnostics.NewEmitter()
	tr := New(e)
	optionMod := tr.Ensure([]string{"std", "option"})
	optionMod.Newtypes["Option"] = ids.TypeID(7)

	app := tr.Ensure([]string{"app"})
	// "opt" is an alias for "std.option", resolved lazily; "Opt" depends on
	// "opt" resolving first.
	app.Imports["opt"] = []string{"std", "option"}
	app.Imports["Opt"] = []string{"opt", "Option"}

	tr.ReexportRoot()
	tr.ResolveImports(nil)

	require.Empty(t, app.Imports)
	assert.Equal(t, ids.TypeID(7), app.Newtypes["Opt"])
}

func TestResolveImportsReportsUnresolvedPath(t *testing.T) {
	e := diagnostics.NewEmitter()
	tr := New(e)
	app := tr.Ensure([]string{"app"})
	app.Imports["Nope"] = []string{"std", "Nope"}
	tr.Ensure([]string{"std"})

	tr.ReexportRoot()
	tr.ResolveImports(map[ids.ModuleID]map[string]source.Span{
		app.ID: {"Nope": source.Span{}},
	})

	assert.True(t, e.HasErrors())
	require.Len(t, e.Diagnostics(), 1)
	assert.Equal(t, diagnostics.ErrUnresolvedPath, e.Diagnostics()[0].Code)
}
