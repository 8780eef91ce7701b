package extern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/extern"
	"github.com/knotlang/knotc/internal/project"
)

// TestResolveFunction checks that a standard-library function resolves
// with its parameter count as Arity.
func TestResolveFunction(t *testing.T) {
	r := extern.NewResolver()
	bindings, err := r.Resolve([]project.ExternDep{
		{Name: "join", Package: "strings", Symbol: "Join"},
	})
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, 2, bindings[0].Arity)
}

// TestResolveMissingSymbol checks that a typo'd symbol is reported
// rather than silently bound to nothing.
func TestResolveMissingSymbol(t *testing.T) {
	r := extern.NewResolver()
	_, err := r.Resolve([]project.ExternDep{
		{Name: "nope", Package: "strings", Symbol: "DoesNotExist"},
	})
	assert.Error(t, err)
}

// TestResolveSharesLoadedPackages checks that two externs from the same
// Go package both resolve in a single Resolve call, each with its own
// arity.
func TestResolveSharesLoadedPackages(t *testing.T) {
	r := extern.NewResolver()
	bindings, err := r.Resolve([]project.ExternDep{
		{Name: "join", Package: "strings", Symbol: "Join"},
		{Name: "upper", Package: "strings", Symbol: "ToUpper"},
	})
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, 2, bindings[0].Arity)
	assert.Equal(t, 1, bindings[1].Arity)
}
