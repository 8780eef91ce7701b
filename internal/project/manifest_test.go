package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knotlang/knotc/internal/project"
)

func writeManifest(t *testing.T, dir, contents string) string {
	path := filepath.Join(dir, "knot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry_module: [main]\n")

	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, m.EntryModule)
	assert.Equal(t, "main", m.EntryName)
	assert.Equal(t, "out.knotscript", m.Output)
}

func TestLoadRejectsMissingEntryModule(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry_name: main\n")

	_, err := project.Load(path)
	assert.Error(t, err)
}

func TestLoadParsesExterns(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
entry_module: [main]
externs:
  - name: sha256
    package: crypto/sha256
    symbol: Sum256
`)

	m, err := project.Load(path)
	require.NoError(t, err)
	require.Len(t, m.Externs, 1)
	assert.Equal(t, "sha256", m.Externs[0].Name)
	assert.Equal(t, "crypto/sha256", m.Externs[0].Package)
	assert.Equal(t, "Sum256", m.Externs[0].Symbol)
}

func TestOutputPathIsRelativeToManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry_module: [main]\noutput: build/out.knotscript\n")

	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "build", "out.knotscript"), m.OutputPath(path))
}

func TestFindManifestWalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "entry_module: [main]\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := project.FindManifest(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "knot.yaml"), found)
}

func TestFindManifestReturnsErrorWhenAbsent(t *testing.T) {
	_, err := project.FindManifest(t.TempDir())
	assert.Error(t, err)
}
