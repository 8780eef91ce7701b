package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRunProducesScript drives the real knotc binary against a small
// fixture project under testdata/, the way a user would: `knotc run
// <dir>` should write an output script containing a body for main and
// a call into it.
//
// Modeled on the functional test's build-binary-then-exec-it shape,
// trimmed to check the emitted script's shape directly (assert.Contains
// on known codegen fragments, the same style internal/backend/script_test.go
// uses) rather than executing it through a Lua interpreter that may not
// be present wherever this test runs.
func TestRunProducesScript(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	require.NoError(t, err)

	binaryPath := filepath.Join(t.TempDir(), "knotc-test-binary")
	build := exec.Command("go", "build", "-o", binaryPath, "./cmd/knotc")
	build.Dir = projectRoot
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("building knotc: %v\n%s", err, out)
	}

	fixture := filepath.Join("tests", "testdata", "hello")
	outScript := filepath.Join(fixture, "out.knotscript")
	defer os.Remove(filepath.Join(projectRoot, outScript))

	run := exec.Command(binaryPath, "run", fixture)
	run.Dir = projectRoot
	out, err := run.CombinedOutput()
	require.NoError(t, err, "knotc run failed:\n%s", out)

	script, err := os.ReadFile(filepath.Join(projectRoot, outScript))
	require.NoError(t, err)

	assert.Contains(t, string(script), "local function __body_")
	assert.Contains(t, string(script), "return 42")
}

// TestFmtRewritesSourceInPlace drives `knotc fmt` against a scratch file
// holding the same one-line program as the hello fixture and checks that
// fmt succeeds and the rewritten file still contains `fn main` and `42`
// (a substring check rather than a golden diff; the result is not
// re-parsed).
func TestFmtRewritesSourceInPlace(t *testing.T) {
	projectRoot, err := filepath.Abs("..")
	require.NoError(t, err)

	binaryPath := filepath.Join(t.TempDir(), "knotc-test-binary")
	build := exec.Command("go", "build", "-o", binaryPath, "./cmd/knotc")
	build.Dir = projectRoot
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("building knotc: %v\n%s", err, out)
	}

	scratch := filepath.Join(t.TempDir(), "main.knot")
	require.NoError(t, os.WriteFile(scratch, []byte("fn main -> 42\n"), 0o644))

	run := exec.Command(binaryPath, "fmt", scratch)
	out, err := run.CombinedOutput()
	require.NoError(t, err, "knotc fmt failed:\n%s", out)

	formatted, err := os.ReadFile(scratch)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "fn main")
	assert.Contains(t, string(formatted), "42")
}
