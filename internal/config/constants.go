// Package config is the compiler's flat registry of constants shared
// across CLI, parser and lowering, kept in the same unstructured,
// grep-friendly style as internal/config/constants.go
// (a flat const/var bag rather than a struct-of-options).
package config

// Version is the current Knot compiler version.
var Version = "0.1.0"

// SourceFileExt is the canonical extension for Knot source files.
const SourceFileExt = ".knot"

// SourceFileExtensions are all recognized source file extensions; kept as
// a slice (rather than a single constant) the way prior art did, since
// a previous extension is often kept around for one release during a
// rename.
var SourceFileExtensions = []string{".knot"}

// ManifestFileName is the project manifest read by `knotc run`.
const ManifestFileName = "knot.yaml"

// DefaultScriptName is the output script's filename when the manifest
// does not override it.
const DefaultScriptName = "out.knotscript"

// TrimSourceExt removes a recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if path ends with a recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsLSPMode is set once at startup by internal/lsp.Run (reached from both
// `knotc lsp` and cmd/knotlsp). No package reads it; the renderer's output
// does not depend on it.
var IsLSPMode = false

// DefaultEntryName is the body name the compiled output dispatches to
// unless a manifest overrides it.
const DefaultEntryName = "main"
