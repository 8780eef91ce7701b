// Package project reads a Knot project's manifest: the package root, its
// entry point, where to write the emitted script, and the Go-backed
// extern bindings the project declares.
//
// Modeled on internal/ext/config.go: a yaml.v3-tagged
// Config/Dep pair parsed with yaml.Unmarshal and validated field by
// field. Knot's Manifest/ExternDep below keep that same flat
// yaml-tag-struct shape, simplified to what a whole-program compiler
// driver needs (no Go-binding codegen options — see internal/extern).
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/knotlang/knotc/internal/config"
)

// Manifest is the parsed contents of knot.yaml.
type Manifest struct {
	// EntryModule is the dotted module path lowering starts resolving
	// from.
	EntryModule []string `yaml:"entry_module"`

	// EntryName is the body name within EntryModule to specialize from
	// (defaults to config.DefaultEntryName).
	EntryName string `yaml:"entry_name,omitempty"`

	// Output is the emitted script's path, relative to the manifest
	// (defaults to config.DefaultScriptName).
	Output string `yaml:"output,omitempty"`

	// Externs lists Go-backed extern bindings.
	Externs []ExternDep `yaml:"externs,omitempty"`
}

// ExternDep binds one Knot `extern` declaration to a Go package symbol.
type ExternDep struct {
	// Name is the extern's Knot-side name, as written in `extern name : T`.
	Name string `yaml:"name"`

	// Package is the Go import path to load with go/packages.
	Package string `yaml:"package"`

	// Symbol is the exported Go identifier within Package (a function,
	// const or variable) this extern resolves to.
	Symbol string `yaml:"symbol"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("project: parsing manifest: %w", err)
	}
	if len(m.EntryModule) == 0 {
		return nil, fmt.Errorf("project: manifest %s has no entry_module", path)
	}
	if m.EntryName == "" {
		m.EntryName = config.DefaultEntryName
	}
	if m.Output == "" {
		m.Output = config.DefaultScriptName
	}
	return &m, nil
}

// OutputPath resolves Output relative to the manifest's directory.
func (m *Manifest) OutputPath(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), m.Output)
}

// FindManifest walks up from dir looking for config.ManifestFileName,
// the way a build driver resolves "the project containing this file".
func FindManifest(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, config.ManifestFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("project: no %s found above %s", config.ManifestFileName, dir)
		}
		dir = parent
	}
}
