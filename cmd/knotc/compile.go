package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knotlang/knotc/internal/backend"
	"github.com/knotlang/knotc/internal/config"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/extern"
	"github.com/knotlang/knotc/internal/lowering"
	"github.com/knotlang/knotc/internal/parser"
	"github.com/knotlang/knotc/internal/project"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/specialize"
)

// result bundles a compiled project's output script with the sources
// registered along the way, so a caller can render diagnostics against
// the right file even on failure.
type result struct {
	script string
	set    *source.Set
}

// compile parses every source file under the project root, lowers and
// specializes them from the manifest's entry point, and emits a script
// via backend. The project root is every .knot file found below the
// directory containing the manifest; each file's module path is its
// directory path relative to the root, dotted.
func compile(manifestPath string) (*result, *diagnostics.Emitter, error) {
	m, err := project.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	root := filepath.Dir(manifestPath)

	set := source.NewSet()
	emitter := diagnostics.NewEmitter()
	l := lowering.New(emitter)

	var units []lowering.FileUnit
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !config.HasSourceExt(path) {
			return nil
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sf := set.Add(path, string(contents))
		file := parser.ParseFile(sf, emitter)

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		modPath := modulePathFor(rel)
		mod := l.Tree.Ensure(modPath)
		units = append(units, lowering.FileUnit{File: file, Module: mod.ID})
		return nil
	})
	if err != nil {
		return nil, emitter, err
	}

	if len(m.Externs) > 0 {
		if _, err := extern.NewResolver().Resolve(m.Externs); err != nil {
			return nil, emitter, err
		}
	}

	entry, err := l.Run(units, m.EntryModule, m.EntryName)
	if err != nil {
		return nil, emitter, err
	}

	sp := specialize.New(l.Program, l.Types, emitter)
	prog, tentry, err := sp.Run(entry)
	if err != nil {
		return nil, emitter, err
	}
	prog.Entry = tentry

	script, err := backend.NewScript().Emit(prog)
	if err != nil {
		return nil, emitter, err
	}
	return &result{script: script, set: set}, emitter, nil
}

// modulePathFor turns a root-relative directory ("." for the root
// itself) into a dotted module path.
func modulePathFor(rel string) []string {
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

func reportAndExit(emitter *diagnostics.Emitter, set *source.Set) {
	if set != nil {
		diagnostics.RenderAll(os.Stderr, set, emitter)
	} else {
		for _, d := range emitter.Diagnostics() {
			fmt.Fprintln(os.Stderr, d.Message)
		}
	}
	os.Exit(1)
}
