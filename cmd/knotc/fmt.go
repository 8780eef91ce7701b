package main

import (
	"fmt"
	"os"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/parser"
	"github.com/knotlang/knotc/internal/prettyprinter"
	"github.com/knotlang/knotc/internal/source"
)

func cmdFmt(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: knotc fmt <file.knot> [file2.knot ...]")
		os.Exit(1)
	}

	failed := false
	for _, path := range args {
		if !formatFile(path) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func formatFile(path string) bool {
	contents, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %s\n", path, err)
		return false
	}

	set := source.NewSet()
	sf := set.Add(path, string(contents))
	emitter := diagnostics.NewEmitter()
	file := parser.ParseFile(sf, emitter)

	if emitter.HasErrors() {
		diagnostics.RenderAll(os.Stderr, set, emitter)
		return false
	}

	formatted := prettyprinter.NewCodePrinter().PrintFile(file)
	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %s\n", path, err)
		return false
	}
	return true
}
