// Command knotc is the whole-program Knot compiler's CLI: it resolves a
// project's knot.yaml manifest, runs lowering and specialization over
// every source file below it, and emits a script for the host runtime.
//
// Modeled on cmd/funxy/main.go: a hand-parsed os.Args
// subcommand dispatch (handleTest/handleBuild/handleCompile/...), each
// a function returning false when its own flag isn't present so main
// falls through to the next. knotc keeps the hand-parsed os.Args but
// dispatches with a single switch on the first argument, reduced to run
// and lsp, plus the fmt subcommand the prettyprinter package exists to
// serve.
package main

import (
	"fmt"
	"os"

	"github.com/knotlang/knotc/internal/config"
	"github.com/knotlang/knotc/internal/lsp"
	"github.com/knotlang/knotc/internal/project"
	"github.com/knotlang/knotc/internal/source"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a compiler bug; please report it")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "lsp":
		cmdLSP()
	case "fmt":
		cmdFmt(os.Args[2:])
	case "version", "-version", "--version":
		fmt.Println(config.Version)
	case "help", "-help", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: knotc <command> [args]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  run [dir]     compile the project at dir (default: .) to its output script")
	fmt.Println("  lsp           start a language-server stdio loop")
	fmt.Println("  fmt <files>   reformat Knot source files in place")
	fmt.Println("  version       print the compiler version")
}

// resolveProjectDir returns the directory args[0] names, or the working
// directory if args is empty.
func resolveProjectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	return dir
}

// cmdRun compiles the project and writes its output script alongside
// the manifest. It does not execute the script — Knot's output targets
// a host runtime external to this compiler.
func cmdRun(args []string) string {
	dir := resolveProjectDir(args)
	manifestPath, err := project.FindManifest(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	res, emitter, err := compile(manifestPath)
	if emitter != nil && emitter.HasErrors() {
		var set *source.Set
		if res != nil {
			set = res.set
		}
		reportAndExit(emitter, set)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}

	m, err := project.Load(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	outPath := m.OutputPath(manifestPath)
	if err := os.WriteFile(outPath, []byte(res.script), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %s\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", outPath)
	return outPath
}

func cmdLSP() {
	if err := lsp.Run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
