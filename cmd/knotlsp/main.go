// Command knotlsp is a standalone entry point for the same loop
// `knotc lsp` starts in-process — editors that expect a dedicated LSP
// binary on PATH can point at this one instead.
//
// Modeled on cmd/lsp/main.go: os.Stdout wired as the JSON-RPC writer,
// stderr reserved for logs, a single blocking call starting the loop.
package main

import (
	"log"
	"os"

	"github.com/knotlang/knotc/internal/lsp"
)

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if err := lsp.Run(os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
