// Package backend is the consumer side of Specialization's output: it
// walks a tir.Program and produces a single script that embeds a
// runtime prelude and dispatches to a named entry body.
//
// Backends are treated as "consumer interface only" — a direct
// mechanical traversal of the specialized IR, external to the
// type-aware middle end. Modeled on funxy's internal/backend
// package: a small Backend interface (backend.go) selecting between
// interpretation strategies, each walking program state (treewalk.go,
// vmbackend.go) behind the same seam. Knot keeps that interface shape
// but implements the "seam" as a single textual script emitter, since
// Knot has no interpreter of its own to swap in and out of — the
// script it emits is interpreted by the host runtime it targets.
package backend

import "github.com/knotlang/knotc/internal/tir"

// Backend is the seam between the compiler and a concrete script
// target.
type Backend interface {
	// Emit walks prog and returns the complete output script: embedded
	// runtime prelude followed by one function per body and a final
	// dispatch to prog.Entry.
	Emit(prog *tir.Program) (string, error)

	// Name returns the backend's display name for CLI diagnostics.
	Name() string
}
