package tir

import "github.com/knotlang/knotc/internal/ids"

// LocalDecl names one slot in a body's local arena, used by the
// backend for debug naming only — specialization never needs a
// local's name to do its own work.
type LocalDecl struct {
	Name string
	Type Type
}

// Body is one specialized function, variant constructor or extern
// binding. Closures are already fully explicit by this stage: every
// captured value was threaded into Inputs and Type back in Lowering
// (internal/lowering's captureLocal), so there is no separate
// Captures field here — a tir.Body is indistinguishable from an
// ordinary top-level function once specialized.
type Body struct {
	ID   ids.TBodyID
	Name string

	Locals []LocalDecl
	Inputs []*Pattern

	// Expr is nil for an extern binding, mirroring uir.Body — the
	// backend looks the binding up by Name in the host runtime instead.
	Expr *Expr

	Type Type
}
