package lowering

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/modtree"
	"github.com/knotlang/knotc/internal/uir"
)

// scopeEntry binds one surface name to a local within the exprLowerer's
// current body, in declaration order so later entries shadow earlier
// ones of the same name.
type scopeEntry struct {
	name  string
	local ids.ULocalID
}

// exprLowerer carries the current body id, the current module, an
// ordered list of currently in-scope local ids, and (via parent) a
// stack of parent scopes for lambda capture.
//
// Modeled on analyzer Environment chain
// (internal/analyzer uses a parent-linked scope per function/block);
// Knot's exprLowerer plays the same role but additionally owns the
// closure-capture bookkeeping a dynamically-scoped evaluator never
// needs.
type exprLowerer struct {
	l      *Lowerer
	body   *uir.Body
	module *modtree.Module

	scope []scopeEntry

	parent   *exprLowerer
	captured map[string]ids.ULocalID
}

func newExprLowerer(l *Lowerer, body *uir.Body, module *modtree.Module, parent *exprLowerer) *exprLowerer {
	return &exprLowerer{
		l:        l,
		body:     body,
		module:   module,
		parent:   parent,
		captured: make(map[string]ids.ULocalID),
	}
}

// bind introduces name into the body's locals arena and pushes it onto
// the current scope, returning the new local id. Its type is filled in
// by whoever calls bind once the binding's type is known (a pattern's
// Type, or a let value's Type).
func (el *exprLowerer) bind(name string) ids.ULocalID {
	id := el.body.AddLocal(name, nil)
	el.scope = append(el.scope, scopeEntry{name: name, local: id})
	return id
}

// mark returns the current scope depth, for rollback at block exit.
func (el *exprLowerer) mark() int {
	return len(el.scope)
}

func (el *exprLowerer) rollback(mark int) {
	el.scope = el.scope[:mark]
}

// resolveOwnScope searches only this body's own scope stack, most
// recent binding first (so shadowing resolves correctly).
func (el *exprLowerer) resolveOwnScope(name string) (ids.ULocalID, bool) {
	for i := len(el.scope) - 1; i >= 0; i-- {
		if el.scope[i].name == name {
			return el.scope[i].local, true
		}
	}
	return ids.InvalidULocal, false
}

// captureLocal walks up the parent frame stack looking for name,
// inserting a capture slot into
// every intermediate frame, and returns the newly minted local id in
// the current body. A name already captured reuses its existing slot.
func (el *exprLowerer) captureLocal(name string) (ids.ULocalID, bool) {
	if local, ok := el.resolveOwnScope(name); ok {
		return local, true
	}
	if local, ok := el.captured[name]; ok {
		return local, true
	}
	if el.parent == nil {
		return ids.InvalidULocal, false
	}
	outerLocal, ok := el.parent.captureLocal(name)
	if !ok {
		return ids.InvalidULocal, false
	}
	newLocal := el.body.AddLocal(name, el.parent.body.LocalType(outerLocal))
	el.body.Captures = append(el.body.Captures, uir.CaptureSlot{
		Local:       newLocal,
		OuterLocal:  outerLocal,
		OuterBodyID: el.parent.body.ID,
	})
	el.captured[name] = newLocal
	return newLocal, true
}
