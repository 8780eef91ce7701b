package modtree

import (
	"fmt"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

// Tree owns every module declared by a compilation, keyed by a
// monotonically allocated ModuleID, plus the distinguished root.
type Tree struct {
	Root    *Module
	byID    map[ids.ModuleID]*Module
	nextID  int
	emitter *diagnostics.Emitter
}

func New(emitter *diagnostics.Emitter) *Tree {
	t := &Tree{byID: make(map[ids.ModuleID]*Module), emitter: emitter}
	t.Root = t.newModule("")
	return t
}

func (t *Tree) newModule(name string) *Module {
	id := ids.ModuleID(t.nextID)
	t.nextID++
	m := newModule(id, name)
	t.byID[id] = m
	return m
}

// Ensure walks path from the root, creating any missing submodule along
// the way, and returns the terminal module — the declaration-time
// counterpart to Lookup.
func (t *Tree) Ensure(path []string) *Module {
	cur := t.Root
	for _, seg := range path {
		next, ok := cur.Submodules[seg]
		if !ok {
			next = t.newModule(seg)
			cur.Submodules[seg] = next
		}
		cur = next
	}
	return cur
}

func (t *Tree) ByID(id ids.ModuleID) *Module {
	return t.byID[id]
}

// ReexportRoot makes every module inherit the root's top-level
// submodules under the same names, so e.g. `std` is visible everywhere
// without an explicit import. Run once,
// after every module has been declared, before import resolution (spec
// §4.3 Pass 2 step 1).
func (t *Tree) ReexportRoot() {
	for _, m := range t.byID {
		if m == t.Root {
			continue
		}
		for name, sub := range t.Root.Submodules {
			if _, exists := m.Submodules[name]; !exists {
				m.Submodules[name] = sub
			}
		}
	}
}

// ResolveImports drains every module's Imports map. Resolution is iterative and may recurse: resolving one
// import can require resolving an earlier import in the same module
// first, so a single pass walks every module's Imports repeatedly,
// following a recursion guard to report cycles as an error rather than
// looping forever.
func (t *Tree) ResolveImports(spans map[ids.ModuleID]map[string]source.Span) {
	for _, m := range t.byID {
		for name := range m.Imports {
			t.resolveOne(m, name, spans, nil)
		}
	}
}

func (t *Tree) resolveOne(m *Module, name string, spans map[ids.ModuleID]map[string]source.Span, inFlight []string) {
	path, stillPending := m.Imports[name]
	if !stillPending {
		// Already resolved (possibly as a side effect of resolving a
		// later import that depended on this one).
		return
	}
	for _, f := range inFlight {
		if f == name {
			t.report(m, name, spans, diagnostics.ErrUnresolvedImport, "import cycle detected")
			delete(m.Imports, name)
			return
		}
	}

	if len(path) == 0 {
		t.report(m, name, spans, diagnostics.ErrUnresolvedImport, "empty import path")
		delete(m.Imports, name)
		return
	}

	// If the first segment is itself an unresolved import of m, resolve
	// it first.
	if _, pending := m.Imports[path[0]]; pending && path[0] != name {
		t.resolveOne(m, path[0], spans, append(inFlight, name))
	}

	owner, ok := m.Lookup(path[:len(path)-1])
	if !ok {
		t.report(m, name, spans, diagnostics.ErrUnresolvedModule,
			fmt.Sprintf("no such module in path %q", joinPath(path)))
		delete(m.Imports, name)
		return
	}

	last := path[len(path)-1]
	b := owner.lookupLocal(last)
	if b.Empty() {
		t.report(m, name, spans, diagnostics.ErrUnresolvedPath,
			fmt.Sprintf("%q not found", joinPath(path)))
		delete(m.Imports, name)
		return
	}

	m.Define(name, b)
	delete(m.Imports, name)
}

func (t *Tree) report(m *Module, name string, spans map[ids.ModuleID]map[string]source.Span, code diagnostics.Code, msg string) {
	span := source.Span{}
	if byName, ok := spans[m.ID]; ok {
		span = byName[name]
	}
	t.emitter.Push(diagnostics.New(diagnostics.Error, code, span, msg))
}

func joinPath(path []string) string {
	out := ""
	for i, seg := range path {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}
