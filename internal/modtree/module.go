// Package modtree is the Module Tree & Resolver: a tree of
// modules, each holding submodules, bodies, newtypes and variants, plus
// a fifth map of imports still waiting to be resolved.
//
// Modeled on internal/modules.Module: prior art keeps a
// flat Imports map[alias]*Module plus a SymbolTable per module and
// resolves everything during a single analyzer pass
// (internal/analyzer/resolver_wrapper.go wraps the table as a
// typesystem.Resolver). Knot splits one symbol table into four typed
// maps because submodule, body, newtype and variant are four
// independent namespaces that can all match the same import segment
// simultaneously, rather than one shared symbol space.
package modtree

import (
	"github.com/knotlang/knotc/internal/ids"
)

// VariantRef names one declared union variant: which newtype owns it,
// and its constructor body.
type VariantRef struct {
	NewtypeID ids.TypeID
	Name      string
	BodyID    ids.UBodyID
}

// Module is one node of the tree.
type Module struct {
	ID   ids.ModuleID
	Name string

	Submodules map[string]*Module
	Bodies     map[string]ids.UBodyID
	Newtypes   map[string]ids.TypeID
	Variants   map[string]VariantRef

	// Imports maps a local name to the remaining, not-yet-resolved path
	// segments naming what it should bind to. Resolving an import
	// deletes its entry.
	Imports map[string][]string
}

func newModule(id ids.ModuleID, name string) *Module {
	return &Module{
		ID:         id,
		Name:       name,
		Submodules: make(map[string]*Module),
		Bodies:     make(map[string]ids.UBodyID),
		Newtypes:   make(map[string]ids.TypeID),
		Variants:   make(map[string]VariantRef),
		Imports:    make(map[string][]string),
	}
}

// Lookup walks path through Submodules starting from m, returning the
// terminal module or false if any segment is missing. Used for both module imports and qualified references.
func (m *Module) Lookup(path []string) (*Module, bool) {
	cur := m
	for _, seg := range path {
		next, ok := cur.Submodules[seg]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Binding is everything a single local name can resolve to in a module:
// zero or more of {submodule, body, newtype, variant} at once (spec
// §4.2 "when multiple categories match, all are imported").
type Binding struct {
	Submodule *Module
	Body      (*ids.UBodyID)
	Newtype   (*ids.TypeID)
	Variant   *VariantRef
}

func (b Binding) Empty() bool {
	return b.Submodule == nil && b.Body == nil && b.Newtype == nil && b.Variant == nil
}

// lookupLocal collects every category under name declared directly in m
// (not searching submodules) — the building block for resolving an
// import's last segment.
func (m *Module) lookupLocal(name string) Binding {
	var b Binding
	if sub, ok := m.Submodules[name]; ok {
		b.Submodule = sub
	}
	if bid, ok := m.Bodies[name]; ok {
		id := bid
		b.Body = &id
	}
	if tid, ok := m.Newtypes[name]; ok {
		id := tid
		b.Newtype = &id
	}
	if v, ok := m.Variants[name]; ok {
		vv := v
		b.Variant = &vv
	}
	return b
}

// Define installs name under every category present in b into m,
// merging rather than overwriting so a name imported under multiple
// categories keeps all of them.
func (m *Module) Define(name string, b Binding) {
	if b.Submodule != nil {
		m.Submodules[name] = b.Submodule
	}
	if b.Body != nil {
		m.Bodies[name] = *b.Body
	}
	if b.Newtype != nil {
		m.Newtypes[name] = *b.Newtype
	}
	if b.Variant != nil {
		m.Variants[name] = *b.Variant
	}
}
