package types

import (
	"sync/atomic"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
)

// globalVarID is the process-wide monotonic counter backing fresh-var
//. It is
// package-level rather than a Context field so that two *Context
// instances in the same process (e.g. two packages compiled
// concurrently by a future build driver) never allocate the same
// variable id.
var globalVarID atomic.Int64

func nextVarID() ids.VarID {
	return ids.VarID(globalVarID.Add(1))
}

// Context owns the newtype registry, substitution table, per-variable
// bounds, and the unification recursion cache, plus a scratch
// diagnostics buffer drained by Finish.
type Context struct {
	newtypes   map[ids.TypeID]*Newtype
	nextTypeID int

	subst  map[ids.VarID]Type
	bounds map[ids.VarID]*Bounds

	// recursionCache short-circuits unify(lhs, rhs) pairs already in
	// flight, so a self-referential alias chain can't unfold forever
	//.
	recursionCache map[recursionKey]bool

	diags []*diagnostics.Diagnostic
}

type recursionKey struct {
	a, b string
}

func NewContext(newtypes map[ids.TypeID]*Newtype) *Context {
	return &Context{
		newtypes:       newtypes,
		nextTypeID:     len(newtypes),
		subst:          make(map[ids.VarID]Type),
		bounds:         make(map[ids.VarID]*Bounds),
		recursionCache: make(map[recursionKey]bool),
	}
}

func (c *Context) Newtype(id ids.TypeID) *Newtype {
	return c.newtypes[id]
}

// Register allocates a fresh TypeID for nt, installs it in the registry
// and stamps it onto nt.ID, mirroring how Pass 1 allocates a tid for
// every newtype declaration.
func (c *Context) Register(nt *Newtype) ids.TypeID {
	id := ids.TypeID(c.nextTypeID)
	c.nextTypeID++
	nt.ID = id
	c.newtypes[id] = nt
	return id
}

// FreshVar allocates a new variable with no bounds and no substitution,
// monotonically, process-wide.
func (c *Context) FreshVar(span source.Span) TVar {
	return TVar{ID: nextVarID(), Origin: span}
}

func (c *Context) report(d *diagnostics.Diagnostic) {
	c.diags = append(c.diags, d)
}

// Finish drains every diagnostic recorded since the context was created
// into target, and returns an error if any of them were at Error level
// -> ok/err").
func (c *Context) Finish(target *diagnostics.Emitter) error {
	hadError := false
	for _, d := range c.diags {
		target.Push(d)
		if d.Level == diagnostics.Error {
			hadError = true
		}
	}
	c.diags = nil
	if hadError {
		return errFinish{}
	}
	return nil
}

type errFinish struct{}

func (errFinish) Error() string { return "type context recorded errors" }

// chase follows the substitution chain shallowly: if ty is a variable
// bound to something, follow to the end of the chain, but does not
// recurse into the type's structure.
func (c *Context) chase(ty Type) Type {
	for {
		v, ok := ty.(TVar)
		if !ok {
			return ty
		}
		next, ok := c.subst[v.ID]
		if !ok {
			return ty
		}
		ty = next
	}
}

func (c *Context) boundsOf(id ids.VarID) *Bounds {
	b, ok := c.bounds[id]
	if !ok {
		b = newBounds()
		c.bounds[id] = b
	}
	return b
}

// bind sets var ↦ ty in the substitution table, re-asserting the
// variable's accumulated bounds against ty.
func (c *Context) bind(v TVar, ty Type, span source.Span) {
	if other, ok := ty.(TVar); ok && other.ID == v.ID {
		return
	}
	b := c.bounds[v.ID]
	c.subst[v.ID] = ty
	if b == nil || b.Empty() {
		return
	}
	if b.Number {
		c.Number(ty, span)
	}
	for name, expected := range b.Fields {
		c.Field(ty, name, expected, span)
	}
}
