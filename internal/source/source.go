// Package source owns the identity of source files fed to the compiler:
// each file gets a stable UUID-backed id, and every span produced by the
// lexer, parser and every later stage is stamped with that id so
// diagnostics can point back at the right file without threading a
// *File pointer through the whole pipeline.
package source

import (
	"github.com/google/uuid"
)

// ID identifies one source file for the lifetime of a single compilation.
// Backed by a UUID rather than a small int so that spans produced by
// independent goroutines (e.g. an LSP server juggling several open
// buffers) never collide even before they're registered in a shared set.
type ID uuid.UUID

func (id ID) String() string { return uuid.UUID(id).String() }

// Span is a half-open byte range `[Lo, Hi)` into the source named by
// SourceID.
type Span struct {
	SourceID ID
	Lo, Hi   uint32
}

// Zero reports whether the span was never set (the default value for an
// unspanned synthetic node, e.g. a compiler-injected wildcard pattern).
func (s Span) Zero() bool {
	return s.SourceID == ID{} && s.Lo == 0 && s.Hi == 0
}

// Cover returns the smallest span containing both a and b. Used when
// assembling a parent node's span from its children (e.g. a call
// expression's span from callee ∪ arguments).
func Cover(a, b Span) Span {
	if a.Zero() {
		return b
	}
	if b.Zero() {
		return a
	}
	lo, hi := a.Lo, a.Hi
	if b.Lo < lo {
		lo = b.Lo
	}
	if b.Hi > hi {
		hi = b.Hi
	}
	sid := a.SourceID
	return Span{SourceID: sid, Lo: lo, Hi: hi}
}

// File is a single source file registered with a Set.
type File struct {
	ID       ID
	Path     string
	Contents string
}

// Set assigns and tracks source ids for one compilation session. It is the
// one place `uuid.New` is called from in the compiler: every other package
// receives a Span whose SourceID it treats as opaque.
type Set struct {
	files map[ID]*File
	order []ID
}

func NewSet() *Set {
	return &Set{files: make(map[ID]*File)}
}

// Add registers a file's contents and returns its new source id.
func (s *Set) Add(path, contents string) *File {
	f := &File{ID: ID(uuid.New()), Path: path, Contents: contents}
	s.files[f.ID] = f
	s.order = append(s.order, f.ID)
	return f
}

func (s *Set) File(id ID) (*File, bool) {
	f, ok := s.files[id]
	return f, ok
}

// Files returns the registered files in registration order.
func (s *Set) Files() []*File {
	out := make([]*File, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.files[id])
	}
	return out
}

// LineCol converts a byte offset into a 1-based (line, column) pair for
// rendering a caret under a diagnostic label.
func (f *File) LineCol(offset uint32) (line, col int) {
	line, col = 1, 1
	for i := 0; i < int(offset) && i < len(f.Contents); i++ {
		if f.Contents[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
