package tir

import "github.com/knotlang/knotc/internal/ids"

// Program is the whole-program specialized output: every reachable
// body and newtype instantiation, plus the entry body the backend
// starts emitting from.
type Program struct {
	Bodies   []*Body
	Newtypes []*Newtype
	Entry    ids.TBodyID
}

func NewProgram() *Program {
	return &Program{}
}

func (p *Program) NewBody(name string) *Body {
	id := ids.TBodyID(len(p.Bodies))
	b := &Body{ID: id, Name: name}
	p.Bodies = append(p.Bodies, b)
	return b
}

func (p *Program) Body(id ids.TBodyID) *Body {
	return p.Bodies[id]
}

func (p *Program) NewNewtype(name string, kind NewtypeKindTag) *Newtype {
	id := ids.TTypeID(len(p.Newtypes))
	nt := &Newtype{ID: id, Name: name, Kind: kind}
	p.Newtypes = append(p.Newtypes, nt)
	return nt
}

func (p *Program) Newtype(id ids.TTypeID) *Newtype {
	return p.Newtypes[id]
}
