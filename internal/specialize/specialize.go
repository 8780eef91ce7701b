// Package specialize is Specialization: it walks the
// untyped IR from one entry body, and for every substitution a body is
// ever used under, produces one fully ground typed body. Types
// specialize the same way, once per distinct concrete argument list.
//
// Modeled on internal/analyzer two-phase driver in
// spirit (on-demand work discovered by walking from an entry point,
// guarded by an in-flight marker so recursion terminates) but applied
// to a different problem: internal/lowering already did "discover and
// stub", so this package's on-demand walk is over (body, substitution)
// pairs rather than bare body ids.
package specialize

import (
	"fmt"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/tir"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// Subst is a substitution from an untyped-IR variable to a ground
// tir.Type, the "substitution: var -> concrete-type" half of the
// memoization key.
type Subst map[ids.VarID]tir.Type

// ErrRefused is returned by Run when the emitter already holds any
// error (the type context's errors reach it through Finish) —
// specialization never runs over a program known to be ill-formed or
// ill-typed.
var ErrRefused = errRefused{}

type errRefused struct{}

func (errRefused) Error() string { return "specialization refused: type context has errors" }

type bodyKey struct {
	body ids.UBodyID
	sub  string
}

type typeKey struct {
	tid  ids.TypeID
	args string
}

// Specializer owns both memo tables and the typed program under
// construction.
type Specializer struct {
	program *uir.Program
	types   *types.Context
	emitter *diagnostics.Emitter

	out *tir.Program

	bodies map[bodyKey]ids.TBodyID
	ntypes map[typeKey]ids.TTypeID

	// typeArgs recovers the concrete argument list a given tir.TTypeID
	// was instantiated with, since a flattened TNewtype carries no
	// Args of its own —
	// extractGenerics needs the original argument list back to keep
	// walking structurally into a callee's still-generic fields.
	typeArgs map[ids.TTypeID][]tir.Type
}

// New constructs a Specializer over program, using ctx to resolve
// substitutions and newtype declarations left behind by Lowering.
func New(program *uir.Program, ctx *types.Context, emitter *diagnostics.Emitter) *Specializer {
	return &Specializer{
		program:  program,
		types:    ctx,
		emitter:  emitter,
		out:      tir.NewProgram(),
		bodies:   make(map[bodyKey]ids.TBodyID),
		ntypes:   make(map[typeKey]ids.TTypeID),
		typeArgs: make(map[ids.TTypeID][]tir.Type),
	}
}

// Run specializes entry under the empty substitution and returns the
// resulting typed program plus its entry body id.
func (s *Specializer) Run(entry ids.UBodyID) (*tir.Program, ids.TBodyID, error) {
	if s.emitter.HasErrors() {
		return nil, ids.InvalidTBody, ErrRefused
	}
	tbid := s.specializeBody(entry, Subst{})
	s.out.Entry = tbid
	return s.out, tbid, nil
}

// specializeBody returns the typed body for (bid, sub), specializing it
// the first time this exact pair is seen and memoizing thereafter.
func (s *Specializer) specializeBody(bid ids.UBodyID, sub Subst) ids.TBodyID {
	key := bodyKey{body: bid, sub: reprSubst(sub)}
	if existing, ok := s.bodies[key]; ok {
		return existing
	}

	ubody := s.program.Body(bid)
	tbody := s.out.NewBody(ubody.Name)
	// Recorded before the expression is specialized, to break
	// recursion.
	s.bodies[key] = tbody.ID

	tbody.Locals = make([]tir.LocalDecl, len(ubody.Locals))
	for i, l := range ubody.Locals {
		tbody.Locals[i] = tir.LocalDecl{Name: l.Name, Type: s.specializeType(l.Type, sub)}
	}

	tbody.Inputs = make([]*tir.Pattern, len(ubody.Inputs))
	for i, p := range ubody.Inputs {
		tbody.Inputs[i] = s.specializePattern(p, sub)
	}

	tbody.Type = s.specializeType(ubody.Type, sub)

	if ubody.Expr != nil {
		tbody.Expr = s.specializeExpr(ubody.Expr, sub)
	}

	return tbody.ID
}

// specializeType grounds ty under sub: every remaining variable either
// resolves through sub or, if truly unconstrained, defaults to unit.
func (s *Specializer) specializeType(ty types.Type, sub Subst) tir.Type {
	ty = s.types.Substitute(ty)
	switch t := ty.(type) {
	case types.TVar:
		if concrete, ok := sub[t.ID]; ok {
			return concrete
		}
		return tir.Unit
	case types.TPrim:
		return tir.TPrim{Prim: t.Prim}
	case types.TList:
		return tir.TList{Elem: s.specializeType(t.Elem, sub)}
	case types.TTuple:
		elems := make([]tir.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = s.specializeType(e, sub)
		}
		return tir.TTuple{Elems: elems}
	case types.TFunc:
		return tir.TFunc{Param: s.specializeType(t.Param, sub), Result: s.specializeType(t.Result, sub)}
	case types.TNewtype:
		args := make([]tir.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.specializeType(a, sub)
		}
		return s.specializeNewtype(t.ID, args)
	default:
		panic(fmt.Sprintf("specialize: unhandled type shape %T", ty))
	}
}

// specializeNewtype returns the ground tir type for one concrete
// instantiation of a record, union or alias, memoized by (uir-tid,
// [concrete-type]) for records and unions. Alias newtypes never
// allocate an id — they're unfolded one step and specialized
// transparently under the declaration's own generic substitution.
func (s *Specializer) specializeNewtype(tid ids.TypeID, args []tir.Type) tir.Type {
	decl := s.types.Newtype(tid)
	if decl == nil {
		panic(fmt.Sprintf("specialize: unknown newtype id %d", tid))
	}

	genSub := make(Subst, len(decl.Generics))
	for i, g := range decl.Generics {
		if i < len(args) {
			genSub[g.Var] = args[i]
		}
	}

	if decl.Kind == types.KindAlias {
		return s.specializeType(decl.Alias, genSub)
	}

	key := typeKey{tid: tid, args: reprTirTypes(args)}
	if existing, ok := s.ntypes[key]; ok {
		return tir.TNewtype{ID: existing}
	}

	kind := tir.KindRecord
	if decl.Kind == types.KindUnion {
		kind = tir.KindUnion
	}
	nt := s.out.NewNewtype(decl.Name, kind)
	s.ntypes[key] = nt.ID
	s.typeArgs[nt.ID] = args

	switch decl.Kind {
	case types.KindRecord:
		nt.Fields = make([]tir.RecordFieldDecl, len(decl.Fields))
		for i, f := range decl.Fields {
			nt.Fields[i] = tir.RecordFieldDecl{Name: f.Name, Type: s.specializeType(f.Type, genSub)}
		}
	case types.KindUnion:
		nt.Variants = make([]tir.VariantDecl, len(decl.Variants))
		for i, v := range decl.Variants {
			vd := tir.VariantDecl{Name: v.Name, BodyID: ids.InvalidTBody}
			if v.Payload != nil {
				vd.Payload = s.specializeType(v.Payload, genSub)
			}
			if v.BodyID != ids.InvalidUBody {
				vd.BodyID = s.specializeBody(v.BodyID, genSub)
			}
			nt.Variants[i] = vd
		}
	}

	return tir.TNewtype{ID: nt.ID}
}

func (s *Specializer) specializePattern(p *uir.Pattern, sub Subst) *tir.Pattern {
	ty := s.specializeType(p.Type, sub)

	var out *tir.Pattern
	switch p.KindOf() {
	case uir.PWildcard:
		out = tir.NewWildcard()
	case uir.PBinding:
		out = tir.NewBinding(ids.TLocalID(p.Local))
	case uir.PTuple:
		elems := make([]*tir.Pattern, len(p.Elems))
		for i, e := range p.Elems {
			elems[i] = s.specializePattern(e, sub)
		}
		out = tir.NewTuplePattern(elems)
	case uir.PBool:
		out = tir.NewBoolPattern(p.BoolVal)
	case uir.PInt:
		out = tir.NewIntPattern(p.IntVal)
	case uir.PStr:
		out = tir.NewStrPattern(p.StrVal)
	case uir.PVariant:
		tnt, ok := ty.(tir.TNewtype)
		if !ok {
			panic("specialize: variant pattern subject did not specialize to a newtype")
		}
		var subPat *tir.Pattern
		if p.Sub != nil {
			subPat = s.specializePattern(p.Sub, sub)
		}
		out = tir.NewVariantPattern(tnt.ID, p.VariantName, subPat)
	case uir.PListEmpty:
		out = tir.NewListEmptyPattern()
	case uir.PListCons:
		out = tir.NewListConsPattern(s.specializePattern(p.Head, sub), s.specializePattern(p.Tail, sub))
	default:
		panic(fmt.Sprintf("specialize: unhandled pattern kind %v", p.KindOf()))
	}
	out.Type = ty
	return out
}

func (s *Specializer) specializeExpr(e *uir.Expr, sub Subst) *tir.Expr {
	ty := s.specializeType(e.Type, sub)

	var out *tir.Expr
	switch e.KindOf() {
	case uir.EInt:
		out = tir.NewInt(e.IntVal)
	case uir.EBool:
		out = tir.NewBool(e.BoolVal)
	case uir.EStr:
		out = tir.NewStr(e.StrVal)
	case uir.EFormat:
		parts := make([]tir.FormatPart, len(e.FormatParts))
		for i, p := range e.FormatParts {
			tp := tir.FormatPart{Literal: p.Literal}
			if p.Expr != nil {
				tp.Expr = s.specializeExpr(p.Expr, sub)
			}
			parts[i] = tp
		}
		out = tir.NewFormat(parts)
	case uir.ELocal:
		out = tir.NewLocal(ids.TLocalID(e.Local))
	case uir.EBodyRef:
		out = s.specializeBodyRef(e, sub)
	case uir.ELet:
		out = tir.NewLet(s.specializePattern(e.LetPattern, sub), s.specializeExpr(e.LetValue, sub))
	case uir.ERecord:
		fields := make([]tir.FieldInit, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = tir.FieldInit{Name: f.Name, Expr: s.specializeExpr(f.Expr, sub)}
		}
		tnt, ok := ty.(tir.TNewtype)
		if !ok {
			panic("specialize: record literal did not specialize to a newtype")
		}
		out = tir.NewRecord(tnt.ID, fields)
	case uir.EWith:
		fields := make([]tir.FieldInit, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = tir.FieldInit{Name: f.Name, Expr: s.specializeExpr(f.Expr, sub)}
		}
		out = tir.NewWith(s.specializeExpr(e.WithTarget, sub), fields)
	case uir.EListEmpty:
		out = tir.NewListEmpty()
	case uir.EListCons:
		out = tir.NewListCons(s.specializeExpr(e.Head, sub), s.specializeExpr(e.Tail, sub))
	case uir.ETuple:
		elems := make([]*tir.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = s.specializeExpr(el, sub)
		}
		out = tir.NewTuple(elems)
	case uir.EVariant:
		tnt, ok := ty.(tir.TNewtype)
		if !ok {
			panic("specialize: variant expression did not specialize to a newtype")
		}
		var arg *tir.Expr
		if e.Arg != nil {
			arg = s.specializeExpr(e.Arg, sub)
		}
		out = tir.NewVariant(tnt.ID, e.VariantName, arg)
	case uir.ECall:
		args := make([]*tir.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = s.specializeExpr(a, sub)
		}
		out = tir.NewCall(s.specializeExpr(e.Callee, sub), args)
	case uir.EBinary:
		out = tir.NewBinary(e.Op, s.specializeExpr(e.Left, sub), s.specializeExpr(e.Right, sub))
	case uir.ETry:
		out = tir.NewTry(s.specializeExpr(e.TryValue, sub))
	case uir.EField:
		out = tir.NewFieldAccess(s.specializeExpr(e.Target, sub), e.FieldName)
	case uir.EMatch:
		arms := make([]tir.MatchArm, len(e.Arms))
		for i, a := range e.Arms {
			arms[i] = tir.MatchArm{Pattern: s.specializePattern(a.Pattern, sub), Expr: s.specializeExpr(a.Expr, sub)}
		}
		out = tir.NewMatch(s.specializeExpr(e.Subject, sub), arms)
	case uir.EBlock:
		stmts := make([]*tir.Expr, len(e.Stmts))
		for i, st := range e.Stmts {
			stmts[i] = s.specializeExpr(st, sub)
		}
		out = tir.NewBlock(stmts)
	default:
		panic(fmt.Sprintf("specialize: unhandled expr kind %v", e.KindOf()))
	}
	out.Type = ty
	return out
}

// specializeBodyRef resolves one body-reference expression. A
// non-instantiated reference (a recursive self-call under call-site
// polymorphism) reuses the parent substitution unchanged so the memo
// table converges; an instantiated reference computes a fresh child
// substitution via extractGenerics against the callee's still-generic
// declared type.
func (s *Specializer) specializeBodyRef(e *uir.Expr, sub Subst) *tir.Expr {
	if !e.Instantiated {
		return tir.NewBodyRef(s.specializeBody(e.Body, sub))
	}

	callee := s.program.Body(e.Body)
	concrete := s.specializeType(e.Type, sub)
	childSub := Subst{}
	if err := extractGenerics(s, callee.Type, concrete, childSub); err != nil {
		panic("specialize: " + err.Error())
	}
	return tir.NewBodyRef(s.specializeBody(e.Body, childSub))
}

func reprSubst(sub Subst) string {
	if len(sub) == 0 {
		return ""
	}
	keys := make([]int, 0, len(sub))
	reprs := make(map[int]string, len(sub))
	for v, t := range sub {
		keys = append(keys, int(v))
		reprs[int(v)] = reprTirType(t)
	}
	sortInts(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%d=%s;", k, reprs[k])
	}
	return out
}

func reprTirTypes(ts []tir.Type) string {
	out := ""
	for _, t := range ts {
		out += reprTirType(t) + ","
	}
	return out
}

func reprTirType(t tir.Type) string {
	switch v := t.(type) {
	case tir.TPrim:
		return v.Prim.String()
	case tir.TList:
		return "list<" + reprTirType(v.Elem) + ">"
	case tir.TTuple:
		return "(" + reprTirTypes(v.Elems) + ")"
	case tir.TFunc:
		return reprTirType(v.Param) + "->" + reprTirType(v.Result)
	case tir.TNewtype:
		return fmt.Sprintf("t%d", v.ID)
	default:
		return "?"
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
