// Package lowering walks the parsed AST forest and produces the
// untyped IR: a two-pass pipeline that first stubs out
// every declaration so forward references resolve, then fills in
// newtypes, externs and function bodies — most of the interesting
// engineering in the type-aware middle end.
//
// Modeled on internal/analyzer package: a two-phase
// "collect headers, then analyze bodies" driver
// (HeadersAnalyzed/BodiesAnalyzed flags on internal/modules.Module)
// with on-demand, reference-driven body analysis guarded by an
// "analyzing" flag to detect in-flight recursion — Knot's Lowerer
// below keeps that same on-demand-plus-in-flight-marker shape but
// builds an explicit untyped IR (internal/uir) instead of annotating
// the AST in place.
package lowering

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/modtree"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// FileUnit pairs a parsed file with the module it contributes to (a
// module may be backed by several files, as with prior art's
// internal/modules.Module.Files).
type FileUnit struct {
	File   *ast.File
	Module ids.ModuleID
}

// Lowerer owns every piece of state Pass 1 and Pass 2 thread through:
// the module tree being populated, the type context accumulating
// substitutions and diagnostics, and the untyped IR under construction.
type Lowerer struct {
	Tree    *modtree.Tree
	Types   *types.Context
	Program *uir.Program
	Emitter *diagnostics.Emitter

	files []FileUnit

	// ascriptions collected in Pass 1, applied at the end of Pass 2 step
	// 6.
	ascriptions []pendingAscription

	// externs collected in Pass 1 for step 4.
	externs []pendingExtern

	// newtypeDecls collected in Pass 1 for step 3, in declaration order,
	// each paired with the AST node that declared it.
	newtypeDecls []pendingNewtype

	// funcDecls collected in Pass 1 for on-demand lowering in step 5.
	funcDecls map[ids.UBodyID]pendingFunc

	// importSpans records each import's span for diagnostics, since
	// modtree.Module.Imports only keeps the path.
	importSpans map[ids.ModuleID]map[string]source.Span

	// loweringStack is the stack of body ids currently being lowered
	// on-demand, used to detect when a body reference is part of the
	// active recursion cycle.
	loweringStack []ids.UBodyID
	lowered       map[ids.UBodyID]bool
}

type pendingNewtype struct {
	decl   *ast.NewtypeDecl
	tid    ids.TypeID
	module ids.ModuleID
}

type pendingExtern struct {
	decl   *ast.ExternDecl
	bid    ids.UBodyID
	module ids.ModuleID
}

type pendingFunc struct {
	decl   *ast.FuncDecl
	module ids.ModuleID
}

type pendingAscription struct {
	decl   *ast.Ascription
	bid    ids.UBodyID
	module ids.ModuleID
}

// New constructs a Lowerer ready to run Pass 1 over files.
func New(emitter *diagnostics.Emitter) *Lowerer {
	tree := modtree.New(emitter)
	return &Lowerer{
		Tree:        tree,
		Types:       types.NewContext(make(map[ids.TypeID]*types.Newtype)),
		Program:     uir.NewProgram(),
		Emitter:     emitter,
		funcDecls:   make(map[ids.UBodyID]pendingFunc),
		importSpans: make(map[ids.ModuleID]map[string]source.Span),
		lowered:     make(map[ids.UBodyID]bool),
	}
}

// Run executes both passes over every file: Pass 1 over all files
// completes before Pass 2 begins; within Pass 2, newtypes finalize
// before externs before functions before ascriptions before
// type-context finalization.
func (l *Lowerer) Run(files []FileUnit, entryModule []string, entryName string) (ids.UBodyID, error) {
	l.files = files

	for _, fu := range files {
		l.pass1(fu)
	}

	l.Tree.ReexportRoot()
	l.Tree.ResolveImports(l.importSpans)

	l.lowerNewtypes()
	l.lowerExterns()

	entryMod, ok := l.Tree.Root.Lookup(entryModule)
	if !ok {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedModule, source.Span{},
			"entry module not found"))
		return ids.InvalidUBody, errLowering{}
	}
	entryBid, ok := entryMod.Bodies[entryName]
	if !ok {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedPath, source.Span{},
			"entry body not found"))
		return ids.InvalidUBody, errLowering{}
	}
	l.lowerBodyOnDemand(entryBid)

	l.applyAscriptions()

	if err := l.Types.Finish(l.Emitter); err != nil {
		return entryBid, err
	}
	return entryBid, nil
}

type errLowering struct{}

func (errLowering) Error() string { return "lowering failed" }

// lowerBodyOnDemand lowers bid's function body the first time anything
// references it, pushing it onto the
// in-flight stack so recursive self-reference is detected rather than
// re-entered.
func (l *Lowerer) lowerBodyOnDemand(bid ids.UBodyID) {
	if l.lowered[bid] {
		return
	}
	pf, ok := l.funcDecls[bid]
	if !ok {
		// Extern, variant constructor, or already fully built — nothing
		// to lower on demand.
		l.lowered[bid] = true
		return
	}
	l.lowered[bid] = true
	l.loweringStack = append(l.loweringStack, bid)
	l.lowerFuncBody(bid, pf)
	l.loweringStack = l.loweringStack[:len(l.loweringStack)-1]
}

// inRecursionCycle reports whether callee is currently on the
// in-flight lowering stack, i.e. whether the active call chain being
// lowered on-demand already includes it.
func (l *Lowerer) inRecursionCycle(callee ids.UBodyID) bool {
	for _, b := range l.loweringStack {
		if b == callee {
			return true
		}
	}
	return false
}
