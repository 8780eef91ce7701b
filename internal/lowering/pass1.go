package lowering

import (
	"fmt"

	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/modtree"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
)

// pass1 installs a stub for every declaration in one file, so every name in the module is resolvable
// before any function body is lowered, regardless of declaration order.
func (l *Lowerer) pass1(fu FileUnit) {
	mod := l.Tree.ByID(fu.Module)
	if l.importSpans[fu.Module] == nil {
		l.importSpans[fu.Module] = make(map[string]source.Span)
	}

	for _, item := range fu.File.Items {
		switch it := item.(type) {
		case *ast.Import:
			l.declareImport(mod, it)
		case *ast.NewtypeDecl:
			l.declareNewtype(mod, fu.Module, it)
		case *ast.FuncDecl:
			l.declareFunc(mod, fu.Module, it)
		case *ast.ExternDecl:
			l.declareExtern(mod, fu.Module, it)
		case *ast.Ascription:
			l.declareAscription(mod, fu.Module, it)
		}
	}
}

// declaredLocally reports whether name is already bound under any of
// submodule/body/newtype/variant directly in mod (ignoring imports and
// the root re-export, which haven't run yet during Pass 1).
func declaredLocally(mod *modtree.Module, name string) bool {
	if _, ok := mod.Submodules[name]; ok {
		return true
	}
	if _, ok := mod.Bodies[name]; ok {
		return true
	}
	if _, ok := mod.Newtypes[name]; ok {
		return true
	}
	if _, ok := mod.Variants[name]; ok {
		return true
	}
	return false
}

func (l *Lowerer) declareImport(mod *modtree.Module, it *ast.Import) {
	if len(it.Path) == 0 {
		return
	}
	local := it.Path[len(it.Path)-1]
	if _, dup := mod.Imports[local]; dup {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedImport, it.Span(),
			fmt.Sprintf("duplicate import of %q in this module", local)))
		return
	}
	mod.Imports[local] = it.Path
	l.importSpans[mod.ID][local] = it.Span()
}

// declareNewtype allocates a tid, a fresh variable per generic
// parameter, an empty-skeleton kind, and — for a union — a stub
// constructor body per variant.
func (l *Lowerer) declareNewtype(mod *modtree.Module, modID ids.ModuleID, it *ast.NewtypeDecl) {
	if declaredLocally(mod, it.Name) {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrDuplicateNewtype, it.Span(),
			fmt.Sprintf("%q already declared in this module", it.Name)))
		return
	}

	generics := make([]types.GenericParam, len(it.Generics))
	for i, name := range it.Generics {
		generics[i] = types.GenericParam{Name: name, Var: l.Types.FreshVar(it.Span()).ID}
	}

	nt := &types.Newtype{
		Name:     it.Name,
		Generics: generics,
		Arity:    len(generics),
	}

	switch it.Kind.(type) {
	case ast.UnionKind:
		nt.Kind = types.KindUnion
	case ast.RecordKind:
		nt.Kind = types.KindRecord
	case ast.AliasKind:
		nt.Kind = types.KindAlias
	}

	tid := l.Types.Register(nt)
	mod.Newtypes[it.Name] = tid

	if union, ok := it.Kind.(ast.UnionKind); ok {
		for _, v := range union.Variants {
			if _, dup := mod.Bodies[v.Name]; dup {
				l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrDuplicateVariant, it.Span(),
					fmt.Sprintf("variant %q already declared", v.Name)))
				continue
			}
			body := l.Program.NewBody(v.Name, modID)
			body.Type = l.Types.FreshVar(it.Span())
			mod.Bodies[v.Name] = body.ID
			mod.Variants[v.Name] = modtree.VariantRef{NewtypeID: tid, Name: v.Name, BodyID: body.ID}
		}
	}

	l.newtypeDecls = append(l.newtypeDecls, pendingNewtype{decl: it, tid: tid, module: modID})
}

func (l *Lowerer) declareFunc(mod *modtree.Module, modID ids.ModuleID, it *ast.FuncDecl) {
	if declaredLocally(mod, it.Name) {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrDuplicateBody, it.Span(),
			fmt.Sprintf("%q already declared in this module", it.Name)))
		return
	}
	body := l.Program.NewBody(it.Name, modID)
	body.Type = l.Types.FreshVar(it.Span())
	mod.Bodies[it.Name] = body.ID
	l.funcDecls[body.ID] = pendingFunc{decl: it, module: modID}
}

func (l *Lowerer) declareExtern(mod *modtree.Module, modID ids.ModuleID, it *ast.ExternDecl) {
	if declaredLocally(mod, it.Name) {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrDuplicateBody, it.Span(),
			fmt.Sprintf("%q already declared in this module", it.Name)))
		return
	}
	body := l.Program.NewBody(it.Name, modID)
	body.Type = l.Types.FreshVar(it.Span())
	mod.Bodies[it.Name] = body.ID
	l.externs = append(l.externs, pendingExtern{decl: it, bid: body.ID, module: modID})
}

func (l *Lowerer) declareAscription(mod *modtree.Module, modID ids.ModuleID, it *ast.Ascription) {
	bid, ok := mod.Bodies[it.Name]
	if !ok {
		l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrUnresolvedLocal, it.Span(),
			fmt.Sprintf("ascription for undeclared name %q", it.Name)))
		return
	}
	l.ascriptions = append(l.ascriptions, pendingAscription{decl: it, bid: bid, module: modID})
}
