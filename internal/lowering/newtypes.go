package lowering

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerNewtypes is Pass 2 step 3: record fields/variants
// become real types; variant constructors' bodies become either a
// nullary expression producing the tagged value, or a one-argument
// function wrapping its argument.
func (l *Lowerer) lowerNewtypes() {
	for _, pn := range l.newtypeDecls {
		mod := l.Tree.ByID(pn.module)
		decl := l.Types.Newtype(pn.tid)

		scope := newGenericScope()
		scope.seed(decl.Generics)

		switch k := pn.decl.Kind.(type) {
		case ast.RecordKind:
			fields := make([]types.RecordFieldDecl, len(k.Fields))
			for i, f := range k.Fields {
				fields[i] = types.RecordFieldDecl{Name: f.Name, Type: l.lowerTypeExpr(f.Type, mod, scope)}
			}
			decl.Fields = fields

		case ast.UnionKind:
			variants := make([]types.VariantTypeDecl, len(k.Variants))
			for i, v := range k.Variants {
				ref := mod.Variants[v.Name]
				var payload types.Type
				if v.Payload != nil {
					payload = l.lowerTypeExpr(v.Payload, mod, scope)
				}
				variants[i] = types.VariantTypeDecl{Name: v.Name, Payload: payload, BodyID: ref.BodyID}
				l.lowerVariantConstructor(ref.BodyID, pn.tid, v.Name, payload, pn.decl.Span())
			}
			decl.Variants = variants

		case ast.AliasKind:
			decl.Alias = l.lowerTypeExpr(k.Type, mod, scope)
		}
	}
}

// lowerVariantConstructor fills the stub body a union variant was
// given in Pass 1: a nullary constant for a payload-less variant, or a
// one-parameter function for a variant carrying a value.
func (l *Lowerer) lowerVariantConstructor(bid ids.UBodyID, tid ids.TypeID, name string, payload types.Type, span source.Span) {
	body := l.Program.Body(bid)

	if payload == nil {
		body.Expr = uir.NewVariant(tid, name, nil, span)
		body.Type = types.TNewtype{ID: tid, Args: genericArgs(l.Types.Newtype(tid))}
		return
	}

	argLocal := body.AddLocal("arg", payload)
	argPattern := uir.NewBinding(argLocal, span)
	argPattern.Type = payload
	body.Inputs = []*uir.Pattern{argPattern}

	ref := uir.NewLocal(argLocal, span)
	ref.Type = payload
	body.Expr = uir.NewVariant(tid, name, ref, span)
	body.Expr.Type = types.TNewtype{ID: tid, Args: genericArgs(l.Types.Newtype(tid))}
	body.Type = types.TFunc{Param: payload, Result: body.Expr.Type}
}

func genericArgs(decl *types.Newtype) []types.Type {
	args := make([]types.Type, len(decl.Generics))
	for i, g := range decl.Generics {
		args[i] = types.TVar{ID: g.Var}
	}
	return args
}
