package lowering

import (
	"github.com/knotlang/knotc/internal/ids"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerFuncBody lowers a function's body: a root ExprLowerer (no
// parent scope) is introduced for the declaring module;
// each parameter pattern receives a fresh input variable and is lowered
// into the body's input list; the body expression is then lowered; the
// function's overall type is assembled as the right-fold input₁ →
// (input₂ → … → result) and unified with the Pass 1 stub.
func (l *Lowerer) lowerFuncBody(bid ids.UBodyID, pf pendingFunc) {
	body := l.Program.Body(bid)
	mod := l.Tree.ByID(pf.module)

	el := newExprLowerer(l, body, mod, nil)

	inputTypes := make([]types.Type, len(pf.decl.Params))
	inputs := make([]*uir.Pattern, len(pf.decl.Params))
	for i, p := range pf.decl.Params {
		v := l.Types.FreshVar(pf.decl.Span())
		inputTypes[i] = v
		inputs[i] = el.lowerPattern(p, v)
	}
	body.Inputs = inputs

	result := el.lowerExpr(pf.decl.Body)
	body.Expr = result

	fnTy := result.Type
	for i := len(inputTypes) - 1; i >= 0; i-- {
		fnTy = types.TFunc{Param: inputTypes[i], Result: fnTy}
	}
	l.Types.Unify(body.Type, fnTy, pf.decl.Span())
	body.Type = fnTy
}
