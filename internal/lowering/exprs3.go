package lowering

import (
	"github.com/knotlang/knotc/internal/ast"
	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/types"
	"github.com/knotlang/knotc/internal/uir"
)

// lowerCall lowers the callee, then each argument, threading the
// function type through a chain of fresh result variables so a
// multi-argument call is just repeated single-argument application —
// the mirror image of how Lambda assembles its curried input chain.
func (el *exprLowerer) lowerCall(ex *ast.ECall) *uir.Expr {
	callee := el.lowerExpr(ex.Callee)
	cur := callee
	for _, a := range ex.Args {
		arg := el.lowerExpr(a)
		result := el.l.Types.FreshVar(ex.Span())
		el.l.Types.Unify(cur.Type, types.TFunc{Param: arg.Type, Result: result}, ex.Span())
		n := uir.NewCall(cur, []*uir.Expr{arg}, ex.Span())
		n.Type = result
		cur = n
	}
	return cur
}

// lowerBinary lowers a binary expression: arithmetic requires matching
// operands and a numeric bound; comparison requires matching operands
// and numeric bound, yielding bool; equality requires matching
// operands, yielding bool; logical requires bool operands, yielding
// bool.
func (el *exprLowerer) lowerBinary(ex *ast.EBinary) *uir.Expr {
	lhs := el.lowerExpr(ex.Lhs)
	rhs := el.lowerExpr(ex.Rhs)
	span := ex.Span()

	var resultTy types.Type
	switch ex.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		el.l.Types.Unify(lhs.Type, rhs.Type, span)
		el.l.Types.Number(lhs.Type, span)
		resultTy = lhs.Type
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		el.l.Types.Unify(lhs.Type, rhs.Type, span)
		el.l.Types.Number(lhs.Type, span)
		resultTy = types.Bool
	case ast.OpEq, ast.OpNe:
		el.l.Types.Unify(lhs.Type, rhs.Type, span)
		resultTy = types.Bool
	case ast.OpAnd, ast.OpOr:
		el.l.Types.Unify(lhs.Type, types.Bool, span)
		el.l.Types.Unify(rhs.Type, types.Bool, span)
		resultTy = types.Bool
	default:
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrInternal, span,
			"unhandled binary operator in lowering"))
		resultTy = el.l.Types.FreshVar(span)
	}

	n := uir.NewBinary(ex.Op, lhs, rhs, span)
	n.Type = resultTy
	return n
}

// lowerMatch lowers a match expression: each arm's pattern is subject-typed
// and its body unified into a shared result type; exhaustiveness runs
// after every arm is lowered.
func (el *exprLowerer) lowerMatch(ex *ast.EMatch) *uir.Expr {
	subject := el.lowerExpr(ex.Subject)
	result := el.l.Types.FreshVar(ex.Span())

	arms := make([]uir.MatchArm, len(ex.Arms))
	for i, arm := range ex.Arms {
		mark := el.mark()
		pat := el.lowerPattern(arm.Pattern, subject.Type)
		body := el.lowerExpr(arm.Body)
		el.l.Types.Unify(body.Type, result, ex.Span())
		el.rollback(mark)
		arms[i] = uir.MatchArm{Pattern: pat, Expr: body}
	}

	if !checkExhaustive(el.l, arms, ex.Span()) {
		el.l.Emitter.Push(diagnostics.New(diagnostics.Error, diagnostics.ErrNonExhaustive, ex.Span(),
			"match is not exhaustive"))
	}

	n := uir.NewMatch(subject, arms, ex.Span())
	n.Type = result
	return n
}

// lowerBlock lowers a block: a sequence of expressions; scope
// additions are rolled back at block exit; the block's type is the
// last expression's type (unit if empty).
func (el *exprLowerer) lowerBlock(ex *ast.EBlock) *uir.Expr {
	mark := el.mark()
	defer el.rollback(mark)

	stmts := make([]*uir.Expr, len(ex.Exprs))
	for i, e := range ex.Exprs {
		stmts[i] = el.lowerExpr(e)
	}

	n := uir.NewBlock(stmts, ex.Span())
	if len(stmts) == 0 {
		n.Type = types.Unit
	} else {
		n.Type = stmts[len(stmts)-1].Type
	}
	return n
}

// lowerLambda lowers a lambda: a fresh body is allocated, carrying
// the current scope as a new parent-scope frame with capture slots.
// After lowering its body, for every captured local the frame adds a
// leading input-pattern and the lambda's type gains a leading input. At
// the call site, the resulting expression is the body reference
// partially applied to the captured local expressions.
func (el *exprLowerer) lowerLambda(ex *ast.ELambda) *uir.Expr {
	body := el.l.Program.NewBody("<lambda>", el.body.Module)
	inner := newExprLowerer(el.l, body, el.module, el)

	inputTypes := make([]types.Type, len(ex.Params))
	inputs := make([]*uir.Pattern, len(ex.Params))
	for i, p := range ex.Params {
		v := el.l.Types.FreshVar(ex.Span())
		inputTypes[i] = v
		inputs[i] = inner.lowerPattern(p, v)
	}
	body.Expr = inner.lowerExpr(ex.Body)

	// Thread captures in as leading parameters, outermost-captured
	// first, matching the order capture slots were appended in. Built
	// back-to-front so the final Inputs order is cap[0], cap[1], ...,
	// original params — the same left-to-right order the function type
	// below curries in.
	captureTypes := make([]types.Type, len(body.Captures))
	captureArgs := make([]*uir.Expr, len(body.Captures))
	for i := len(body.Captures) - 1; i >= 0; i-- {
		slot := body.Captures[i]
		captureTypes[i] = body.LocalType(slot.Local)
		bindPat := uir.NewBinding(slot.Local, ex.Span())
		bindPat.Type = captureTypes[i]
		inputs = append([]*uir.Pattern{bindPat}, inputs...)
		outerLocalExpr := uir.NewLocal(slot.OuterLocal, ex.Span())
		outerLocalExpr.Type = el.body.LocalType(slot.OuterLocal)
		captureArgs[i] = outerLocalExpr
	}
	body.Inputs = inputs

	fnTy := body.Expr.Type
	for i := len(inputTypes) - 1; i >= 0; i-- {
		fnTy = types.TFunc{Param: inputTypes[i], Result: fnTy}
	}
	for i := len(captureTypes) - 1; i >= 0; i-- {
		fnTy = types.TFunc{Param: captureTypes[i], Result: fnTy}
	}
	body.Type = fnTy

	ref := uir.NewBodyRef(body.ID, false, ex.Span())
	ref.Type = fnTy
	if len(captureArgs) == 0 {
		return ref
	}
	cur := ref
	for _, arg := range captureArgs {
		ft := cur.Type.(types.TFunc)
		call := uir.NewCall(cur, []*uir.Expr{arg}, ex.Span())
		call.Type = ft.Result
		cur = call
	}
	return cur
}
