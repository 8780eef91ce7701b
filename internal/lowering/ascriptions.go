package lowering

// applyAscriptions is Pass 2 step 6: a standalone type
// signature's declared type is unified with the corresponding body's
// stub type, run after every function body has had a chance to lower
// (on demand, from the entry point) so the ascribed body already has
// as much inferred structure as any caller imposed on it.
func (l *Lowerer) applyAscriptions() {
	for _, pa := range l.ascriptions {
		mod := l.Tree.ByID(pa.module)
		scope := newGenericScope()
		declared := l.lowerTypeExpr(pa.decl.Type, mod, scope)

		body := l.Program.Body(pa.bid)
		l.Types.Unify(body.Type, declared, pa.decl.Span())
	}
}
