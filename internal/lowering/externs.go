package lowering

// lowerExterns is Pass 2 step 4: parse the declared type with generics
// extended on demand, then unify with the stub allocated in Pass 1.
func (l *Lowerer) lowerExterns() {
	for _, pe := range l.externs {
		mod := l.Tree.ByID(pe.module)
		scope := newGenericScope()
		declared := l.lowerTypeExpr(pe.decl.Type, mod, scope)

		body := l.Program.Body(pe.bid)
		l.Types.Unify(body.Type, declared, pe.decl.Span())
		body.Type = declared
	}
}
