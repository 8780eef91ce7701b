package wsindex

import "github.com/knotlang/knotc/internal/ast"

// Collect walks a parsed file's top-level items and returns one Symbol
// per declaration that hover/go-to-definition can usefully resolve:
// funcs, externs and newtypes (plus one row per union variant, since a
// variant constructor is itself a callable name).
func Collect(module string, file *ast.File) []Symbol {
	var out []Symbol
	for _, item := range file.Items {
		switch it := item.(type) {
		case *ast.FuncDecl:
			out = append(out, Symbol{Module: module, Name: it.Name, Kind: KindFunc, Span: it.Span()})
		case *ast.ExternDecl:
			out = append(out, Symbol{Module: module, Name: it.Name, Kind: KindExtern, Span: it.Span()})
		case *ast.NewtypeDecl:
			out = append(out, Symbol{Module: module, Name: it.Name, Kind: KindNewtype, Span: it.Span()})
			if union, ok := it.Kind.(ast.UnionKind); ok {
				for _, v := range union.Variants {
					out = append(out, Symbol{Module: module, Name: v.Name, Kind: KindVariant, Span: it.Span()})
				}
			}
		}
	}
	return out
}
