// Package extern introspects the Go packages a project's externs bind
// to, confirming each declared symbol
// actually exists before the backend emits a forwarding stub for it.
//
// Modeled on internal/ext/inspector.go: a
// golang.org/x/tools/go/packages.Load call feeding a small per-symbol
// resolution step. Knot's Resolver below keeps that same
// load-then-resolve shape but drops method/field/struct
// reflection entirely — Knot externs bind one flat Go identifier
// (function, const or var) per declaration, never a whole type's
// method set, so there is no MethodInfo/FieldInfo/codegen machinery to
// carry over.
package extern

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"

	"github.com/knotlang/knotc/internal/project"
)

// Binding is a resolved extern: the Go symbol backing one `extern name
// : T` declaration, plus enough shape information for the backend to
// check it is call-compatible with T's arity.
type Binding struct {
	Dep project.ExternDep

	// Arity is the number of parameters if Symbol is a function, or -1
	// if it is a const/var (called with zero arguments from Knot's
	// point of view — the Go value itself is the result).
	Arity int
}

// Resolver loads Go packages on demand and resolves extern symbols
// against them.
type Resolver struct {
	pkgs map[string]*packages.Package
}

func NewResolver() *Resolver {
	return &Resolver{pkgs: make(map[string]*packages.Package)}
}

// Resolve loads every distinct package referenced by deps and resolves
// each dep's Symbol within it, returning one Binding per dep in order.
func (r *Resolver) Resolve(deps []project.ExternDep) ([]Binding, error) {
	paths := make([]string, 0, len(deps))
	seen := make(map[string]bool)
	for _, d := range deps {
		if !seen[d.Package] {
			seen[d.Package] = true
			paths = append(paths, d.Package)
		}
	}
	if len(paths) > 0 {
		if err := r.load(paths); err != nil {
			return nil, err
		}
	}

	out := make([]Binding, 0, len(deps))
	for _, d := range deps {
		b, err := r.resolveOne(d)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Resolver) load(paths []string) error {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, paths...)
	if err != nil {
		return fmt.Errorf("extern: loading packages: %w", err)
	}
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		r.pkgs[pkg.PkgPath] = pkg
	}
	if len(errs) > 0 {
		return fmt.Errorf("extern: package errors:\n  %s", joinLines(errs))
	}
	return nil
}

func (r *Resolver) resolveOne(d project.ExternDep) (Binding, error) {
	pkg, ok := r.pkgs[d.Package]
	if !ok {
		return Binding{}, fmt.Errorf("extern: package %s not loaded for %q", d.Package, d.Name)
	}
	obj := pkg.Types.Scope().Lookup(d.Symbol)
	if obj == nil {
		return Binding{}, fmt.Errorf("extern: %s.%s not found (bound to %q)", d.Package, d.Symbol, d.Name)
	}
	if !obj.Exported() {
		return Binding{}, fmt.Errorf("extern: %s.%s is not exported (bound to %q)", d.Package, d.Symbol, d.Name)
	}

	arity := -1
	if sig, ok := obj.Type().(*types.Signature); ok {
		arity = sig.Params().Len()
	}
	return Binding{Dep: d, Arity: arity}, nil
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n  "
		}
		out += l
	}
	return out
}
