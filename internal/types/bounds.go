package types

// Bounds is the structural constraint carried by a free variable: a
// numeric flag and an unordered field-name→expected-type map, replacing
// open-extensible records without a full row-polymorphism calculus (spec
// §9 design note, §3 "Structural bounds").
//
// Modeled loosely on trait-dictionary bookkeeping
// (internal/symbols/symbol_table_traits.go carries a similar "what must
// this type be able to do" map per type variable, there keyed by trait
// name rather than field name); Bounds below is the row/numeric
// equivalent without trait dispatch.
type Bounds struct {
	Number bool
	Fields map[string]Type
}

func newBounds() *Bounds {
	return &Bounds{Fields: make(map[string]Type)}
}

// clone deep-copies the bounds map so instantiate(ty) can
// hand each fresh variable its own independent copy.
func (b *Bounds) clone() *Bounds {
	if b == nil {
		return nil
	}
	nb := &Bounds{Number: b.Number, Fields: make(map[string]Type, len(b.Fields))}
	for k, v := range b.Fields {
		nb.Fields[k] = v
	}
	return nb
}

// Empty reports whether the bounds impose no constraint at all, so the
// formatter can skip an empty `where` clause.
func (b *Bounds) Empty() bool {
	return b == nil || (!b.Number && len(b.Fields) == 0)
}
