package diagnostics

// Emitter is a push-sink: any stage that discovers a problem calls Push
// and keeps going. The type context accumulates into one of these
// across an entire Lowering pass and drains it at `finish`.
type Emitter struct {
	diags []*Diagnostic
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) Push(d *Diagnostic) {
	e.diags = append(e.diags, d)
}

// Diagnostics returns everything pushed so far, in push order.
func (e *Emitter) Diagnostics() []*Diagnostic {
	return e.diags
}

// HasErrors reports whether any pushed diagnostic is at Error level. Used
// by `finish` to decide whether to fail, and by
// Specialization to decide whether to refuse to run.
func (e *Emitter) HasErrors() bool {
	for _, d := range e.diags {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// Merge appends another emitter's diagnostics onto this one, preserving
// order. Used when a sub-pass (e.g. one module's lowering) runs with its
// own scratch emitter and then folds its results into the pipeline-wide
// one.
func (e *Emitter) Merge(other *Emitter) {
	e.diags = append(e.diags, other.diags...)
}
