// Package diagnostics is the compiler's push-sink for user-visible
// messages: it has no notion of "the compilation failed", only an ordered
// log of (level, message, labels) tuples that the CLI or the language
// server drains at the end of a pass.
//
// Modeled on DiagnosticError (referenced throughout
// internal/analyzer): a DiagnosticError there carries a Code and a
// Token (line/column/lexeme) and formats itself via Error();
// cmd/lsp/diagnostics.go converts those into LSP ranges. Diagnostic
// below keeps the same Code field and the same "one primary site plus
// auxiliary labels" shape but generalizes the single Token into a
// `[label: (span, optional message)]` list so a unification error can
// point at the constraint site *and* both operands' origins.
package diagnostics

import (
	"fmt"
	"runtime"

	"github.com/knotlang/knotc/internal/source"
)

// Level is one of error, warn or note.
type Level int

const (
	Error Level = iota
	Warn
	Note
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warn:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Label attaches an optional message to a span; a Diagnostic's first label
// is its primary site, later labels are secondary context (e.g. "expected
// because of this" pointing at a declaration).
type Label struct {
	Span    source.Span
	Message string
}

// Location is the compiler-source-location of the code that raised the
// diagnostic, populated via runtime.Caller at the raise site.
// Useful when a "bug" diagnostic (ErrInternal) needs to point back at the
// compiler itself rather than at user source.
type Location struct {
	File string
	Line int
}

// Diagnostic is one user-visible message.
type Diagnostic struct {
	Level    Level
	Code     Code
	Message  string
	Labels   []Label
	Location Location
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Level, d.Code, d.Message)
}

// PrimarySpan returns the span of the first label, or the zero span if the
// diagnostic carries none (e.g. a whole-program diagnostic).
func (d *Diagnostic) PrimarySpan() source.Span {
	if len(d.Labels) == 0 {
		return source.Span{}
	}
	return d.Labels[0].Span
}

// New constructs a Diagnostic at the given level with a single primary
// label. Use Diagnostic.With to attach secondary labels before pushing it
// to an Emitter.
func New(level Level, code Code, span source.Span, message string) *Diagnostic {
	_, file, line, _ := runtime.Caller(1)
	return &Diagnostic{
		Level:    level,
		Code:     code,
		Message:  message,
		Labels:   []Label{{Span: span}},
		Location: Location{File: file, Line: line},
	}
}

// With appends a secondary label and returns the same diagnostic, for
// fluent construction at the raise site:
//
//	diagnostics.New(diagnostics.Error, diagnostics.ErrUnifyMismatch, site, "cannot unify int and bool").
//		With(lhsSpan, "this has type int").
//		With(rhsSpan, "this has type bool")
func (d *Diagnostic) With(span source.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Message: message})
	return d
}
