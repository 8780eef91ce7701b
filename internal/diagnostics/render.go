package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/knotlang/knotc/internal/source"
)

// colorsEnabled mirrors termColorLevel detection in
// internal/evaluator/builtins_term.go: NO_COLOR opts out, otherwise a
// real tty (checked with go-isatty, including the Cygwin/MSYS case) with
// TERM != "dumb" gets color.
func colorsEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBlue  = "\x1b[34m"
	ansiDim   = "\x1b[2m"
)

func levelColor(l Level) string {
	switch l {
	case Error:
		return ansiRed
	case Warn:
		return ansiYellow
	default:
		return ansiBlue
	}
}

// Render writes one diagnostic in a `file:line:col: level[code]: message`
// shape with a caret line under the primary span and dimmed auxiliary
// labels, colored when w is a real terminal.
func Render(w io.Writer, set *source.Set, d *Diagnostic) {
	color := false
	if f, ok := w.(*os.File); ok {
		color = colorsEnabled(f)
	}
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + ansiReset
	}

	span := d.PrimarySpan()
	file, _ := set.File(span.SourceID)
	loc := "<unknown>"
	var line, col int
	if file != nil {
		line, col = file.LineCol(span.Lo)
		loc = fmt.Sprintf("%s:%d:%d", file.Path, line, col)
	}

	fmt.Fprintf(w, "%s: %s: %s\n", paint(ansiBold, loc), paint(levelColor(d.Level), fmt.Sprintf("%s[%s]", d.Level, d.Code)), d.Message)

	if file != nil && !span.Zero() {
		renderCaret(w, file, span, paint)
	}

	for _, l := range d.Labels[1:] {
		lf, _ := set.File(l.Span.SourceID)
		if lf == nil {
			continue
		}
		ll, lc := lf.LineCol(l.Span.Lo)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", paint(ansiDim, "note:"), lf.Path, ll, lc, l.Message)
	}
}

func renderCaret(w io.Writer, file *source.File, span source.Span, paint func(string, string) string) {
	line, col := file.LineCol(span.Lo)
	lineStart, lineEnd := lineBounds(file.Contents, span.Lo)
	lineText := file.Contents[lineStart:lineEnd]

	width := int(span.Hi - span.Lo)
	if width < 1 {
		width = 1
	}
	if uint32(lineEnd)-span.Lo < uint32(width) {
		width = int(uint32(lineEnd) - span.Lo)
		if width < 1 {
			width = 1
		}
	}

	fmt.Fprintf(w, "  %4d | %s\n", line, lineText)
	fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", col-1), paint(ansiBold+ansiRed, strings.Repeat("^", width)))
}

func lineBounds(src string, offset uint32) (start, end int) {
	start = int(offset)
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end = int(offset)
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return start, end
}

// RenderAll writes every diagnostic in e to w, in push order.
func RenderAll(w io.Writer, set *source.Set, e *Emitter) {
	for _, d := range e.Diagnostics() {
		Render(w, set, d)
	}
}
