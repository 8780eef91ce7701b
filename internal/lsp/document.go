package lsp

import (
	"strings"
	"sync"

	"github.com/knotlang/knotc/internal/diagnostics"
	"github.com/knotlang/knotc/internal/parser"
	"github.com/knotlang/knotc/internal/source"
	"github.com/knotlang/knotc/internal/wsindex"
)

// document is the cached state for one open buffer: its current text,
// the source.ID that buffer's spans are stamped with, and the module
// name the index groups its symbols under.
//
// A standalone LSP session has no knot.yaml project to derive a module
// path from, so each open file indexes under its own file name (the
// URI's last path segment without the .knot extension); two open files
// with the same base name share one module in the index.
type document struct {
	mu       sync.RWMutex
	uri      string
	content  string
	sourceID source.ID
	module   string
}

func moduleNameFor(uri string) string {
	name := uri
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".knot")
}

func (s *Server) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc := &document{uri: uri, content: params.TextDocument.Text, module: moduleNameFor(uri)}
	s.mu.Lock()
	s.documents[uri] = doc
	s.mu.Unlock()
	s.reindex(doc)
	return nil
}

func (s *Server) handleDidChange(params DidChangeTextDocumentParams) error {
	s.mu.RLock()
	doc, ok := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok || len(params.ContentChanges) == 0 {
		return nil
	}
	doc.mu.Lock()
	doc.content = params.ContentChanges[len(params.ContentChanges)-1].Text
	doc.mu.Unlock()
	s.reindex(doc)
	return nil
}

func (s *Server) handleDidClose(params DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return s.index.Reindex(moduleNameFor(params.TextDocument.URI), nil)
}

// reindex reparses doc's current content, refreshes the workspace
// symbol index for its module, and republishes diagnostics — the same
// parse-then-report shape cmdFmt uses, run on every open/change instead
// of once at format time.
func (s *Server) reindex(doc *document) {
	set := source.NewSet()
	doc.mu.RLock()
	content := doc.content
	doc.mu.RUnlock()

	sf := set.Add(doc.uri, content)
	emitter := diagnostics.NewEmitter()
	file := parser.ParseFile(sf, emitter)

	doc.mu.Lock()
	doc.sourceID = sf.ID
	doc.mu.Unlock()

	var lspDiags []Diagnostic
	for _, d := range emitter.Diagnostics() {
		span := d.PrimarySpan()
		line, col := 0, 0
		if !span.Zero() {
			line, col = sf.LineCol(span.Lo)
		}
		lspDiags = append(lspDiags, Diagnostic{
			Range:    Range{Start: Position{Line: line - 1, Character: col - 1}, End: Position{Line: line - 1, Character: col - 1}},
			Severity: SeverityError,
			Message:  d.Message,
			Source:   "knotc",
		})
	}
	s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: doc.uri, Diagnostics: lspDiags},
	})

	if emitter.HasErrors() {
		return
	}
	syms := wsindex.Collect(doc.module, file)
	s.index.Reindex(doc.module, syms)
}
