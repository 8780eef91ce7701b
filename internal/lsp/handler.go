package lsp

import "github.com/knotlang/knotc/internal/wsindex"

// offsetFor converts a zero-based line/character Position into a byte
// offset into content, the inverse of source.File.LineCol.
func offsetFor(content string, pos Position) uint32 {
	line, col := 0, 0
	for i := 0; i < len(content); i++ {
		if line == pos.Line && col == pos.Character {
			return uint32(i)
		}
		if content[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return uint32(len(content))
}

func (s *Server) handleHover(id interface{}, params HoverParams) error {
	s.mu.RLock()
	doc, ok := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	doc.mu.RLock()
	content, sourceID := doc.content, doc.sourceID
	doc.mu.RUnlock()

	offset := offsetFor(content, params.Position)
	syms, err := s.index.AtOffset(sourceID, offset)
	if err != nil || len(syms) == 0 {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: Hover{Contents: MarkupContent{
			Kind:  "markdown",
			Value: hoverText(syms[0]),
		}},
	})
}

func hoverText(sym wsindex.Symbol) string {
	switch sym.Kind {
	case wsindex.KindFunc:
		return "```\nfn " + sym.Name + "\n```"
	case wsindex.KindExtern:
		return "```\nextern " + sym.Name + "\n```"
	case wsindex.KindNewtype:
		return "```\ntype " + sym.Name + "\n```"
	case wsindex.KindVariant:
		return "```\n" + sym.Name + "\n```"
	default:
		return sym.Name
	}
}

func (s *Server) handleDefinition(id interface{}, params DefinitionParams) error {
	s.mu.RLock()
	doc, ok := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()
	if !ok {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	doc.mu.RLock()
	content := doc.content
	doc.mu.RUnlock()

	word := wordAt(content, offsetFor(content, params.Position))
	if word == "" {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	syms, err := s.index.ByName(word)
	if err != nil || len(syms) == 0 {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	// The response always names the current buffer with an empty range:
	// the matched symbol's own document and span are not used, so a name
	// defined in another open buffer still resolves to this one.
	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  Location{URI: params.TextDocument.URI, Range: Range{}},
	})
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func wordAt(content string, offset uint32) string {
	i := int(offset)
	if i > len(content) {
		i = len(content)
	}
	lo, hi := i, i
	for lo > 0 && isIdentByte(content[lo-1]) {
		lo--
	}
	for hi < len(content) && isIdentByte(content[hi]) {
		hi++
	}
	if lo == hi {
		return ""
	}
	return content[lo:hi]
}
