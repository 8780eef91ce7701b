package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/knotlang/knotc/internal/config"
	"github.com/knotlang/knotc/internal/wsindex"
)

// Server is the stdio JSON-RPC loop plus the open-document cache and
// the workspace symbol index every handler queries.
//
// Modeled on cmd/lsp/server.go's LanguageServer: the same
// Content-Length header framing read off a bufio.Reader, and the same
// request-has-ID/notification-has-none dispatch split. documents here
// additionally carry a source.ID, which hover uses to find the index
// rows whose span contains the cursor's byte offset; no handler turns an
// index row's span back into a line/column Position.
type Server struct {
	documents map[string]*document
	mu        sync.RWMutex
	writer    io.Writer
	index     *wsindex.Index
}

func NewServer(writer io.Writer, index *wsindex.Index) *Server {
	return &Server{
		documents: make(map[string]*document),
		writer:    writer,
		index:     index,
	}
}

// Run opens its own workspace index and blocks serving the JSON-RPC
// loop over r/w until the client sends `exit` or r reaches EOF.
func Run(r io.Reader, w io.Writer) error {
	config.IsLSPMode = true
	index, err := wsindex.Open()
	if err != nil {
		return fmt.Errorf("lsp: opening workspace index: %w", err)
	}
	defer index.Close()
	NewServer(w, index).start(r)
	return nil
}

func (s *Server) start(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("reading header: %v", err)
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "Content-Length: ") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
		if err != nil {
			log.Printf("parsing Content-Length: %v", err)
			continue
		}
		for {
			sep, err := reader.ReadString('\n')
			if err != nil {
				log.Printf("reading separator: %v", err)
				return
			}
			if strings.TrimRight(sep, "\r\n") == "" {
				break
			}
		}
		content := make([]byte, n)
		if _, err := io.ReadFull(reader, content); err != nil {
			log.Printf("reading body: %v", err)
			return
		}
		if err := s.handleMessage(content); err != nil {
			log.Printf("handling message: %v", err)
		}
	}
}

func (s *Server) handleMessage(content []byte) error {
	var base struct {
		ID     interface{} `json:"id,omitempty"`
		Method string      `json:"method"`
	}
	if err := json.Unmarshal(content, &base); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if base.ID != nil {
		return s.handleRequest(base.ID, base.Method, content)
	}
	return s.handleNotification(base.Method, content)
}

func (s *Server) handleRequest(id interface{}, method string, content []byte) error {
	switch method {
	case "initialize":
		return s.handleInitialize(id)
	case "shutdown":
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	case "textDocument/hover":
		var params HoverParams
		if err := unmarshalParams(content, &params); err != nil {
			return err
		}
		return s.handleHover(id, params)
	case "textDocument/definition":
		var params DefinitionParams
		if err := unmarshalParams(content, &params); err != nil {
			return err
		}
		return s.handleDefinition(id, params)
	default:
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0", ID: id,
			Error: &Error{Code: -32601, Message: fmt.Sprintf("method not found: %s", method)},
		})
	}
}

func (s *Server) handleNotification(method string, content []byte) error {
	switch method {
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := unmarshalParams(content, &params); err != nil {
			return err
		}
		return s.handleDidOpen(params)
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := unmarshalParams(content, &params); err != nil {
			return err
		}
		return s.handleDidChange(params)
	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := unmarshalParams(content, &params); err != nil {
			return err
		}
		return s.handleDidClose(params)
	case "exit":
		os.Exit(0)
		return nil
	default:
		return nil
	}
}

func unmarshalParams(content []byte, params interface{}) error {
	var env struct {
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(content, &env); err != nil {
		return err
	}
	return json.Unmarshal(env.Params, params)
}

func (s *Server) handleInitialize(id interface{}) error {
	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: InitializeResult{Capabilities: ServerCapabilities{
			TextDocumentSync:   1,
			HoverProvider:      true,
			DefinitionProvider: true,
		}},
	})
}

func (s *Server) sendResponse(r ResponseMessage) error { return s.sendMessage(r) }

func (s *Server) sendNotification(n NotificationMessage) error { return s.sendMessage(n) }

func (s *Server) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}
