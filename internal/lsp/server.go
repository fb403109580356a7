// Package lsp serves lint results to editors over the Language Server
// Protocol on stdio: diagnostics on open, change and save, and code actions
// for the fixes rules offer.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"typedlint/internal/driver"
	"typedlint/internal/trace"
)

// ErrExitWithoutShutdown is returned by Run for an "exit" that was not
// preceded by "shutdown"; the process should exit with status 1.
var ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")

// errExit stops the loop after a clean shutdown.
var errExit = errors.New("lsp exit")

// LintFunc lints the text of one document. path is the file the text
// belongs to; it is not read.
type LintFunc func(ctx context.Context, path string, text []byte) (*driver.FileResult, error)

// ServerOptions configures a Server.
type ServerOptions struct {
	// Debounce delays linting after a change; 0 means 200ms.
	Debounce time.Duration
	Lint     LintFunc
	Tracer   trace.Tracer
	// Log receives server messages; nil means stderr.
	Log     io.Writer
	Version string
}

type runMode uint8

const (
	runOnType runMode = iota
	runOnSave
)

// Server handles one client connection.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	sendMu sync.Mutex

	mu                sync.Mutex
	docs              map[string]*document
	mode              runMode
	traceLSP          bool
	initialized       bool
	shutdownRequested bool

	lint     LintFunc
	debounce time.Duration
	tracer   trace.Tracer
	log      io.Writer
	version  string
	baseCtx  context.Context
}

// NewServer binds a server to a transport.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	logw := opts.Log
	if logw == nil {
		logw = os.Stderr
	}
	return &Server{
		in:       bufio.NewReader(in),
		out:      bufio.NewWriter(out),
		docs:     make(map[string]*document),
		lint:     opts.Lint,
		debounce: debounce,
		tracer:   tracer,
		log:      logw,
		version:  opts.Version,
		baseCtx:  context.Background(),
	}
}

// Run serves requests until "exit", EOF or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if s.lint == nil {
		return errors.New("lsp: no lint function")
	}
	s.baseCtx = ctx
	defer s.closeAll()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			continue
		}
		if msg.Method == "" {
			// ответы клиента на наши запросы нам не нужны
			continue
		}
		if err := s.handleMessage(&msg); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	s.mu.Lock()
	initialized, shutdown := s.initialized, s.shutdownRequested
	s.mu.Unlock()

	switch {
	case msg.Method == "exit":
		if shutdown {
			return errExit
		}
		return ErrExitWithoutShutdown
	case msg.Method == "initialize":
		return s.handleInitialize(msg)
	case !initialized:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeServerNotInitialized, "server not initialized")
		}
		return nil
	case shutdown:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	if len(params.InitializationOptions) > 0 {
		s.applySettings(params.InitializationOptions)
	}
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	return s.sendResponse(msg.ID, initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    syncIncremental,
				Save:      saveOptions{IncludeText: true},
			},
			CodeActionProvider: &codeActionOptions{
				CodeActionKinds: []string{kindQuickFix, kindFixAll},
			},
		},
		ServerInfo: serverInfo{Name: "typedlint", Version: s.version},
	})
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.closeAll()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	s.applySettings(params.Settings)
	s.mu.Lock()
	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	s.mu.Unlock()
	for _, uri := range uris {
		s.schedule(uri)
	}
	return nil
}

// applySettings accepts {"typedlint": {...}} or the bare section.
func (s *Server) applySettings(raw json.RawMessage) {
	var env settingsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return
	}
	cfg := env.Typedlint
	if cfg == nil {
		cfg = &settings{}
		if err := json.Unmarshal(raw, cfg); err != nil {
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch cfg.Run {
	case "onSave":
		s.mode = runOnSave
	case "onType":
		s.mode = runOnType
	}
	if cfg.Trace != nil {
		s.traceLSP = *cfg.Trace
	}
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	s.docs[uri] = &document{
		uri:     uri,
		path:    uriToPath(uri),
		version: params.TextDocument.Version,
		text:    params.TextDocument.Text,
	}
	s.mu.Unlock()
	s.schedule(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	onType := s.mode == runOnType
	traceOn := s.traceLSP
	s.mu.Unlock()
	if traceOn {
		s.logf("didChange: uri=%s version=%d", uri, params.TextDocument.Version)
	}
	if onType {
		s.schedule(uri)
	}
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc := s.docs[uri]
	if doc != nil && params.Text != nil {
		doc.text = *params.Text
	}
	s.mu.Unlock()
	if doc != nil {
		s.schedule(uri)
	}
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return nil
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc := s.docs[uri]
	delete(s.docs, uri)
	s.mu.Unlock()
	if doc == nil {
		return nil
	}
	doc.stop()
	return s.sendPublish(uri, nil, nil)
}

// closeAll stops pending lint runs of every document.
func (s *Server) closeAll() {
	s.mu.Lock()
	docs := s.docs
	s.docs = make(map[string]*document)
	s.mu.Unlock()
	for _, doc := range docs {
		doc.stop()
	}
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error":   rpcError{Code: code, Message: message},
	})
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	return s.send(map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params":  publishDiagnosticsParams{URI: uri, Version: version, Diagnostics: list},
	})
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}
