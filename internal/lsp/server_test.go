package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"typedlint/internal/config"
	"typedlint/internal/driver"
	"typedlint/internal/plugin"
	"typedlint/internal/plugin/typedjs"
)

func newTestLint(t *testing.T) LintFunc {
	t.Helper()
	ts, err := typedjs.New()
	if err != nil {
		t.Fatalf("typedjs plugin: %v", err)
	}
	catalog, err := plugin.NewCatalog(plugin.Core(), ts)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	presets, err := config.Resolve(catalog, []string{"typedjs/recommended"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cfg, err := config.Compose(catalog, presets, config.Preset{
		Name: "test",
		Rules: map[string]config.RuleSetting{
			"no-debugger": {Level: config.LevelError},
			"no-var":      {Level: config.LevelWarn},
		},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	linter, err := driver.New(cfg, catalog, driver.Options{})
	if err != nil {
		t.Fatalf("linter: %v", err)
	}
	return func(_ context.Context, path string, text []byte) (*driver.FileResult, error) {
		return linter.LintText(path, text)
	}
}

type testClient struct {
	t      *testing.T
	server *Server
	out    *bytes.Buffer
	reader *bufio.Reader
	nextID int
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	out := &bytes.Buffer{}
	server := NewServer(bytes.NewReader(nil), out, ServerOptions{
		Debounce: time.Hour,
		Lint:     newTestLint(t),
		Log:      &bytes.Buffer{},
	})
	c := &testClient{t: t, server: server, out: out}
	c.request("initialize", initializeParams{})
	if resp := c.next(); resp.Error != nil {
		t.Fatalf("initialize failed: %+v", resp.Error)
	}
	return c
}

func (c *testClient) notify(method string, params any) {
	c.t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		c.t.Fatalf("marshal %s: %v", method, err)
	}
	if err := c.server.handleMessage(&rpcMessage{JSONRPC: "2.0", Method: method, Params: payload}); err != nil {
		c.t.Fatalf("%s: %v", method, err)
	}
}

func (c *testClient) request(method string, params any) {
	c.t.Helper()
	c.nextID++
	payload, err := json.Marshal(params)
	if err != nil {
		c.t.Fatalf("marshal %s: %v", method, err)
	}
	id, _ := json.Marshal(c.nextID)
	if err := c.server.handleMessage(&rpcMessage{JSONRPC: "2.0", ID: id, Method: method, Params: payload}); err != nil {
		c.t.Fatalf("%s: %v", method, err)
	}
}

// next reads the next message the server wrote.
func (c *testClient) next() rpcMessage {
	c.t.Helper()
	if c.reader == nil {
		c.reader = bufio.NewReader(c.out)
	}
	payload, err := readMessage(c.reader)
	if err != nil {
		c.t.Fatalf("read message: %v", err)
	}
	var msg rpcMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.t.Fatalf("decode message: %v", err)
	}
	return msg
}

func (c *testClient) publish() publishDiagnosticsParams {
	c.t.Helper()
	msg := c.next()
	if msg.Method != "textDocument/publishDiagnostics" {
		c.t.Fatalf("expected publishDiagnostics, got %q", msg.Method)
	}
	var params publishDiagnosticsParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		c.t.Fatalf("decode params: %v", err)
	}
	return params
}

func (c *testClient) open(text string) string {
	c.t.Helper()
	uri := pathToURI(filepath.Join(c.t.TempDir(), "a.js"))
	c.notify("textDocument/didOpen", didOpenParams{TextDocument: textDocumentItem{URI: uri, LanguageID: "javascript", Version: 1, Text: text}})
	return uri
}

func TestPublishDiagnosticsMapping(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("const a = 1;\n  debugger;\nexport { a };\n")
	c.server.flush(uri)

	params := c.publish()
	if params.URI != uri {
		t.Fatalf("uri = %q, want %q", params.URI, uri)
	}
	if params.Version == nil || *params.Version != 1 {
		t.Fatalf("version = %v, want 1", params.Version)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", params.Diagnostics)
	}
	got := params.Diagnostics[0]
	if got.Code != "no-debugger" || got.Severity != severityError || got.Source != "typedlint" {
		t.Fatalf("unexpected diagnostic: %+v", got)
	}
	want := lspRange{Start: position{Line: 1, Character: 2}, End: position{Line: 1, Character: 11}}
	if got.Range != want {
		t.Fatalf("range = %+v, want %+v", got.Range, want)
	}
}

func TestDidChangeRelints(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("debugger;\n")
	c.server.flush(uri)
	if n := len(c.publish().Diagnostics); n != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", n)
	}

	c.notify("textDocument/didChange", didChangeParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []contentChange{{
			Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 9}},
			Text:  "var x = 1;",
		}},
	})
	c.server.flush(uri)
	params := c.publish()
	if *params.Version != 2 || len(params.Diagnostics) != 1 {
		t.Fatalf("unexpected publish: %+v", params)
	}
	if d := params.Diagnostics[0]; d.Code != "no-var" || d.Severity != severityWarning {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestCodeActions(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("const a = 1;\ndebugger;\nexport { a };\n")
	c.server.flush(uri)
	c.publish()

	c.request("textDocument/codeAction", codeActionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Range:        lspRange{Start: position{Line: 1, Character: 0}, End: position{Line: 1, Character: 0}},
	})
	msg := c.next()
	var actions []codeAction
	if err := json.Unmarshal(msg.Result, &actions); err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected quick fix and fix all, got %+v", actions)
	}
	quick := actions[0]
	if quick.Kind != kindQuickFix || len(quick.Diagnostics) != 1 || quick.Edit == nil {
		t.Fatalf("unexpected quick fix: %+v", quick)
	}
	edits := quick.Edit.Changes[uri]
	if len(edits) == 0 || edits[0].Range.Start.Line != 1 {
		t.Fatalf("unexpected edits: %+v", edits)
	}
	all := actions[1]
	if all.Kind != kindFixAll {
		t.Fatalf("second action kind = %q", all.Kind)
	}
	if text := all.Edit.Changes[uri][0].NewText; strings.Contains(text, "debugger") {
		t.Fatalf("fix all left the statement:\n%s", text)
	}
}

func TestCodeActionsOnlyFilter(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("debugger;\n")
	c.server.flush(uri)
	c.publish()

	actions, err := c.server.codeActions(uri, codeActionParams{
		Range:   lspRange{End: position{Line: 5}},
		Context: codeActionContext{Only: []string{"source"}},
	})
	if err != nil {
		t.Fatalf("codeActions: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != kindFixAll {
		t.Fatalf("only=source should return fix all, got %+v", actions)
	}
}

func TestCodeActionsStaleText(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("debugger;\n")
	c.server.flush(uri)
	c.publish()

	c.notify("textDocument/didChange", didChangeParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []contentChange{{Text: "debugger;\ndebugger;\n"}},
	})
	actions, err := c.server.codeActions(uri, codeActionParams{Range: lspRange{End: position{Line: 5}}})
	if err != nil {
		t.Fatalf("codeActions: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("stale document should have no actions, got %+v", actions)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	c := newTestClient(t)
	uri := c.open("debugger;\n")
	c.server.flush(uri)
	c.publish()

	c.notify("textDocument/didClose", didCloseParams{TextDocument: textDocumentIdentifier{URI: uri}})
	params := c.publish()
	if params.URI != uri || len(params.Diagnostics) != 0 {
		t.Fatalf("expected empty publish, got %+v", params)
	}
}

func TestRunOnSaveSetting(t *testing.T) {
	c := newTestClient(t)
	c.notify("workspace/didChangeConfiguration", didChangeConfigurationParams{
		Settings: json.RawMessage(`{"typedlint":{"run":"onSave"}}`),
	})
	uri := c.open("let a;\n")

	c.notify("textDocument/didChange", didChangeParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []contentChange{{Text: "debugger;\n"}},
	})
	c.server.mu.Lock()
	seq := c.server.docs[uri].seq
	c.server.mu.Unlock()
	if seq != 1 {
		t.Fatalf("didChange must not schedule in onSave mode, seq = %d", seq)
	}
}

func TestRequestBeforeInitialize(t *testing.T) {
	var out bytes.Buffer
	server := NewServer(bytes.NewReader(nil), &out, ServerOptions{Lint: newTestLint(t), Log: &bytes.Buffer{}})
	if err := server.handleMessage(&rpcMessage{ID: json.RawMessage("1"), Method: "textDocument/codeAction"}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	payload, err := readMessage(bufio.NewReader(&out))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg rpcMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Error == nil || msg.Error.Code != codeServerNotInitialized {
		t.Fatalf("expected not-initialized error, got %+v", msg)
	}
}

func frame(t *testing.T, msgs ...string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	for _, m := range msgs {
		if err := writeMessage(&buf, []byte(m)); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	return &buf
}

func TestRunExitSequence(t *testing.T) {
	lint := newTestLint(t)

	in := frame(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	server := NewServer(in, &bytes.Buffer{}, ServerOptions{Lint: lint, Log: &bytes.Buffer{}})
	if err := server.Run(context.Background()); err != nil {
		t.Fatalf("clean exit returned %v", err)
	}

	in = frame(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	)
	server = NewServer(in, &bytes.Buffer{}, ServerOptions{Lint: lint, Log: &bytes.Buffer{}})
	if err := server.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("exit without shutdown returned %v", err)
	}
}
