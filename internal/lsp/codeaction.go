package lsp

import (
	"encoding/json"
	"errors"
	"strings"

	"typedlint/internal/fix"
	"typedlint/internal/source"
)

func (s *Server) handleCodeAction(msg *rpcMessage) error {
	var params codeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	uri := canonicalURI(params.TextDocument.URI)
	actions, err := s.codeActions(uri, params)
	if err != nil {
		s.logf("code actions %s: %v", uri, err)
	}
	return s.sendResponse(msg.ID, actions)
}

// codeActions never returns nil so the response is [] rather than null.
func (s *Server) codeActions(uri string, params codeActionParams) ([]codeAction, error) {
	actions := []codeAction{}

	s.mu.Lock()
	doc := s.docs[uri]
	// правки считались по другому тексту
	if doc == nil || doc.result == nil || doc.linted != doc.text {
		s.mu.Unlock()
		return actions, nil
	}
	fixes := doc.fixes
	res := doc.result
	text := doc.text
	s.mu.Unlock()

	if wantsKind(params.Context.Only, kindQuickFix) {
		for _, qf := range fixes {
			if !qf.diag.Range.overlaps(params.Range) {
				continue
			}
			actions = append(actions, codeAction{
				Title:       qf.title,
				Kind:        kindQuickFix,
				Diagnostics: []lspDiagnostic{qf.diag},
				IsPreferred: true,
				Edit:        &workspaceEdit{Changes: map[string][]textEdit{uri: qf.edits}},
			})
		}
	}

	if len(fixes) == 0 || !wantsKind(params.Context.Only, kindFixAll) {
		return actions, nil
	}
	applied, err := fix.Apply(res.File.Content, res.Diagnostics)
	if err != nil {
		if errors.Is(err, fix.ErrNoFixes) {
			return actions, nil
		}
		return actions, err
	}
	e := source.ScanEndings([]byte(text))
	e.BOM = false
	output := fix.RestoreEndings(e, res.File.Content, applied.Output)
	actions = append(actions, codeAction{
		Title: "Fix all auto-fixable problems",
		Kind:  kindFixAll,
		Edit: &workspaceEdit{Changes: map[string][]textEdit{uri: {{
			Range:   lspRange{End: endOfText(text)},
			NewText: string(output),
		}}}},
	})
	return actions, nil
}

// wantsKind applies the client's "only" filter; kinds are dot-separated
// hierarchies, so "source" admits "source.fixAll.typedlint".
func wantsKind(only []string, kind string) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(kind, o+".") {
			return true
		}
	}
	return false
}
