package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/token"
)

func (s *state) parseImport() *ast.ImportDeclaration {
	start := s.start()
	s.expect(token.KwImport)
	decl := &ast.ImportDeclaration{Specifiers: make([]ast.Node, 0, 2)}
	if s.at(token.StringLit) {
		decl.Source = s.parseLiteral()
		s.consumeSemicolon()
		s.finish(decl, start)
		return decl
	}

	more := true
	if s.at(token.Ident) {
		spStart := s.start()
		sp := &ast.ImportDefaultSpecifier{Local: s.parseBindingIdent()}
		s.finish(sp, spStart)
		decl.Specifiers = append(decl.Specifiers, sp)
		more = s.eat(token.Comma)
	}
	switch {
	case !more:
	case s.at(token.Star):
		spStart := s.start()
		s.advance()
		s.expectWord("as")
		sp := &ast.ImportNamespaceSpecifier{Local: s.parseBindingIdent()}
		s.finish(sp, spStart)
		decl.Specifiers = append(decl.Specifiers, sp)
	default:
		s.expect(token.LBrace)
		for !s.eat(token.RBrace) {
			decl.Specifiers = append(decl.Specifiers, s.parseImportSpecifier())
			if !s.at(token.RBrace) {
				s.expect(token.Comma)
			}
		}
	}

	s.expectWord("from")
	if !s.at(token.StringLit) {
		s.unexpected()
	}
	decl.Source = s.parseLiteral()
	s.consumeSemicolon()
	s.finish(decl, start)
	return decl
}

func (s *state) parseImportSpecifier() *ast.ImportSpecifier {
	start := s.start()
	imported := s.parseModuleExportName()
	sp := &ast.ImportSpecifier{Imported: imported}
	if s.eatWord("as") {
		sp.Local = s.parseBindingIdent()
	} else {
		id, ok := imported.(*ast.Identifier)
		if !ok || s.toks[s.pos-1].Kind != token.Ident {
			s.fail(imported.Span(), "Unexpected token, expected \"as\"")
		}
		sp.Local = cloneIdent(id)
	}
	s.finish(sp, start)
	return sp
}

// parseModuleExportName parses an identifier name or, since ES2022, a string.
func (s *state) parseModuleExportName() ast.Node {
	if s.at(token.StringLit) && s.ecma(2022) {
		return s.parseLiteral()
	}
	return s.parseIdent(true)
}

func (s *state) parseExport() ast.Stmt {
	start := s.start()
	s.expect(token.KwExport)

	if s.eat(token.Star) {
		decl := &ast.ExportAllDeclaration{}
		if s.ecma(2020) && s.eatWord("as") {
			decl.Exported = s.parseModuleExportName()
		}
		s.expectWord("from")
		if !s.at(token.StringLit) {
			s.unexpected()
		}
		decl.Source = s.parseLiteral()
		s.consumeSemicolon()
		s.finish(decl, start)
		return decl
	}

	if s.eat(token.KwDefault) {
		decl := &ast.ExportDefaultDeclaration{}
		dstart := s.start()
		switch {
		case s.at(token.KwFunction):
			decl.Declaration = s.parseFunctionStatement(dstart, false, true)
		case s.atWord("async") && s.isAsyncFunction():
			s.advance()
			decl.Declaration = s.parseFunctionStatement(dstart, true, true)
		case s.at(token.KwClass):
			decl.Declaration = s.parseClassDeclaration(dstart, true)
		default:
			if st, ok := s.tryStatements(); ok {
				decl.Declaration = st
				break
			}
			decl.Declaration = s.parseMaybeAssign()
			s.consumeSemicolon()
		}
		s.finish(decl, start)
		return decl
	}

	decl := &ast.ExportNamedDeclaration{Specifiers: make([]*ast.ExportSpecifier, 0, 2)}
	if s.eat(token.LBrace) {
		for !s.eat(token.RBrace) {
			spStart := s.start()
			sp := &ast.ExportSpecifier{Local: s.parseModuleExportName()}
			if s.eatWord("as") {
				sp.Exported = s.parseModuleExportName()
			} else {
				sp.Exported = cloneNode(sp.Local)
			}
			s.finish(sp, spStart)
			decl.Specifiers = append(decl.Specifiers, sp)
			if !s.at(token.RBrace) {
				s.expect(token.Comma)
			}
		}
		if s.eatWord("from") {
			if !s.at(token.StringLit) {
				s.unexpected()
			}
			decl.Source = s.parseLiteral()
		} else {
			for _, sp := range decl.Specifiers {
				if _, ok := sp.Local.(*ast.Literal); ok {
					s.fail(sp.Local.Span(), "A string literal cannot be used as an exported binding without `from`")
				}
			}
		}
		s.consumeSemicolon()
		s.finish(decl, start)
		return decl
	}

	if st, ok := s.tryStatements(); ok {
		decl.Declaration = st
		s.finish(decl, start)
		return decl
	}
	dstart := s.start()
	switch {
	case s.at(token.KwVar), s.at(token.KwConst), s.atWord("let"):
		decl.Declaration = s.parseVarStatement(s.peek().Text)
	case s.at(token.KwFunction):
		decl.Declaration = s.parseFunctionStatement(dstart, false, false)
	case s.atWord("async") && s.isAsyncFunction():
		s.advance()
		decl.Declaration = s.parseFunctionStatement(dstart, true, false)
	case s.at(token.KwClass):
		decl.Declaration = s.parseClassDeclaration(dstart, false)
	default:
		s.unexpected()
	}
	s.finish(decl, start)
	return decl
}

func cloneIdent(id *ast.Identifier) *ast.Identifier {
	c := &ast.Identifier{Name: id.Name}
	c.SetSpan(id.Span())
	return c
}

// cloneNode copies a leaf node (identifier or literal) so that it can be owned twice.
func cloneNode(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.Identifier:
		return cloneIdent(n)
	case *ast.Literal:
		c := *n
		return &c
	}
	return n
}
