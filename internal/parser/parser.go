// Package parser implements the base recursive-descent parser for the
// JavaScript-family language. Grammar extensions hook into it through the
// productions of a composed grammar.Grammar; with no extensions it accepts
// plain ECMAScript.
package parser

import (
	"slices"

	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/lexer"
	"typedlint/internal/source"
	"typedlint/internal/token"
)

// Parser is safe for concurrent use: every Parse call owns its state.
type Parser struct {
	grammar *grammar.Grammar
}

// New returns a parser for g. A nil grammar means the base language.
func New(g *grammar.Grammar) *Parser {
	if g == nil {
		g = grammar.Base()
	}
	return &Parser{grammar: g}
}

func (p *Parser) Grammar() *grammar.Grammar { return p.grammar }

// Parse parses file into a Program. Errors are *SyntaxError, or a plain error for bad options.
func (p *Parser) Parse(file *source.File, opts Options) (prog *ast.Program, err error) {
	opts, err = opts.normalize()
	if err != nil {
		return nil, err
	}
	toks, trivia := lexer.Tokenize(file, lexer.Options{Hashbang: true})
	s := &state{
		g:    p.grammar,
		file: file,
		opts: opts,
		toks: toks,
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			if s.err == nil {
				s.err = &SyntaxError{Path: file.Path, Msg: "Unexpected token", Pos: file.Position(0)}
			}
			prog, err = nil, s.err
		}
	}()
	prog = s.parseProgram()
	prog.Comments = make([]ast.Comment, 0, len(trivia))
	for _, c := range trivia {
		prog.Comments = append(prog.Comments, ast.Comment{Kind: c.Kind.String(), Value: c.Body(), Loc: c.Span})
	}
	return prog, nil
}

// Parse is a shorthand for New(g).Parse.
func Parse(g *grammar.Grammar, file *source.File, opts Options) (*ast.Program, error) {
	return New(g).Parse(file, opts)
}

// fnContext tracks what the enclosing function allows.
type fnContext struct {
	inFunction  bool
	inAsync     bool
	inGenerator bool
	inClass     bool
	loops       int
	switches    int
	labels      []string
}

type state struct {
	g    *grammar.Grammar
	file *source.File
	opts Options

	toks []token.Token
	pos  int
	// prevEnd is the end offset of the last consumed token.
	prevEnd uint32

	fn fnContext
	// noIn disables `in` as a binary operator (for-init).
	noIn bool
	// consequent is set while the next assignment expression is the
	// consequent of a conditional; cleared on entry.
	consequent bool

	err *SyntaxError
	// lastErr is the error that aborted the most recent failed try.
	lastErr *SyntaxError
}

var _ grammar.Parser = (*state)(nil)

func (s *state) parseProgram() *ast.Program {
	prog := &ast.Program{SourceType: s.opts.SourceType}
	if prog.SourceType == SourceCommonJS {
		prog.SourceType = SourceScript
	}
	prog.Body = s.parseStatementList(token.EOF, true)
	prog.SetSpan(source.Span{File: s.file.ID, Start: 0, End: s.file.Len()})
	return prog
}

// --- token navigation ---

func (s *state) peek() token.Token { return s.toks[s.pos] }

func (s *state) peekAt(n int) token.Token {
	if i := s.pos + n; i < len(s.toks) {
		return s.toks[i]
	}
	return s.toks[len(s.toks)-1]
}

func (s *state) advance() token.Token {
	tok := s.toks[s.pos]
	if tok.Kind == token.Invalid {
		s.fail(tok.Span, "%s", tok.Value)
	}
	if tok.Kind != token.EOF {
		s.pos++
	}
	s.prevEnd = tok.Span.End
	return tok
}

func (s *state) at(k token.Kind) bool { return s.toks[s.pos].Kind == k }

func (s *state) atWord(w string) bool { return s.toks[s.pos].Is(w) }

func (s *state) eat(k token.Kind) bool {
	if s.at(k) {
		s.advance()
		return true
	}
	return false
}

func (s *state) eatWord(w string) bool {
	if s.atWord(w) {
		s.advance()
		return true
	}
	return false
}

func (s *state) expect(k token.Kind) token.Token {
	if !s.at(k) {
		tok := s.peek()
		if tok.Kind == token.Invalid {
			s.fail(tok.Span, "%s", tok.Value)
		}
		s.fail(tok.Span, "Unexpected token, expected \"%s\"", k)
	}
	return s.advance()
}

func (s *state) expectWord(w string) {
	if !s.atWord(w) {
		s.fail(s.peek().Span, "Unexpected token, expected \"%s\"", w)
	}
	s.advance()
}

func (s *state) start() uint32 { return s.peek().Span.Start }

func (s *state) finish(n grammar.Spanned, start uint32) {
	end := s.prevEnd
	if end < start {
		end = start
	}
	n.SetSpan(source.Span{File: s.file.ID, Start: start, End: end})
}

func (s *state) lastSpan() source.Span {
	if s.pos == 0 {
		return source.Span{File: s.file.ID}
	}
	return s.toks[s.pos-1].Span
}

// canInsertSemicolon reports whether automatic semicolon insertion applies here.
func (s *state) canInsertSemicolon() bool {
	tok := s.peek()
	return tok.Kind == token.EOF || tok.Kind == token.RBrace || tok.NewlineBefore
}

func (s *state) consumeSemicolon() {
	if s.eat(token.Semicolon) || s.canInsertSemicolon() {
		return
	}
	s.unexpected()
}

// try runs fn; on failure every piece of parser state is rolled back.
func (s *state) try(fn func()) (ok bool) {
	pos, prevEnd, toks, fn0, noIn := s.pos, s.prevEnd, s.toks, s.fn, s.noIn
	fn0.labels = slices.Clone(fn0.labels)
	s.lastErr = nil
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			s.pos, s.prevEnd, s.toks, s.fn, s.noIn = pos, prevEnd, toks, fn0, noIn
			s.lastErr, s.err = s.err, nil
			ok = false
		}
	}()
	fn()
	return true
}

// splitGreater rewrites a `>`-prefixed compound token into `>` + rest.
// s.toks is copied so that a rolled back try sees the original tokens.
func (s *state) splitGreater() bool {
	tok := s.peek()
	var rest token.Kind
	switch tok.Kind {
	case token.Gt:
		return true
	case token.Shr:
		rest = token.Gt
	case token.UShr:
		rest = token.Shr
	case token.GtEq:
		rest = token.Assign
	case token.ShrAssign:
		rest = token.GtEq
	case token.UShrAssign:
		rest = token.ShrAssign
	default:
		return false
	}
	gt := token.Token{
		Kind:          token.Gt,
		Span:          source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start + 1},
		Text:          ">",
		NewlineBefore: tok.NewlineBefore,
	}
	tail := token.Token{
		Kind: rest,
		Span: source.Span{File: tok.Span.File, Start: tok.Span.Start + 1, End: tok.Span.End},
		Text: tok.Text[1:],
	}
	toks := slices.Clone(s.toks)
	toks[s.pos] = tail
	s.toks = slices.Insert(toks, s.pos, gt)
	return true
}

// ecma reports whether the configured language edition is at least year.
func (s *state) ecma(year int) bool { return s.opts.EcmaVersion >= year }
