package lexer

import (
	"testing"

	"typedlint/internal/source"
)

func createFile(content string) (*source.FileSet, *source.File) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(content))
	return fs, fs.Get(id)
}

// "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	_, file := createFile("a\nb")
	cursor := NewCursor(file)

	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("cursor must stay at EOF")
	}
}

func TestPeek2AndPeekAt(t *testing.T) {
	_, file := createFile("xy")
	cursor := NewCursor(file)
	b0, b1, ok := cursor.Peek2()
	if !ok || b0 != 'x' || b1 != 'y' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if cursor.PeekAt(1) != 'y' || cursor.PeekAt(2) != 0 {
		t.Fatal("PeekAt out of range must return 0")
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatal("Peek2 must fail with one byte left")
	}
}

func TestSpanFromResolve(t *testing.T) {
	fs, file := createFile("let a;\nlet b;")
	cursor := NewCursor(file)
	for range 7 {
		cursor.Bump()
	}
	m := cursor.Mark()
	for range 3 {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	if sp.Start != 7 || sp.End != 10 {
		t.Fatalf("span = %v", sp)
	}
	start, end := fs.Resolve(sp)
	if start != (source.LineCol{Line: 2, Col: 1}) || end != (source.LineCol{Line: 2, Col: 4}) {
		t.Fatalf("resolved %+v..%+v", start, end)
	}
}

func TestMarkResetAndEat(t *testing.T) {
	_, file := createFile("=>")
	cursor := NewCursor(file)
	m := cursor.Mark()
	if !cursor.Eat('=') || cursor.Eat('=') {
		t.Fatal("Eat must consume only matching bytes")
	}
	cursor.Reset(m)
	if cursor.Off != 0 || cursor.Peek() != '=' {
		t.Fatal("Reset did not restore the offset")
	}
}

func TestLineTerminator(t *testing.T) {
	for _, tc := range []struct {
		text string
		want uint32
	}{
		{"\n", 1},
		{"\r", 1},
		{"\r\n", 2},
		{"\u2028", 3},
		{"\u2029x", 3},
		{"\u2026", 0},
		{"a", 0},
		{"", 0},
	} {
		// без нормализации, чтобы \r\n дошёл до курсора
		cursor := NewCursor(&source.File{Content: []byte(tc.text)})
		if got := cursor.LineTerminator(); got != tc.want {
			t.Errorf("LineTerminator(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestRunesAndStrings(t *testing.T) {
	_, file := createFile("αβ>>>=")
	cursor := NewCursor(file)
	if r := cursor.BumpRune(); r != 'α' || cursor.Off != 2 {
		t.Fatalf("BumpRune = %q at %d", r, cursor.Off)
	}
	if r, size := cursor.PeekRune(); r != 'β' || size != 2 {
		t.Fatalf("PeekRune = %q, %d", r, size)
	}
	cursor.BumpRune()
	if cursor.EatString(">>>>") || cursor.Off != 4 {
		t.Fatal("EatString consumed a longer operator than present")
	}
	if !cursor.EatString(">>>=") || !cursor.EOF() {
		t.Fatal("EatString did not consume >>>=")
	}
	if _, size := cursor.PeekRune(); size != 0 {
		t.Errorf("PeekRune at EOF size = %d", size)
	}
}

func TestLineSeparatorEndsLineComment(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("ls.js", []byte("// note\u2028x")))
	toks, trivia := Tokenize(file, Options{})
	if len(trivia) != 1 || trivia[0].Text != "// note" {
		t.Fatalf("trivia = %+v", trivia)
	}
	if len(toks) < 1 || toks[0].Text != "x" || !toks[0].NewlineBefore {
		t.Fatalf("tokens = %+v", toks)
	}
}
