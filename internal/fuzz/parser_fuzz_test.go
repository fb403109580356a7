package fuzztests

import (
	"context"
	"reflect"
	"testing"
	"time"

	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/parser"
	"typedlint/internal/source"
	"typedlint/internal/testkit"
	"typedlint/internal/typedjs"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

var opts = parser.Options{SourceType: parser.SourceModule}

func typedGrammar(f *testing.F) *grammar.Grammar {
	g, err := typedjs.Grammar()
	if err != nil {
		f.Fatalf("typedjs grammar: %v", err)
	}
	return g
}

// FuzzParserInvariants checks span and ownership invariants of every tree
// the parser accepts.
func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	typed := typedGrammar(f)
	grammars := []*grammar.Grammar{grammar.Base(), typed}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.ts", input))
		for _, g := range grammars {
			prog, err := parser.Parse(g, file, opts)
			if err != nil {
				if _, ok := err.(*parser.SyntaxError); !ok {
					t.Fatalf("parse failed with %T: %v", err, err)
				}
				continue
			}
			if err := testkit.CheckSpanInvariants(prog, g.VisitorKeys(), file); err != nil {
				t.Fatalf("extensions %v: %v\ninput: %q", g.Extensions(), err, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzExtensionsKeepBaseTrees checks that input accepted by the base grammar
// parses to the same tree with the TypedJS extensions.
func FuzzExtensionsKeepBaseTrees(f *testing.F) {
	addCorpusSeeds(f)
	typed := typedGrammar(f)

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", input))
		base, err := parser.Parse(grammar.Base(), file, opts)
		if err != nil {
			return
		}
		ext, err := parser.Parse(typed, file, opts)
		if err != nil {
			t.Fatalf("typed grammar rejects base-valid input: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if !reflect.DeepEqual(ast.ToMap(base, file), ast.ToMap(ext, file)) {
			t.Fatalf("trees differ\ninput: %q", truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	typed := typedGrammar(f)

	// конструкции, где легко зациклиться на восстановлении
	f.Add([]byte("let x: = ;"))
	f.Add([]byte("function f(a: ) {}"))
	f.Add([]byte("interface { "))
	f.Add([]byte("{ { { { } } }"))
	f.Add([]byte("for (let i = 0 i < 10 i++) {}"))
	f.Add([]byte("a as"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.ts", input))
			_, _ = parser.Parse(typed, file, opts)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
