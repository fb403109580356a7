package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var seedExtensions = map[string]bool{".js": true, ".mjs": true, ".cjs": true, ".ts": true, ".tjs": true}

// inlineSeeds cover constructs that once tripped the parser or sit on the
// boundary between the base language and the TypedJS extensions.
var inlineSeeds = []string{
	"",
	"let x: number = 1;",
	"let x = 1;",
	"var a = b\n(c)",
	"a\n++b",
	"x = y / 2 / z; r = /[/]/g.test(s);",
	"`a${`b${c}`}d`",
	"({ a, b = 1, ...rest } = obj);",
	"async () => { for await (const x of xs) {} }",
	"function* g() { yield* other(); }",
	"class A extends B { static #p = 1; get q() { return this.#p; } }",
	"label: for (;;) { break label; }",
	"interface I extends J { m(a?: string): void }",
	"const v = value as unknown as string;",
	"function f<T>(xs: T[]): T | undefined { return xs[0]; }",
	"if (a) b; else if (c) d; else { e }",
	"#!/usr/bin/env node\nconsole.log(1)",
	"/* unterminated",
	"'unterminated",
	"a ?.b ?? c",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata и добавляем все исходники
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !seedExtensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
