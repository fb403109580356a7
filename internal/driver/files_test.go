package driver

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"a.js", "b.ts", "c.tjs", "d.mjs", "e.cjs", "notes.md",
		"lib/f.js", "lib/g.min.js",
		"node_modules/dep/index.js",
		"dist/out.js",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ExpandPaths([]string{dir, filepath.Join(dir, "a.js"), filepath.Join(dir, "notes.md")}, "dist/", "*.min.js")
	if err != nil {
		t.Fatalf("ExpandPaths: %v", err)
	}
	var rel []string
	for _, p := range got {
		r, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatal(err)
		}
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"a.js", "b.ts", "c.tjs", "d.mjs", "e.cjs", "lib/f.js", "notes.md"}
	if !slices.Equal(rel, want) {
		t.Errorf("ExpandPaths = %v, want %v", rel, want)
	}
}

func TestExpandPathsMissing(t *testing.T) {
	_, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("err = %v, want ErrNoFiles", err)
	}
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"**/*.js", "a.js", true},
		{"**/*.js", "x/y/a.js", true},
		{"src/*.js", "src/a.js", true},
		{"src/*.js", "src/x/a.js", false},
		{"src/**", "src/x/a.js", true},
		{"src/**/a.js", "src/a.js", true},
		{"*.ts", "a.js", false},
		{"[", "[", false},
		{"**/dist/**", "pkg/dist/x/a.js", true},
		{"**/*.{js,ts}", "x/a.ts", true},
		{"**/*.min.js", "a.min.js", true},
	}
	for _, tt := range tests {
		if got := matchGlob(tt.pattern, tt.name); got != tt.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestIgnoreSetDirectories(t *testing.T) {
	ign := newIgnoreSet([]string{"dist/", "./build/**", "*.min.js"})
	for _, dir := range []string{"dist", "pkg/dist", "build"} {
		if !ign.dir(dir) {
			t.Errorf("dir %q should be ignored", dir)
		}
	}
	if ign.dir("src") {
		t.Errorf("src must not be ignored")
	}
	if !ign.file("lib/x.min.js") || ign.file("lib/x.js") {
		t.Errorf("file matching is wrong for *.min.js")
	}
}
