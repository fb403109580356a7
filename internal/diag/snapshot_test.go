package diag

import (
	"testing"

	"typedlint/internal/source"
)

func TestSnapshot(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.ts", []byte("a\nb\n")))

	diags := []Diagnostic{
		New(SevWarning, "no-unused-vars", source.Span{File: file.ID, Start: 2, End: 3}, "another").Locate(file),
		New(SevError, "no-undef", source.Span{File: file.ID, Start: 0, End: 1}, "first line\n  second").
			Locate(file).
			WithNote(source.Span{File: file.ID, Start: 2, End: 3}, "note line"),
		NewFatal(source.Span{File: file.ID, Start: 3, End: 3}, source.LineCol{Line: 2, Col: 2}, "Unexpected token"),
	}

	want := "1:1 error first line second (no-undef)\n" +
		"2:1 note note line (no-undef)\n" +
		"2:1 warning another (no-unused-vars)\n" +
		"2:2 error Unexpected token"
	if got := Snapshot(diags, file, true); got != want {
		t.Fatalf("snapshot:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
	if got := Snapshot(diags[:1], nil, true); got != "2:1 warning another (no-unused-vars)" {
		t.Errorf("without file: %q", got)
	}
	if got := Snapshot(nil, file, false); got != "" {
		t.Errorf("empty snapshot = %q", got)
	}
}
