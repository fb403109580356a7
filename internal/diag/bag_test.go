package diag

import (
	"testing"

	"typedlint/internal/source"
)

func TestCount(t *testing.T) {
	fixed := New(SevError, "no-var", source.Span{Start: 1}, "y")
	fixed.Fix = &Fix{Edits: []TextEdit{{Span: source.Span{Start: 1, End: 2}, NewText: "z"}}}
	items := []Diagnostic{
		New(SevError, "no-undef", source.Span{Start: 4}, "x"),
		fixed,
		New(SevWarning, "no-empty", source.Span{Start: 2}, "z"),
		NewFatal(source.Span{}, source.LineCol{Line: 1, Col: 1}, "Parsing error: Unexpected token"),
	}

	c := Count(items)
	if c.Errors != 3 || c.Warnings != 1 || c.Fatal != 1 {
		t.Fatalf("counts = %+v", c)
	}
	if c.FixableErrors != 1 || c.Fixable() != 1 {
		t.Fatalf("fixable = %+v", c)
	}
	var total Counts
	total.Add(c)
	total.Add(c)
	if total.Errors != 6 || total.FixableErrors != 2 {
		t.Errorf("sum = %+v", total)
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag()
	b.Add(New(SevWarning, "b", source.Span{Start: 3, End: 4}, "w"))
	b.Add(New(SevWarning, "a", source.Span{Start: 1, End: 2}, "first"))
	b.Add(New(SevError, "c", source.Span{Start: 1, End: 2}, "e"))
	b.Add(New(SevWarning, "a", source.Span{Start: 1, End: 2}, "second"))
	b.Add(New(SevError, "d", source.Span{File: 1, Start: 0, End: 1}, "other file"))
	b.Sort()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.RuleID+":"+d.Message)
	}
	want := []string{"c:e", "a:first", "a:second", "b:w", "d:other file"}
	if len(got) != len(want) || b.Len() != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReportBuilder(t *testing.T) {
	b := NewBag()
	edits := []TextEdit{{Span: source.Span{Start: 0, End: 3}, NewText: "let"}}
	rb := NewReportBuilder(BagReporter{Bag: b}, SevWarning, "no-var", source.Span{Start: 0, End: 10}, "Unexpected var.").
		WithMessageID("unexpectedVar").
		WithFix("", edits...)
	edits[0].NewText = "const"
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	d := rb.Diagnostic()
	if d.MessageID != "unexpectedVar" || !d.Fixable() || d.Fix.Edits[0].NewText != "let" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}

	var got []string
	NewReportBuilder(ReporterFunc(func(d Diagnostic) { got = append(got, d.RuleID) }), SevError, "r", source.Span{}, "m").Emit()
	NewReportBuilder(ReporterFunc(nil), SevError, "r", source.Span{}, "m").Emit()
	if len(got) != 1 || got[0] != "r" {
		t.Errorf("ReporterFunc got %v", got)
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"warn": SevWarning, "error": SevError, "2": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Errorf("expected error for unknown severity")
	}
}
