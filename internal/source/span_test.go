package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must be a no-op, got %v", got)
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Fatal("zero-length span must be empty")
	}
	if n := (Span{Start: 3, End: 8}).Len(); n != 5 {
		t.Fatalf("Len = %d, want 5", n)
	}
	if s := (Span{File: 2, Start: 1, End: 4}).String(); s != "2:1-4" {
		t.Fatalf("String = %q", s)
	}
}
