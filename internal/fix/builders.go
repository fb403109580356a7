package fix

import (
	"slices"

	"typedlint/internal/diag"
	"typedlint/internal/source"
)

// InsertText creates fix that inserts text at span (Span.Start == Span.End).
func InsertText(title string, at source.Span, text string, guard string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{Span: at, NewText: text, OldText: guard}},
	}
}

// InsertBefore inserts text at the start of span.
func InsertBefore(title string, span source.Span, text string) diag.Fix {
	return InsertText(title, source.Span{File: span.File, Start: span.Start, End: span.Start}, text, "")
}

// InsertAfter inserts text at the end of span.
func InsertAfter(title string, span source.Span, text string) diag.Fix {
	return InsertText(title, source.Span{File: span.File, Start: span.End, End: span.End}, text, "")
}

// DeleteSpan removes text covered by span.
func DeleteSpan(title string, span source.Span, expect string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{Span: span, OldText: expect}},
	}
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{Span: span, NewText: newText, OldText: expect}},
	}
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{
			{Span: source.Span{File: span.File, Start: span.Start, End: span.Start}, NewText: prefix},
			{Span: source.Span{File: span.File, Start: span.End, End: span.End}, NewText: suffix},
		},
	}
}

// Merge combines fixes into one; edits keep their relative order by position.
func Merge(title string, fixes ...diag.Fix) diag.Fix {
	out := diag.Fix{Title: title}
	for _, f := range fixes {
		out.Edits = append(out.Edits, f.Edits...)
	}
	slices.SortStableFunc(out.Edits, func(a, b diag.TextEdit) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return out
}

// Bounds returns the span covering every edit of f.
func Bounds(f *diag.Fix) source.Span {
	if f == nil || len(f.Edits) == 0 {
		return source.Span{}
	}
	sp := f.Edits[0].Span
	for _, e := range f.Edits[1:] {
		sp = sp.Cover(e.Span)
	}
	return sp
}
