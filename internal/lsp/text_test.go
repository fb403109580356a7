package lsp

import (
	"testing"

	"typedlint/internal/source"
)

func TestApplyChanges(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		changes []contentChange
		want    string
	}{
		{
			name:    "full replace",
			text:    "old",
			changes: []contentChange{{Text: "new"}},
			want:    "new",
		},
		{
			name: "insert on second line",
			text: "one\ntwo\n",
			changes: []contentChange{{
				Range: &lspRange{Start: position{Line: 1}, End: position{Line: 1}},
				Text:  "x",
			}},
			want: "one\nxtwo\n",
		},
		{
			name: "utf16 columns after astral rune",
			text: "a\U0001F600b\n",
			changes: []contentChange{{
				Range: &lspRange{Start: position{Line: 0, Character: 3}, End: position{Line: 0, Character: 4}},
				Text:  "c",
			}},
			want: "a\U0001F600c\n",
		},
		{
			name: "line past end appends",
			text: "a\n",
			changes: []contentChange{{
				Range: &lspRange{Start: position{Line: 9}, End: position{Line: 9}},
				Text:  "z",
			}},
			want: "a\nz",
		},
		{
			name: "sequential edits",
			text: "let a;\n",
			changes: []contentChange{
				{Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 3}}, Text: "var"},
				{Range: &lspRange{Start: position{Line: 0, Character: 4}, End: position{Line: 0, Character: 5}}, Text: "bb"},
			},
			want: "var bb;\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := applyChanges(tc.text, tc.changes); got != tc.want {
				t.Fatalf("applyChanges = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestToPositionCountsUTF16(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.js", []byte("x\nconst s = \"\U0001F600\"; y;\n")))
	off := uint32(len("x\nconst s = \"\U0001F600\"; "))
	got := toPosition(file, file.Position(off))
	if got.Line != 1 || got.Character != 16 {
		t.Fatalf("position = %+v, want 1:16", got)
	}
}

func TestEndOfText(t *testing.T) {
	if got := endOfText("ab\n\U0001F600"); got != (position{Line: 1, Character: 2}) {
		t.Fatalf("endOfText = %+v", got)
	}
	if got := endOfText(""); got != (position{}) {
		t.Fatalf("endOfText(\"\") = %+v", got)
	}
}
