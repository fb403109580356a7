package source

import "testing"

func TestFileSetKeepsVersions(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("src/a.ts", []byte("var a = 1;"), 0)
	second := fs.Add("src/a.ts", []byte("let a = 1;"), 0)
	if first == second {
		t.Fatal("re-adding a path must allocate a new FileID")
	}
	// спаны первого прохода фиксов остаются валидными
	if got := string(fs.Get(first).Content); got != "var a = 1;" {
		t.Errorf("first version = %q", got)
	}
	if fs.Get(first).Hash == fs.Get(second).Hash {
		t.Error("different content hashed equal")
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtual(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("<stdin>", []byte("a\r\nb\r\n")))
	if string(file.Content) != "a\nb\n" {
		t.Fatalf("content = %q", file.Content)
	}
	if !file.Virtual() || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", file.Flags)
	}
	if len(file.LineIdx) != 2 || file.LineIdx[0] != 1 || file.LineIdx[1] != 3 {
		t.Errorf("LineIdx = %v", file.LineIdx)
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.ts", []byte("let x: number = 1;\nfoo();\n"))
	file := fs.Get(id)

	for _, tt := range []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{18, LineCol{1, 19}},
		{19, LineCol{2, 1}},
		{26, LineCol{3, 1}},
	} {
		if got := file.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
	start, end := fs.Resolve(Span{File: id, Start: 19, End: 22})
	if start != (LineCol{2, 1}) || end != (LineCol{2, 4}) {
		t.Errorf("Resolve = %v..%v", start, end)
	}

	// колонки в байтах, не в рунах
	utf := fs.Get(fs.AddVirtual("utf.ts", []byte("α;\n")))
	if got := utf.Position(2); got != (LineCol{1, 3}) {
		t.Errorf("utf8 Position = %v", got)
	}
}

func TestLineBoundsAndText(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("lines.ts", []byte("one\ntwo\nthree")))

	for _, tt := range []struct {
		line       uint32
		start, end uint32
	}{
		{1, 0, 4},
		{2, 4, 8},
		{3, 8, 13},
		{4, 13, 13},
	} {
		if s, e := file.LineStart(tt.line), file.LineEnd(tt.line); s != tt.start || e != tt.end {
			t.Errorf("line %d = [%d,%d), want [%d,%d)", tt.line, s, e, tt.start, tt.end)
		}
	}
	if got := file.Text(Span{Start: 4, End: 7}); got != "two" {
		t.Errorf("Text = %q", got)
	}
	if got := file.Text(Span{Start: 8, End: 100}); got != "three" {
		t.Errorf("Text clamps to content, got %q", got)
	}
}

func TestFormatPath(t *testing.T) {
	file := &File{Path: "/proj/src/deeply/nested/directory/tree/app.ts"}
	for mode, want := range map[string]string{
		"relative": "src/deeply/nested/directory/tree/app.ts",
		"basename": "app.ts",
		"auto":     "app.ts",
		"":         file.Path,
	} {
		if got := file.FormatPath(mode, "/proj"); got != want {
			t.Errorf("FormatPath(%q) = %q, want %q", mode, got, want)
		}
	}
}
