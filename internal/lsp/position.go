package lsp

import (
	"unicode/utf8"

	"typedlint/internal/source"
)

// utf16Len counts UTF-16 code units, the unit of LSP columns.
func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

// toPosition converts a 1-based byte LineCol of file to a 0-based LSP position.
func toPosition(file *source.File, lc source.LineCol) position {
	if lc.Line == 0 {
		return position{}
	}
	start := int(file.LineStart(lc.Line))
	end := start + int(lc.Col) - 1
	end = max(start, min(end, len(file.Content)))
	return position{Line: int(lc.Line) - 1, Character: utf16Len(file.Content[start:end])}
}

func spanRange(file *source.File, sp source.Span) lspRange {
	return lspRange{
		Start: toPosition(file, file.Position(sp.Start)),
		End:   toPosition(file, file.Position(sp.End)),
	}
}

// endOfText is the position just past the last character of text.
func endOfText(text string) position {
	var pos position
	lineStart := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	pos.Character = utf16Len([]byte(text[lineStart:]))
	return pos
}
