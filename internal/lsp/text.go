package lsp

import "unicode/utf8"

// applyChanges applies didChange events in order. A change without a range
// replaces the whole text.
func applyChanges(text string, changes []contentChange) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := byteOffset(text, change.Range.Start)
		end := byteOffset(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// byteOffset converts a 0-based line and UTF-16 character to a byte offset,
// clamping to the line end and the text end.
func byteOffset(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		for i < len(text) && text[i] != '\n' {
			i++
		}
		if i == len(text) {
			return len(text)
		}
		i++
	}
	units := 0
	for i < len(text) && text[i] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := 1
		if r > 0xFFFF {
			need = 2
		}
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}
