package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM and folds CRLF line endings, reporting what it changed.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// Endings records what Normalize removed from one text: the BOM and, per
// line of the normalized text, whether its '\n' was a CRLF. Mixed files
// keep their mix.
type Endings struct {
	BOM  bool
	CRLF []bool // nil when the text had no CRLF
}

// BOM is the UTF-8 byte order mark.
var BOM = slices.Clip(bom)

// ScanEndings reads the terminators of raw, the text as it was on disk.
func ScanEndings(raw []byte) Endings {
	var e Endings
	raw, e.BOM = removeBOM(raw)
	if !bytes.Contains(raw, []byte("\r\n")) {
		return e
	}
	e.CRLF = make([]bool, 0, bytes.Count(raw, []byte{'\n'}))
	for i, b := range raw {
		if b == '\n' {
			e.CRLF = append(e.CRLF, i > 0 && raw[i-1] == '\r')
		}
	}
	return e
}

// AllCRLF reports whether every terminated line ended in CRLF.
func (e Endings) AllCRLF() bool {
	return len(e.CRLF) > 0 && !slices.Contains(e.CRLF, false)
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	changed := false
	for i := 0; i < len(content); {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
			continue
		}
		out = append(out, content[i])
		i++
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bom) {
		return content[len(bom):], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- file length is checked in Add
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: находим число переводов строк строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var startOff uint32
	if lo > 0 {
		startOff = lineIdx[lo-1] + 1
	}
	return LineCol{Line: uint32(lo + 1), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
