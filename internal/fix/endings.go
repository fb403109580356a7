package fix

import (
	"bytes"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"typedlint/internal/source"
)

// RestoreEndings gives fixed text back the BOM and line terminators of the
// file it came from. before is the normalized text the fixes started from,
// after the normalized result. Lines the fixes did not touch keep their
// own terminator; a rewritten line takes the terminator of the line it
// replaces and an inserted line that of the line above it.
func RestoreEndings(e source.Endings, before, after []byte) []byte {
	out := after
	switch {
	case e.CRLF == nil:
	case e.AllCRLF():
		out = bytes.ReplaceAll(after, []byte("\n"), []byte("\r\n"))
	default:
		out = restoreMixed(e.CRLF, before, after)
	}
	if e.BOM {
		out = append(bytes.Clone(source.BOM), out...)
	}
	return out
}

func restoreMixed(crlf []bool, before, after []byte) []byte {
	a, b := splitKeep(before), splitKeep(after)
	wasCRLF := func(i int) bool { return i >= 0 && i < len(crlf) && crlf[i] }

	ends := make([]bool, len(b))
	n, m := len(a), len(b)
	head := 0
	for head < n && head < m && a[head] == b[head] {
		ends[head] = wasCRLF(head)
		head++
	}
	tail := 0
	for tail < n-head && tail < m-head && a[n-1-tail] == b[m-1-tail] {
		ends[m-1-tail] = wasCRLF(n - 1 - tail)
		tail++
	}
	matcher := difflib.NewMatcherWithJunk(a[head:n-tail], b[head:m-tail], false, nil)
	for _, op := range matcher.GetOpCodes() {
		i1, i2, j1, j2 := head+op.I1, head+op.I2, head+op.J1, head+op.J2
		for j := j1; j < j2; j++ {
			switch op.Tag {
			case 'e':
				ends[j] = wasCRLF(i1 + j - j1)
			case 'r':
				ends[j] = wasCRLF(min(i1+j-j1, i2-1))
			case 'i':
				if i1 > 0 {
					ends[j] = wasCRLF(i1 - 1)
				} else {
					ends[j] = wasCRLF(0)
				}
			}
		}
	}

	var out bytes.Buffer
	out.Grow(len(after) + len(b))
	for j, line := range b {
		if ends[j] && strings.HasSuffix(line, "\n") {
			out.WriteString(line[:len(line)-1])
			out.WriteString("\r\n")
			continue
		}
		out.WriteString(line)
	}
	return out.Bytes()
}

// splitKeep splits after each '\n', dropping the empty tail.
func splitKeep(text []byte) []string {
	if len(text) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
