package diagfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"

	"typedlint/internal/driver"
)

const diffContext = 3

type opKind uint8

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type lineOp struct {
	kind opKind
	line string
	// 0-based line numbers in the old and new text
	a, b int
}

// FixDiffs prints a unified diff for every file whose fixes changed its text.
// Used by --fix-dry-run.
func FixDiffs(w io.Writer, run *driver.RunResult, opts Opts) error {
	bw := bufio.NewWriter(w)
	for _, res := range run.Files {
		if res == nil || !res.Fixed() {
			continue
		}
		name := displayPath(res, opts)
		out, err := UnifiedDiff(name, res.Source, res.Output)
		if err != nil {
			return fmt.Errorf("diff %s: %w", name, err)
		}
		if _, err := bw.Write(out); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// UnifiedDiff returns the unified diff between before and after, or nil when
// they are equal.
func UnifiedDiff(name string, before, after []byte) ([]byte, error) {
	if bytes.Equal(before, after) {
		return nil, nil
	}
	fd := &diff.FileDiff{
		OrigName: "a/" + name,
		NewName:  "b/" + name,
		Hunks:    buildHunks(diffLines(splitLines(before), splitLines(after))),
	}
	return diff.PrintFileDiff(fd)
}

// splitLines keeps the line terminators.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// diffLines produces the edit script from a to b. The common head and tail
// are taken as equal up front, so a fix touching a few lines only runs the
// matcher over those lines.
func diffLines(a, b []string) []lineOp {
	n, m := len(a), len(b)
	head := 0
	for head < n && head < m && a[head] == b[head] {
		head++
	}
	tail := 0
	for tail < n-head && tail < m-head && a[n-1-tail] == b[m-1-tail] {
		tail++
	}

	ops := make([]lineOp, 0, max(n, m))
	equal := func(i, j, count int) {
		for k := range count {
			ops = append(ops, lineOp{kind: opEqual, line: a[i+k], a: i + k, b: j + k})
		}
	}
	equal(0, 0, head)
	// autojunk off: repeated lines like "}" must still match
	matcher := difflib.NewMatcherWithJunk(a[head:n-tail], b[head:m-tail], false, nil)
	for _, op := range matcher.GetOpCodes() {
		i1, i2, j1, j2 := head+op.I1, head+op.I2, head+op.J1, head+op.J2
		switch op.Tag {
		case 'e':
			equal(i1, j1, i2-i1)
			continue
		case 'd', 'r':
			for i := i1; i < i2; i++ {
				ops = append(ops, lineOp{kind: opDelete, line: a[i], a: i, b: j1})
			}
		}
		if op.Tag == 'i' || op.Tag == 'r' {
			for j := j1; j < j2; j++ {
				ops = append(ops, lineOp{kind: opInsert, line: b[j], a: i2, b: j})
			}
		}
	}
	equal(n-tail, m-tail, tail)
	return ops
}

// buildHunks groups changes with diffContext lines around them. Changes
// closer than 2*diffContext share a hunk.
func buildHunks(ops []lineOp) []*diff.Hunk {
	var hunks []*diff.Hunk
	for k := 0; k < len(ops); {
		if ops[k].kind == opEqual {
			k++
			continue
		}
		start := max(k-diffContext, 0)
		end := k
		for end < len(ops) {
			if ops[end].kind != opEqual {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == opEqual {
				run++
			}
			if run == len(ops) || run-end > 2*diffContext {
				end = min(end+diffContext, len(ops))
				break
			}
			end = run
		}
		hunks = append(hunks, makeHunk(ops[start:end]))
		k = end
	}
	return hunks
}

func makeHunk(ops []lineOp) *diff.Hunk {
	h := &diff.Hunk{
		OrigStartLine: int32(ops[0].a) + 1,
		NewStartLine:  int32(ops[0].b) + 1,
	}
	var body bytes.Buffer
	for _, op := range ops {
		switch op.kind {
		case opEqual:
			body.WriteByte(' ')
			h.OrigLines++
			h.NewLines++
		case opDelete:
			body.WriteByte('-')
			h.OrigLines++
		case opInsert:
			body.WriteByte('+')
			h.NewLines++
		}
		body.WriteString(op.line)
		if !strings.HasSuffix(op.line, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}
	}
	// пустая сторона хунка начинается со строки перед ним
	if h.OrigLines == 0 {
		h.OrigStartLine--
	}
	if h.NewLines == 0 {
		h.NewStartLine--
	}
	h.Body = body.Bytes()
	return h
}
