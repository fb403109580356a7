package diagfmt

import (
	"fmt"
	"strings"

	"typedlint/internal/diag"
	"typedlint/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview returns the whole lines an edit touches, before and
// after it is applied.
func buildFixEditPreview(file *source.File, edit diag.TextEdit) (fixEditPreview, error) {
	size := file.Len()
	if edit.Span.Start > edit.Span.End || edit.Span.End > size {
		return fixEditPreview{}, fmt.Errorf("edit span %d..%d out of range", edit.Span.Start, edit.Span.End)
	}

	startLine := file.Position(edit.Span.Start).Line
	endLine := max(file.Position(edit.Span.End).Line, startLine)
	blockStart := file.LineStart(startLine)
	blockEnd := max(file.LineEnd(endLine), blockStart)

	original := file.Content[blockStart:blockEnd]
	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:edit.Span.Start-blockStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[edit.Span.End-blockStart:]...)

	return fixEditPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

// splitPreviewLines drops the final newline so it does not yield an empty line.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}
