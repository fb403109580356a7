package source

import "strconv"

type (
	FileID    uint32
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk: stdin, LSP
	// buffers and the fixer's intermediate passes.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM and FileNormalizedCRLF record what Normalize removed, so
	// reports can tell; fix.RestoreEndings puts them back on write.
	FileHadBOM
	FileNormalizedCRLF
)

// File is one normalized source text registered in a FileSet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte // sha256 of Content, the result cache key
	Flags   FileFlags
}

func (f *File) Virtual() bool { return f.Flags&FileVirtual != 0 }

// Lines is the number of lines, counting a final line without '\n'.
func (f *File) Lines() int {
	n := len(f.LineIdx) + 1
	if len(f.LineIdx) > 0 && int(f.LineIdx[len(f.LineIdx)-1]) == len(f.Content)-1 {
		n--
	}
	return n
}

// LineCol is a 1-based line and byte column, as printed in reports.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return strconv.FormatUint(uint64(lc.Line), 10) + ":" + strconv.FormatUint(uint64(lc.Col), 10)
}
