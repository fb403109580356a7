package source

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// FileSet holds the texts linted in one run. Every Add gets a new FileID,
// even for a path seen before: each fix pass re-adds the file, and spans
// of earlier passes must keep resolving. Safe for concurrent use.
type FileSet struct {
	mu    sync.RWMutex
	files []*File
}

func NewFileSet() *FileSet { return &FileSet{} }

// Add registers already normalized content.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files in set: %w", err))
	}
	f.ID = FileID(n)
	fileSet.files = append(fileSet.files, f)
	return f.ID
}

// AddVirtual normalizes raw text that did not come from disk and adds it.
func (fileSet *FileSet) AddVirtual(name string, raw []byte) FileID {
	content, flags := Normalize(raw)
	return fileSet.Add(name, content, flags|FileVirtual)
}

func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return fileSet.files[id]
}

// Len is the number of texts added, versions included.
func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Resolve gives the line and column of both ends of span.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}
