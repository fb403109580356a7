package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Extensions are the file suffixes picked up when a directory is expanded.
var Extensions = []string{".js", ".mjs", ".cjs", ".ts", ".tjs"}

// skipDirs are never descended into.
var skipDirs = []string{"node_modules", ".git"}

// ErrNoFiles is returned when a path argument does not exist.
var ErrNoFiles = errors.New("no files matching the pattern were found")

// ExpandPaths lists the files to lint: files given explicitly are kept,
// directories are walked for Extensions. Paths matching an ignore pattern
// are dropped. The result is sorted and free of duplicates.
func ExpandPaths(paths []string, ignores ...string) ([]string, error) {
	ign := newIgnoreSet(ignores)
	var files []string
	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%q: %w", p, ErrNoFiles)
			}
			return nil, err
		}
		if !info.IsDir() {
			if !ign.file(p) {
				files = append(files, p)
			}
			continue
		}
		err = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if file != p && (slices.Contains(skipDirs, d.Name()) || ign.dir(file)) {
					return filepath.SkipDir
				}
				return nil
			}
			if slices.Contains(Extensions, filepath.Ext(file)) && !ign.file(file) {
				files = append(files, file)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// ignoreSet matches slash-separated paths against gitignore-like globs:
// "**" spans directories, a pattern without "/" matches at any depth and a
// trailing "/" matches everything below a directory.
type ignoreSet struct {
	patterns []string
}

func newIgnoreSet(patterns []string) ignoreSet {
	var s ignoreSet
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./")
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "/") {
			p += "**"
		}
		if !strings.Contains(strings.TrimSuffix(p, "/**"), "/") {
			p = "**/" + p
		}
		s.patterns = append(s.patterns, p)
	}
	return s
}

func (s ignoreSet) file(name string) bool {
	name = cleanSlash(name)
	for _, p := range s.patterns {
		if matchGlob(p, name) {
			return true
		}
	}
	return false
}

func (s ignoreSet) dir(name string) bool {
	name = cleanSlash(name)
	for _, p := range s.patterns {
		if matchGlob(p, name) {
			return true
		}
		if prefix, ok := strings.CutSuffix(p, "/**"); ok && matchGlob(prefix, name) {
			return true
		}
	}
	return false
}

// cleanSlash makes name relative to the working directory when it lies below it.
func cleanSlash(name string) string {
	name = filepath.Clean(name)
	if filepath.IsAbs(name) {
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, name); err == nil && !strings.HasPrefix(rel, "..") {
				name = rel
			}
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(name), "./")
}

// matchGlob reports whether the slash-separated name matches pattern.
// Malformed patterns match nothing.
func matchGlob(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
