package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"typedlint/internal/diag"
	"typedlint/internal/source"
)

// increment when CacheEntry changes shape
const cacheSchemaVersion uint16 = 1

// Cache keeps the final diagnostics of unchanged files between runs.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is what is stored per linted path.
type CacheEntry struct {
	Schema      uint16
	Path        string
	ContentHash [32]byte
	// ConfigKey covers the effective configuration and the driver options
	// that change results.
	ConfigKey   string
	Diagnostics []diag.Diagnostic
}

// DefaultCacheDir is $XDG_CACHE_HOME/typedlint or ~/.cache/typedlint.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "typedlint"), nil
}

// OpenCache opens the cache rooted at dir; empty dir means DefaultCacheDir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Dir is the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(c.dir, "files", hex.EncodeToString(sum[:])+".mp")
}

// Put serializes and writes an entry.
func (c *Cache) Put(entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = cacheSchemaVersion
	p := c.pathFor(entry.Path)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	fail := func(err error) error {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return nil
}

// Get returns the stored diagnostics for path when its content and
// configuration are unchanged. The diagnostics are rebound to file.
func (c *Cache) Get(file *source.File, configKey string) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(file.Path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, err
	}
	if entry.Schema != cacheSchemaVersion || entry.ContentHash != file.Hash || entry.ConfigKey != configKey {
		return nil, false, nil
	}
	return rebind(entry.Diagnostics, file.ID), true, nil
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог, потом удалим
	files := filepath.Join(c.dir, "files")
	old := files + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(files, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// rebind points every span at id; cached spans carry the file id of the run
// that stored them.
func rebind(diags []diag.Diagnostic, id source.FileID) []diag.Diagnostic {
	for i := range diags {
		d := &diags[i]
		d.Primary.File = id
		for j := range d.Notes {
			d.Notes[j].Span.File = id
		}
		if d.Fix != nil {
			for j := range d.Fix.Edits {
				d.Fix.Edits[j].Span.File = id
			}
		}
	}
	return diags
}
