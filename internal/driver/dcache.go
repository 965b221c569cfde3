package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"strum/internal/pattern"
	"strum/internal/source"
)

// Bump when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores compiled documents keyed by source content hash, so
// replaying an unchanged file skips the parse and compile phases.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached artifact for one source file.
type DiskPayload struct {
	Schema     uint16
	Path       string
	SourceHash [32]byte
	Document   []byte // wire-form document
}

// OpenDiskCache initializes a disk cache at the standard location:
// $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache in an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	// Subdirectory "docs" keeps the cache easy to inspect and clear.
	return filepath.Join(c.dir, "docs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a payload, replacing the file atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. Returns false on a miss or a schema mismatch.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// CompileFileCached is CompileFile with a read-through disk cache. A hit
// decodes the stored document and skips the parse and compile phases;
// files that compile with errors are never cached.
func CompileFileCached(path string, opts CompileOptions, cache *DiskCache) (*CompileResult, error) {
	if cache == nil {
		return CompileFile(path, opts)
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	var payload DiskPayload
	if hit, err := cache.Get(file.Hash, &payload); err == nil && hit {
		if doc, derr := pattern.Decode(payload.Document); derr == nil {
			return &CompileResult{
				FileSet:  fs,
				FileID:   fileID,
				Document: doc,
			}, nil
		}
		// Corrupt entry: fall through and recompile.
	}

	result, err := CompileFile(path, opts)
	if err != nil {
		return nil, err
	}
	if result.Document != nil && !result.Bag.HasErrors() {
		if wire, werr := result.Document.Encode(); werr == nil {
			_ = cache.Put(file.Hash, &DiskPayload{
				Schema:     diskCacheSchemaVersion,
				Path:       path,
				SourceHash: file.Hash,
				Document:   wire,
			})
		}
	}
	return result, nil
}
