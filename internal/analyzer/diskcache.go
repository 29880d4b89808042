package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachedResult format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит результаты анализа по Digest запроса.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedResult struct {
	Schema  uint16
	Key     Digest
	Created int64
	Result  Result
}

// OpenDiskCache opens dir, or <XDG_CACHE_HOME|~/.cache>/codenote when dir is empty.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "codenote")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	// подкаталог "results" упрощает очистку
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and writes a result.
func (c *DiskCache) Put(key Digest, res *Result) error {
	if c == nil || res == nil {
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
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	payload := cachedResult{Schema: diskCacheSchemaVersion, Key: key, Created: time.Now().Unix(), Result: *res}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a result; ok is false on a miss or a schema mismatch.
func (c *DiskCache) Get(key Digest) (*Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachedResult
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Key != key {
		return nil, false, nil
	}
	return &payload.Result, true, nil
}

// DropAll invalidates the cache.
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
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// CacheStats counts cache traffic.
type CacheStats struct {
	Hits, Misses, Errors int64
}

// Cached consults the disk cache before the inner analyzer. Cache read and
// write failures are counted, not returned.
type Cached struct {
	Inner Analyzer
	Cache *DiskCache

	hits, misses, errs atomic.Int64
}

func NewCached(inner Analyzer, cache *DiskCache) *Cached {
	return &Cached{Inner: inner, Cache: cache}
}

func (c *Cached) Analyze(ctx context.Context, req Request) (*Result, error) {
	key := Key(req)
	res, ok, err := c.Cache.Get(key)
	if err != nil {
		c.errs.Add(1)
	}
	if ok {
		c.hits.Add(1)
		return res, nil
	}
	c.misses.Add(1)

	res, err = c.Inner.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.Put(key, res); err != nil {
		c.errs.Add(1)
	}
	return res, nil
}

func (c *Cached) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Errors: c.errs.Load()}
}
