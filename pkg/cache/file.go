package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// entryMagic starts every file written by FileCache. Files without it are
// treated as corrupt.
var entryMagic = []byte("BDC1")

const entryHeaderSize = 4 + 8 // magic + expiry (unix nanoseconds, 0 = never)

// FileCache stores entries as files below a directory, sharded by the first
// two hex digits of the hashed key. Each file is a small header followed by
// the raw bytes, so PNG artifacts are stored without re-encoding.
//
// Writes go through a temporary file and a rename, so concurrent readers
// never observe a partial entry.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache. Expired and corrupt entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expiresAt, ok := decodeEntry(raw)
	if !ok || (!expiresAt.IsZero() && time.Now().After(expiresAt)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the cache. A non-positive ttl never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(encodeEntry(data, expiresAt)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:])
}

func encodeEntry(data []byte, expiresAt time.Time) []byte {
	buf := make([]byte, entryHeaderSize, entryHeaderSize+len(data))
	copy(buf, entryMagic)
	if !expiresAt.IsZero() {
		binary.BigEndian.PutUint64(buf[len(entryMagic):], uint64(expiresAt.UnixNano()))
	}
	return append(buf, data...)
}

func decodeEntry(raw []byte) (data []byte, expiresAt time.Time, ok bool) {
	if len(raw) < entryHeaderSize || !bytes.Equal(raw[:len(entryMagic)], entryMagic) {
		return nil, time.Time{}, false
	}
	if ns := binary.BigEndian.Uint64(raw[len(entryMagic):entryHeaderSize]); ns != 0 {
		expiresAt = time.Unix(0, int64(ns))
	}
	return raw[entryHeaderSize:], expiresAt, true
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
