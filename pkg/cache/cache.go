// Package cache stores parsed package database indexes between runs.
//
// Reading a sync database means decompressing and parsing a tar archive of
// several thousand entries; pacdep keeps the parsed result keyed on the
// archive's path, size and modification time, so an unchanged database is
// loaded from a single JSON blob instead.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// IndexKey identifies the parsed index of one database file. Any change
	// to the file's size or modification time yields a different key.
	IndexKey(repo, path string, size int64, mtime time.Time) string
}

// IndexFormat is bumped whenever the cached index layout changes.
const IndexFormat = 1

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// IndexKey implements [Keyer].
func (DefaultKeyer) IndexKey(repo, path string, size int64, mtime time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d\x00%s\x00%d\x00%d", IndexFormat, path, size, mtime.UnixNano()))
	return "index:" + repo + ":" + hex.EncodeToString(sum[:])
}

// digest is the hex SHA-256 of s.
func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// NullCache stores nothing; every Get misses. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
