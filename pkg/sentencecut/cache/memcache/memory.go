// Package memcache is an in-process LRU implementation of cache.Cache.
package memcache

import (
	"bytes"
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/sentencecut/pkg/sentencecut/table"
)

// Cache is a bounded in-memory result cache. Entries are stored
// CSV-encoded so callers can mutate returned tables freely.
type Cache struct {
	entries *lru.Cache[string, []byte]
}

// New creates a cache bounded to size entries.
func New(size int) (*Cache, error) {
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Close implements cache.Cache.
func (c *Cache) Close() error { return nil }

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (*table.Table, bool, error) {
	encoded, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	t, err := table.ReadCSV(encoded, ',')
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}

// Put implements cache.Cache.
func (c *Cache) Put(ctx context.Context, key string, t *table.Table) error {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return err
	}
	c.entries.Add(key, buf.Bytes())
	return nil
}
