// Package cache stores conversion results keyed by the content
// fingerprint of (input table, options). The pipeline is a pure
// function of that pair, so a hit can be returned verbatim.
package cache

import (
	"context"

	"github.com/cognicore/sentencecut/pkg/sentencecut/table"
)

// Cache is the interface result caches implement.
type Cache interface {
	Close() error

	// Get returns the cached result table for key, if present.
	Get(ctx context.Context, key string) (*table.Table, bool, error)
	// Put stores the result table under key, replacing any previous
	// entry.
	Put(ctx context.Context, key string, t *table.Table) error
}
