// Package metadata is the client's local key/value store. It backs the
// session token slot and the cached roadmap progress.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every pair whose key starts with prefix.
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}
