// Package cache stores rendered diagrams between runs.
//
// Rendering through Graphviz is the only slow step in kintree, and its
// output depends only on the dataset and the render options. The pipeline
// therefore keys artifacts by a hash of both and keeps them in a [FileCache]
// under the user's cache directory. [NullCache] turns caching off.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().ArtifactKey(datasetHash, cache.ArtifactKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// TTLArtifact is how long rendered diagrams are kept.
const TTLArtifact = 7 * 24 * time.Hour
