// Package cache stores rendered diagram artifacts between runs.
//
// Rendering through Graphviz is the only expensive step of the pipeline, so
// artifacts are cached by a hash of the DOT source they were produced from.
// A backend is chosen by URL with [Open]:
//
//	""  or file:///path   FileCache (local CLI default)
//	none                   NullCache (caching disabled)
//	redis://host:6379/0    RedisCache
//	mongodb://host:27017   MongoCache
//
// All backends treat a missing or expired entry as a miss, never an error.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a DOT source.
	ArtifactKey(dotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the DOT hash together with the render options.
func (DefaultKeyer) ArtifactKey(dotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dotHash, opts)
}

// Open returns the backend selected by rawURL. dir is the FileCache
// directory used when rawURL is empty.
func Open(ctx context.Context, rawURL, dir string) (Cache, error) {
	rawURL = strings.TrimSpace(rawURL)
	switch rawURL {
	case "":
		return openFile(dir)
	case "none", "off":
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}
	switch u.Scheme {
	case "file":
		if u.Path == "" {
			return openFile(dir)
		}
		return openFile(u.Path)
	case "redis", "rediss":
		c, err := NewRedisCache(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mongodb", "mongodb+srv":
		c, err := NewMongoCache(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", u.Scheme)
	}
}

func openFile(dir string) (Cache, error) {
	c, err := NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// retryable marks transport errors for RetryWithBackoff. Cancellation is
// never retried.
func retryable(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(err)
}
