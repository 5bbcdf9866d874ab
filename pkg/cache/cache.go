// Package cache stores exported graph documents keyed by the input that
// produced them.
//
// Three backends implement [Cache]: [NullCache] disables caching,
// [FileCache] keeps entries under a local directory for the CLI and
// [RedisCache] shares them between machines. Keys are derived by a [Keyer]
// from a hash of the raw input and the options that affect the result, so a
// changed cutoff or block size never hits a stale entry.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/pangraph/pkg/errors"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Dir       string
	RedisAddr string
	Prefix    string
}

// Open creates the cache named by opts.Backend. An empty Dir for the file
// backend selects [DefaultDir].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone, "":
		return NewNullCache(), nil
	case BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "open file cache")
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisAddr, opts.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", opts.Backend)
}

// DefaultDir returns the per-user cache directory for pangraph.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "locate user cache dir")
	}
	return filepath.Join(base, "pangraph"), nil
}
