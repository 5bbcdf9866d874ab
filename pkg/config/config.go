// Package config loads pangraph settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults ([Default]), the
// file given to [Load], and PANGRAPH_* environment variables. Command-line
// flags are applied last by the CLI.
package config

import (
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/pangraph/pkg/cache"
	"github.com/matzehuels/pangraph/pkg/errors"
	"github.com/matzehuels/pangraph/pkg/signature"
	"github.com/matzehuels/pangraph/pkg/store"
	"github.com/matzehuels/pangraph/pkg/summarize"
)

// EnvFile names the variable that points at a config file when no path is
// given explicitly.
const EnvFile = "PANGRAPH_CONFIG"

// Config is the full settings tree.
type Config struct {
	Align     Align     `toml:"align"`
	Summarize Summarize `toml:"summarize"`
	Store     Store     `toml:"store"`
	Cache     Cache     `toml:"cache"`
	Log       Log       `toml:"log"`
}

type Align struct {
	// Workers bounds parallel primary trials; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
}

type Summarize struct {
	Cutoff    int `toml:"cutoff"`
	MaxLevels int `toml:"max_levels"`
	BlockSize int `toml:"block_size"`
}

type Store struct {
	Backend  string `toml:"backend"`
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
	// Scope prefixes every graph key so that projects sharing one cache
	// backend do not see each other's entries.
	Scope string `toml:"scope"`
}

type Log struct {
	Level string `toml:"level"`
}

// Duration reads TOML strings such as "24h" or "90m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.Summarize.Cutoff = summarize.FilterThreshold
	c.Summarize.MaxLevels = summarize.DefaultMaxLevels
	c.Summarize.BlockSize = signature.BlockSize
	c.Store.Backend = store.BackendMemory
	c.Store.URI = "mongodb://localhost:27017"
	c.Store.Database = store.DefaultDatabase
	c.Cache.Backend = cache.BackendFile
	c.Cache.RedisAddr = "localhost:6379"
	c.Cache.TTL = Duration{24 * time.Hour}
	c.Log.Level = "info"
	return c
}

// Load reads path over the defaults and applies environment overrides. An
// empty path falls back to $PANGRAPH_CONFIG; if that is unset too only
// defaults and environment are used. The result is validated.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			if os.IsNotExist(err) {
				return c, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
			}
			return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return c, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %s", path, undecoded[0])
		}
	}
	applyEnv(&c)
	return c, c.Validate()
}

func applyEnv(c *Config) {
	if v := os.Getenv("PANGRAPH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PANGRAPH_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("PANGRAPH_MONGO_URI"); v != "" {
		c.Store.URI = v
	}
	if v := os.Getenv("PANGRAPH_CACHE"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("PANGRAPH_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv("PANGRAPH_CACHE_SCOPE"); v != "" {
		c.Cache.Scope = v
	}
}

// Validate reports the first invalid setting as INVALID_CONFIG.
func (c Config) Validate() error {
	switch {
	case c.Align.Workers < 0:
		return invalid("align.workers must be >= 0, got %d", c.Align.Workers)
	case c.Summarize.Cutoff < 0:
		return invalid("summarize.cutoff must be >= 0, got %d", c.Summarize.Cutoff)
	case c.Summarize.MaxLevels < 1:
		return invalid("summarize.max_levels must be >= 1, got %d", c.Summarize.MaxLevels)
	case c.Summarize.BlockSize < 1:
		return invalid("summarize.block_size must be >= 1, got %d", c.Summarize.BlockSize)
	case c.Cache.TTL.Duration < 0:
		return invalid("cache.ttl must not be negative")
	case strings.ContainsFunc(c.Cache.Scope, unicode.IsSpace):
		return invalid("cache.scope %q must not contain whitespace", c.Cache.Scope)
	}
	switch c.Store.Backend {
	case store.BackendMemory:
	case store.BackendMongo:
		if c.Store.URI == "" {
			return invalid("store.uri is required for the mongo backend")
		}
	default:
		return invalid("store.backend %q is not one of memory, mongo", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend %q is not one of none, file, redis", c.Cache.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level %q: %v", c.Log.Level, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// StoreOptions converts the store section for [store.Open].
func (c Config) StoreOptions() store.Options {
	return store.Options{Backend: c.Store.Backend, URI: c.Store.URI, Database: c.Store.Database}
}

// CacheOptions converts the cache section for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisAddr: c.Cache.RedisAddr}
}

// Keyer returns the cache keyer, scoped by cache.scope when it is set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Scope == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Scope+":")
}
