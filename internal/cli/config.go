package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gravitymap/pkg/api"
	"github.com/matzehuels/gravitymap/pkg/cache"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

// =============================================================================
// Config File
// =============================================================================

// Config is the contents of config.toml. Every field is optional; flags
// override file values.
//
//	[layout]
//	iterations = 300
//	max_radius = 1.5
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//	prefix = "staging:"
//
//	[server]
//	addr = ":8080"
//	max_nodes = 1000
type Config struct {
	Layout graph.LayoutConfig `toml:"layout"`
	Cache  CacheConfig        `toml:"cache"`
	Server ServerConfig       `toml:"server"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	TTL           Duration `toml:"ttl"`
	Compress      bool     `toml:"compress"`

	// Prefix scopes every cache key, so deployments can share one backend.
	Prefix string `toml:"prefix"`
}

// ServerConfig configures `gravitymap serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxNodes     int      `toml:"max_nodes"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// Duration reads TOML strings such as "30s" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

const (
	defaultAddr         = ":8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
)

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{
			Addr:         defaultAddr,
			ReadTimeout:  Duration{defaultReadTimeout},
			WriteTimeout: Duration{defaultWriteTimeout},
			MaxNodes:     pipeline.DefaultMaxNodes,
			MaxBodyBytes: api.DefaultMaxBodyBytes,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when required is set (the user named it with --config). Unknown keys are
// returned so the caller can warn about them.
func loadConfig(path string, required bool) (Config, []string, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return defaultConfig(), nil, nil
		}
		return Config{}, nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	sort.Strings(unknown)
	return cfg, unknown, nil
}

// CacheOptions converts the [cache] section for cache.Open. The file cache
// falls back to the XDG cache directory.
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
		Mongo: cache.MongoConfig{
			URI:      c.Cache.MongoURI,
			Database: c.Cache.MongoDatabase,
		},
		Compress: c.Cache.Compress,
		TTL:      c.Cache.TTL.Duration,
	}
	if (opts.Backend == "" || opts.Backend == cache.BackendFile) && opts.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return cache.Options{}, err
		}
		opts.Dir = dir
	}
	return opts, nil
}

// Keyer returns the cache keyer for the [cache] section. A prefix wraps the
// default keyer in a ScopedKeyer.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// =============================================================================
// Paths
// =============================================================================

// configPath returns the default config file location
// (~/.config/gravitymap/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gravitymap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
