package cache

import (
	"context"
	"fmt"
	"time"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Options selects and configures a cache backend.
type Options struct {
	Backend  string
	Dir      string
	Redis    RedisConfig
	Mongo    MongoConfig
	Compress bool

	// TTL, when positive, replaces the per-kind default TTLs.
	TTL time.Duration
}

// Open constructs the backend named by opts.Backend. An empty backend
// selects the file cache.
func Open(ctx context.Context, opts Options) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		c, err = NewFileCache(opts.Dir)
	case BackendRedis:
		c, err = NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		c, err = NewMongoCache(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	if opts.Compress {
		c = NewCompressed(c)
	}
	if opts.TTL > 0 {
		c = TTLOverride{Cache: c, TTL: opts.TTL}
	}
	return c, nil
}
