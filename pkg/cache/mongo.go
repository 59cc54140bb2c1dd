package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection is the subset of *mongo.Collection used by MongoCache.
type mongoCollection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// MongoConfig configures a MongoDB-backed cache.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Default database and collection names.
const (
	DefaultMongoDatabase   = "gravitymap"
	DefaultMongoCollection = "layout_cache"
)

// mongoEntry is the stored document. Entries without an expiry omit
// expires_at so the TTL index ignores them.
type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// MongoCache stores entries as documents. A TTL index on expires_at lets the
// server purge expired entries; Get also checks expiry since the TTL monitor
// only runs periodically.
type MongoCache struct {
	coll       mongoCollection
	disconnect func(context.Context) error
	now        func() time.Time
}

// NewMongoCache connects to MongoDB and ensures the TTL index exists.
func NewMongoCache(ctx context.Context, cfg MongoConfig) (*MongoCache, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: mongo connect: %v", ErrNetwork, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: mongo ping: %v", ErrNetwork, err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ttl index: %w", err)
	}

	return &MongoCache{coll: coll, disconnect: client.Disconnect, now: time.Now}, nil
}

// Get retrieves a value.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := RetryWithBackoff(ctx, func() error {
		err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&entry)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return Retryable(fmt.Errorf("%w: mongo find: %v", ErrNetwork, err))
		}
		return err
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if entry.ExpiresAt != nil && c.now().After(*entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set upserts a value. A ttl <= 0 means the entry never expires.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := c.now().Add(ttl)
		entry.ExpiresAt = &exp
	}
	return RetryWithBackoff(ctx, func() error {
		_, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, entry, options.Replace().SetUpsert(true))
		if err != nil {
			return Retryable(fmt.Errorf("%w: mongo replace: %v", ErrNetwork, err))
		}
		return nil
	})
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}}); err != nil {
		return fmt.Errorf("%w: mongo delete: %v", ErrNetwork, err)
	}
	return nil
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	if c.disconnect == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.disconnect(ctx)
}

var _ Cache = (*MongoCache)(nil)
