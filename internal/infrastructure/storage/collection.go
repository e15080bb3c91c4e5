// internal/infrastructure/storage/collection.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a collection has never been saved
var ErrNotFound = errors.New("collection not found")

// CollectionStore persists whole collections as single documents keyed by
// name. Load and save always move the full collection; there is no partial
// update. Callers that need one are using the wrong store.
type CollectionStore interface {
	LoadAll(ctx context.Context, collection string, out interface{}) error
	SaveAll(ctx context.Context, collection string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, collection string) error
}

// RedisStore implements CollectionStore with one JSON blob per collection
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a collection store on the given Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "pos:",
	}
}

// LoadAll decodes the named collection into out
func (s *RedisStore) LoadAll(ctx context.Context, collection string, out interface{}) error {
	data, err := s.client.Get(ctx, s.prefix+collection).Result()
	if err == redis.Nil {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to load collection '%s': %w", collection, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("failed to decode collection '%s': %w", collection, err)
	}
	return nil
}

// SaveAll replaces the named collection. A zero ttl keeps it forever.
func (s *RedisStore) SaveAll(ctx context.Context, collection string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection '%s': %w", collection, err)
	}
	if err := s.client.Set(ctx, s.prefix+collection, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save collection '%s': %w", collection, err)
	}
	return nil
}

// Delete removes the named collection
func (s *RedisStore) Delete(ctx context.Context, collection string) error {
	if err := s.client.Del(ctx, s.prefix+collection).Err(); err != nil {
		return fmt.Errorf("failed to delete collection '%s': %w", collection, err)
	}
	return nil
}
