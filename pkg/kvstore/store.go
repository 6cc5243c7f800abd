package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a JSON document store on top of Redis.
// Documents are whole values written and read by string key; the engine's
// pool and leaderboard documents live here.
// SSOT: document (de)serialization happens here and nowhere else
type Store struct {
	client *Client
	prefix string
}

// NewStore creates a new document store with a key prefix
func NewStore(client *Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a document by key. Returns false when the key does not
// exist or the store is disabled. Any other Redis failure is an error:
// the documents here are the system of record, and a read failure
// mistaken for a missing document would let the next save overwrite
// everything the document held.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.client.Enabled() {
		return false, nil
	}

	data, err := s.client.Redis().Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Key not found is not an error
			return false, nil
		}
		return false, fmt.Errorf("document read failed: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("document unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a document under key. A zero ttl means the document does
// not expire.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("document marshal failed: %w", err)
	}

	return s.client.Redis().Set(ctx, s.key(key), data, ttl).Err()
}

// Delete removes a document
func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.client.Enabled() {
		return nil
	}

	return s.client.Redis().Del(ctx, s.key(key)).Err()
}

func (s *Store) key(key string) string {
	return fmt.Sprintf("%s:doc:%s", s.prefix, key)
}

// Well-known document keys
const (
	PoolKey        = "pool:v1"
	LeaderboardKey = "leaderboard:v1"
)

// Document TTLs
const (
	TTLNone        = time.Duration(0) // pool document never expires
	TTLLeaderboard = 24 * time.Hour   // derived view, rebuilt every pass
)
