package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableClient returns a client whose connection always fails,
// without the connectivity check New performs.
func unreachableClient() *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return &Client{rdb: rdb, enabled: true}
}

func TestStoreGetDisabled(t *testing.T) {
	store := NewStore(&Client{enabled: false}, "test")

	var doc map[string]string
	found, err := store.Get(context.Background(), "pool:v1", &doc)
	if err != nil {
		t.Fatalf("Get on disabled store: %v", err)
	}
	if found {
		t.Error("Get on disabled store reported found")
	}
}

func TestStoreGetConnectionErrorIsNotMissing(t *testing.T) {
	store := NewStore(unreachableClient(), "test")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var doc map[string]string
	found, err := store.Get(ctx, "pool:v1", &doc)
	if err == nil {
		t.Fatal("Get swallowed a connection error; a failed read must not look like a missing document")
	}
	if found {
		t.Error("Get reported found on a failed read")
	}
}
