package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisHashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisMirror keeps one hash per table at "<prefix>:<table>". Each field is a
// row id and each value the JSON encoding of the row.
type RedisMirror struct {
	client redisHashClient
	prefix string
}

// NewRedisMirror constructs a RedisMirror.
func NewRedisMirror(client redisHashClient, prefix string) *RedisMirror {
	return &RedisMirror{client: client, prefix: prefix}
}

// Put writes a single row.
func (m *RedisMirror) Put(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	if err := m.client.HSet(ctx, m.key(collection), id, payload).Err(); err != nil {
		return fmt.Errorf("mirror %s/%s: %w", collection, id, err)
	}
	return nil
}

// Clear drops every mirrored collection.
func (m *RedisMirror) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(MirroredTables))
	for _, table := range MirroredTables {
		keys = append(keys, m.key(table))
	}
	if err := m.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear redis mirror: %w", err)
	}
	return nil
}

func (m *RedisMirror) key(collection string) string {
	if m.prefix == "" {
		return collection
	}
	return m.prefix + ":" + collection
}
