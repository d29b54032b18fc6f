// Package checkpoint remembers the last (round, tick) a run ingested.
// The checkpoint is a fast path only: it lets the scraper skip the store
// lookup when the upstream has not ticked since the previous run. The
// world partition stays the source of truth for duplicate detection.
package checkpoint

import (
	"context"
	"os"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Checkpoint records the most recently ingested tick.
type Checkpoint struct {
	Round int `json:"round"`
	Tick  int `json:"tick"`
}

// Store defines the interface for persisting and loading checkpoints.
type Store interface {
	// Save persists the checkpoint.
	Save(ctx context.Context, cp Checkpoint) error

	// Load retrieves the last saved checkpoint. Returns nil if none exists.
	Load(ctx context.Context) (*Checkpoint, error)
}

// FileStore implements Store using a local file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(ctx context.Context, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *FileStore) Load(ctx context.Context) (*Checkpoint, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// RedisStore implements Store using Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
	}
}

func (s *RedisStore) Save(ctx context.Context, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) (*Checkpoint, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}
