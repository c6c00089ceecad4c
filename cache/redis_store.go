package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"weathersdk.app/config"
)

// RedisStore keeps entries in Redis as JSON. Entries are written without
// a TTL so stale values stay available for the failed-refresh fallback;
// freshness is decided by the cache layer from the entry timestamp.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	slog.Info("redis store connected", "addr", cfg.Addr)

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Entry, bool) {
	val, err := s.client.Get(ctx, s.storageKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("redis get error", "error", err, "key", key)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		slog.Error("redis unmarshal error", "error", err, "key", key)
		return nil, false
	}

	return &entry, true
}

func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry) {
	if entry == nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		slog.Error("redis marshal error", "error", err, "key", key)
		return
	}

	if err := s.client.Set(ctx, s.storageKey(key), data, 0).Err(); err != nil {
		slog.Error("redis set error", "error", err, "key", key)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, s.storageKey(key)).Err(); err != nil {
		slog.Error("redis delete error", "error", err, "key", key)
	}
}

func (s *RedisStore) Clear(ctx context.Context) {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		slog.Error("redis flush error", "error", err)
	}
}

func (s *RedisStore) storageKey(key string) string {
	return fmt.Sprintf("forecast:%s", key)
}
