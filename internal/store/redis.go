package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dario2994/code-contest-bot/internal/contest"
)

const redisOpTimeout = 3 * time.Second

// RedisStore keeps the snapshot as a single value under one key. SET replaces
// the previous value atomically, which is exactly the snapshot contract.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(addr, password string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Save(state *contest.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write snapshot to redis: %w", err)
	}
	return nil
}

func (r *RedisStore) Load() (*contest.State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return contest.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot from redis: %w", err)
	}

	state := contest.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return state, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
