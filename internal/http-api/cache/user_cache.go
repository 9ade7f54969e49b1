package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"userapi/internal/http-api/dto"
)

const (
	userListKey    = "userapi:users:list"
	userVersionKey = "userapi:users:version"
)

// UserListCache stores the assembled list response between writes.
//
// Every Invalidate bumps a version counter. Readers take the version before
// loading from the store and pass it to Set, which drops the snapshot when a
// write has invalidated the list in between.
type UserListCache interface {
	Get(ctx context.Context) ([]dto.UserResponse, bool, error)
	Version(ctx context.Context) (int64, error)
	Set(ctx context.Context, version int64, users []dto.UserResponse) error
	Invalidate(ctx context.Context) error
}

type redisUserListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisUserListCache(client *redis.Client, ttl time.Duration) UserListCache {
	return &redisUserListCache{client: client, ttl: ttl}
}

func (c *redisUserListCache) Get(ctx context.Context) ([]dto.UserResponse, bool, error) {
	raw, err := c.client.Get(ctx, userListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var users []dto.UserResponse
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, false, fmt.Errorf("decode cached users: %w", err)
	}
	return users, true, nil
}

// Version returns the current list generation, 0 before the first write.
func (c *redisUserListCache) Version(ctx context.Context) (int64, error) {
	return readVersion(ctx, c.client)
}

// Set stores users only while the generation still equals version.
func (c *redisUserListCache) Set(ctx context.Context, version int64, users []dto.UserResponse) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, userListKey, raw, c.ttl)
			return nil
		})
		return err
	}, userVersionKey)
	if errors.Is(err, redis.TxFailedErr) {
		// invalidated while writing
		return nil
	}
	return err
}

func (c *redisUserListCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, userVersionKey)
		pipe.Del(ctx, userListKey)
		return nil
	})
	return err
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, cmd stringGetter) (int64, error) {
	v, err := cmd.Get(ctx, userVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}
