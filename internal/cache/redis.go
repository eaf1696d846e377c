package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const likeCountTTL = time.Hour

// LikeCounter caches per-user "liked you" counts.
type LikeCounter interface {
	GetLikeCount(ctx context.Context, userID int64) (int64, bool, error)
	SetLikeCount(ctx context.Context, userID int64, count int64) error
	IncrLikeCount(ctx context.Context, userID int64) error
	DecrLikeCount(ctx context.Context, userID int64) error
}

// RedisCache is the go-redis implementation of LikeCounter.
type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes a Redis client. Only addr is mandatory.
func NewRedisCache(addr, password string, db int) *RedisCache {
	opts := &redis.Options{Addr: addr}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func keyForLikeCount(userID int64) string {
	return fmt.Sprintf("likes:count:%d", userID)
}

// GetLikeCount returns the cached count and whether it was a hit.
// TTL is refreshed on access since the user is active.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID int64) (int64, bool, error) {
	key := keyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	_ = c.Client.Expire(ctx, key, likeCountTTL).Err()
	return n, true, nil
}

// SetLikeCount stores the count with TTL.
func (c *RedisCache) SetLikeCount(ctx context.Context, userID int64, count int64) error {
	return c.Client.Set(ctx, keyForLikeCount(userID), count, likeCountTTL).Err()
}

// IncrLikeCount bumps the count and refreshes TTL.
func (c *RedisCache) IncrLikeCount(ctx context.Context, userID int64) error {
	key := keyForLikeCount(userID)
	if err := c.Client.Incr(ctx, key).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, likeCountTTL).Err()
}

// DecrLikeCount lowers the count and refreshes TTL.
func (c *RedisCache) DecrLikeCount(ctx context.Context, userID int64) error {
	key := keyForLikeCount(userID)
	if err := c.Client.Decr(ctx, key).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, likeCountTTL).Err()
}
