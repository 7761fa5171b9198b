// Package cache manages the redis backend used for server-side sessions and
// rate limiting. With no external redis configured an embedded miniredis
// instance is started, which keeps single-node deployments dependency-free.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"userhub/logger"
)

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	ctx        = context.Background()
	isEmbedded = true
)

// InitRedis connects to the redis server at redisAddr, or starts an embedded
// instance when redisAddr is empty.
func InitRedis(redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		isEmbedded = true
		logger.Info("Embedded redis started on", mr.Addr())
		return nil
	}

	client = redis.NewClient(&redis.Options{Addr: redisAddr})
	isEmbedded = false
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to redis at", redisAddr)
	return nil
}

// GetClient returns the redis client instance.
func GetClient() *redis.Client {
	return client
}

// IsEmbedded reports whether the embedded instance is in use.
func IsEmbedded() bool {
	return isEmbedded
}

// Close closes the connection and stops the embedded instance if running.
func Close() error {
	if client != nil {
		if err := client.Close(); err != nil {
			return err
		}
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return nil
}

// Get retrieves a string value. Returns redis.Nil when the key is absent.
func Get(key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Set stores a value with the given expiration.
func Set(key string, value any, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Incr atomically increments a counter key.
func Incr(key string) (int64, error) {
	return client.Incr(ctx, key).Result()
}

// Expire sets a TTL on an existing key.
func Expire(key string, ttl time.Duration) error {
	return client.Expire(ctx, key, ttl).Err()
}

// Delete removes a key.
func Delete(key string) error {
	return client.Del(ctx, key).Err()
}
