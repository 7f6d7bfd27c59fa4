package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	DB "Backend-FacilityWatch-001/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database
// package; nil when Redis is not configured (callers skip the cache then).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// CacheJSON marshals v and stores it under key with a TTL.
// No-op when Redis is not available (development mode).
func CacheJSON(key string, v any, ttl time.Duration) error {
	client := ensureClient()
	if client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %v", err)
	}
	return client.Set(Ctx, key, data, ttl).Err()
}

// GetCachedJSON unmarshals the cached value under key into out. Returns
// false on a miss or when Redis is not available.
func GetCachedJSON(key string, out any) (bool, error) {
	client := ensureClient()
	if client == nil {
		return false, nil
	}
	data, err := client.Get(Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %v", err)
	}
	return true, nil
}

// InvalidateCache removes a cached key; no-op without Redis.
func InvalidateCache(key string) error {
	client := ensureClient()
	if client == nil {
		return nil
	}
	return client.Del(Ctx, key).Err()
}
