// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"huddle/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
	// TokenCacheClient is the dedicated client for one-time sync tokens.
	TokenCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client, nil in memory mode
// where no Redis is available.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		if config.AppConfig.MemoryMode {
			return nil
		}
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching (using DB from AppConfig for auth cache).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization
// caching, nil in memory mode. Callers fall back to store lookups.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		if config.AppConfig.MemoryMode {
			return nil
		}
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitTokenCache initializes the Redis client for sync token storage
// (using DB from AppConfig for tokens, kept apart so flushing the
// general cache never invalidates outstanding tokens).
func InitTokenCache() {
	TokenCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTokenDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := TokenCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Token Cache): %v", err)
	}
}

// GetTokenCacheClient returns the Redis client for sync token storage,
// nil in memory mode where tokens live in the in-process store.
func GetTokenCacheClient() *redis.Client {
	if TokenCacheClient == nil {
		if config.AppConfig.MemoryMode {
			return nil
		}
		InitTokenCache()
	}
	return TokenCacheClient
}

// InitRedis eagerly connects every Redis client so configuration
// problems surface at boot rather than on the first request.
func InitRedis() {
	InitCache()
	InitAuthCache()
	InitTokenCache()
}
