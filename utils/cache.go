// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"servio/config"

	"github.com/go-redis/redis/v8"
)

// LockClient is the Redis client backing provider locks.
var LockClient *redis.Client

// InitLockClient initializes the Redis client for provider locks (DB REDIS_LOCK_DB).
func InitLockClient() {
	LockClient = NewRedisClient(config.AppConfig.RedisLockDB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Lock): %v", err)
	}
}

// GetLockClient returns the lock client, connecting on first use.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}

// NewRedisClient builds a client for one logical database of the configured server.
func NewRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}
