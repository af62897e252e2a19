package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockNotAcquired means another request holds the key.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Locker serializes work on one provider's booking set across server instances.
type Locker interface {
	WithProviderLock(ctx context.Context, providerID string, fn func(ctx context.Context) error) error
}

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLocker returns a Locker keyed on lock:provider:<id>. ttl bounds both the key
// lifetime and the context handed to fn.
func NewRedisLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisLocker{client: client, ttl: ttl}
}

func ProviderLockKey(providerID string) string {
	return fmt.Sprintf("%s%s", ProviderLockPrefix, providerID)
}

func (l *redisLocker) WithProviderLock(ctx context.Context, providerID string, fn func(ctx context.Context) error) error {
	key := ProviderLockKey(providerID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire provider lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		if err := l.release(context.WithoutCancel(ctx), key, token); err != nil {
			GetLogger().Warn("provider lock release failed", zap.String("key", key), zap.Error(err))
		}
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release provider lock: %w", err)
	}
	return nil
}
