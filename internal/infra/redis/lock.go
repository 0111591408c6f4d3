// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"fmt"
	"time"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/ports/adapter"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var _ adapter.Locker = (*RedisLocker)(nil)

const (
	lockAttempts = 5
	lockBackoff  = 50 * time.Millisecond
)

type RedisLocker struct {
	cli *redis.Client
}

func NewLocker(c *Client) *RedisLocker {
	return &RedisLocker{cli: c.cli}
}

// TryLock retries SETNX a few times. A key held by someone else yields
// domain.ErrLockNotAcquired; when every attempt failed at Redis the last
// error is returned instead.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	err := acquire(ctx, lockAttempts, lockBackoff, func(ctx context.Context) (bool, error) {
		return l.cli.SetNX(ctx, key, token, ttl).Result()
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func acquire(ctx context.Context, attempts int, backoff time.Duration, setNX func(context.Context) (bool, error)) error {
	var lastErr error
	held := false
	for i := 0; i < attempts; i++ {
		ok, err := setNX(ctx)
		switch {
		case err != nil:
			lastErr = err
		case ok:
			return nil
		default:
			held = true
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	if lastErr != nil && !held {
		return fmt.Errorf("redis lock: %w", lastErr)
	}
	return domain.ErrLockNotAcquired
}

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

// Unlock releases key only when it still holds token.
func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	_, err := luaUnlock.Run(ctx, l.cli, []string{key}, token).Result()
	return err
}
