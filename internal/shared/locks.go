// Package shared holds cross-cutting infrastructure helpers.
package shared

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld indicates another caller holds the exclusive lock.
var ErrLockHeld = errors.New("shared: lock already held")

// VoucherLockKey builds the redis key guarding one voucher's
// confirmation critical section.
func VoucherLockKey(voucherID uuid.UUID) string {
	return fmt.Sprintf("voucher:%s:confirm", voucherID)
}

// releaseScript deletes the lock only when the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker provides exclusive advisory locks backed by redis SET NX. The
// TTL bounds how long a crashed confirmation can hold its voucher.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{client: client, ttl: ttl}
}

// Acquire takes the lock and returns a release function. It fails with
// ErrLockHeld when the key is already taken.
func (l *Locker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("shared: acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}
	release := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}
