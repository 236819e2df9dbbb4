package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// AcquireLock takes a Redis SetNX advisory lock with a TTL, used for
// distributed locks: single-leader election for C8's tick loop and
// per-match ownership for C4's live workers.
func (g *Gateway) AcquireLock(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	return g.redis.SetNX(ctx, key, owner, ttl).Result()
}

// RenewLock extends an already-held lock's TTL. Callers must have confirmed
// ownership (the value stored under key) before renewing. A key that has
// since expired or never existed is reported as "not held", not an error
// -- callers contesting leadership should treat it as having lost the race
// rather than fail their whole operation.
func (g *Gateway) RenewLock(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	current, err := g.redis.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if current != owner {
		return false, nil
	}
	return g.redis.Expire(ctx, key, ttl).Result()
}

// ReleaseLock drops the lock only if still owned by owner.
func (g *Gateway) ReleaseLock(ctx context.Context, key, owner string) error {
	current, err := g.redis.Get(ctx, key).Result()
	if err != nil {
		return nil // already gone
	}
	if current != owner {
		return nil // lost ownership already, nothing to do
	}
	return g.redis.Del(ctx, key).Err()
}
