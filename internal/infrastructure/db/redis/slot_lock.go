package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

const defaultLockTTL = 10 * time.Second

// SlotLocker guards bookings of one slot with a Redis key.
// Key format: lock:slot:<doctor>:<clinic>:<unix instant>
type SlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotLocker creates a SlotLocker whose locks expire after ttl even if
// the holder dies.
func NewSlotLocker(client *redis.Client, ttl time.Duration) *SlotLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SlotLocker{client: client, ttl: ttl}
}

// WithSlotLock runs fn while holding the slot's lock, or fails with
// domain.ErrSlotBusy when someone else holds it.
func (l *SlotLocker) WithSlotLock(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error {
	key := l.key(slot)
	owner := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return domain.ErrSlotBusy
	}

	defer func() {
		// Released on a fresh context so a cancelled request still unlocks.
		releaseCtx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		_ = l.release(releaseCtx, key, owner)
	}()

	lockedCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockedCtx)
}

// unlockScript deletes the key only if it still belongs to the caller.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *SlotLocker) release(ctx context.Context, key, owner string) error {
	if err := unlockScript.Run(ctx, l.client, []string{key}, owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}

func (l *SlotLocker) key(slot domain.Slot) string {
	return "lock:slot:" + slot.Key()
}
