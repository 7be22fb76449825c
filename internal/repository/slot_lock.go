package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const slotLockPrefix = "booking:slot:"

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSlotGuard serializes booking attempts for the same slot across
// processes. The lock expires after ttl if the holder never releases it.
type RedisSlotGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotGuard(client *redis.Client, ttl time.Duration) *RedisSlotGuard {
	return &RedisSlotGuard{client: client, ttl: ttl}
}

func slotLockKey(start time.Time) string {
	return slotLockPrefix + start.UTC().Format("2006-01-02T15")
}

// Acquire returns ErrSlotLocked when another request holds the slot.
func (g *RedisSlotGuard) Acquire(ctx context.Context, start time.Time) (func(), error) {
	key := slotLockKey(start)
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire slot lock: %w", err)
	}
	if !ok {
		return nil, ErrSlotLocked
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, g.client, []string{key}, token).Err()
	}, nil
}
