package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lua script: atomic INCR + set expiry only on the first hit of a window.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisStore is the shared Store for multi-instance deployments.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrExpireScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, time.Time{}, err
	}
	ttl, err := s.rdb.PTTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return int(res), time.Now().Add(ttl), nil
}

var _ Store = (*MemoryStore)(nil)
var _ Store = (*RedisStore)(nil)
