package inflight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL       = 30 * time.Second
	defaultKeyPrefix = "icp:inflight:"
)

// releaseScript deletes the lock only if it still holds our token, so a
// holder whose TTL expired cannot drop someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard shares in-flight state across server instances through Redis.
// Locks expire after ttl so a crashed holder cannot block a session forever.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger logger.Logger
}

func NewRedisGuard(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisGuard{
		client: client,
		ttl:    ttl,
		prefix: defaultKeyPrefix,
		logger: log.With(map[string]interface{}{"component": "inflight"}),
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := g.prefix + key
	token := uuid.New().String()

	ok, err := g.client.SetNX(ctx, redisKey, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire in-flight lock: %w", err)
	}
	if !ok {
		return nil, ErrInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be done; release on a fresh one.
			rctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, g.client, []string{redisKey}, token).Err(); err != nil {
				// The key still expires after ttl.
				g.logger.WithError(err).Warn("failed to release in-flight lock", map[string]interface{}{
					"key": redisKey,
					"ttl": g.ttl.String(),
				})
			}
		})
	}, nil
}

// Ping checks the Redis connection.
func (g *RedisGuard) Ping(ctx context.Context) error {
	if err := g.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}
