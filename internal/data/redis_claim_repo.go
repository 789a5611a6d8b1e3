package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jobpilot/jobreview/internal/core"
)

const defaultClaimPrefix = "jobreview:decision:"

// releaseScript deletes the claim only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClaimRepo implements core.DecisionClaimer with Redis SET NX so the in-flight guard
// holds across server replicas.
type RedisClaimRepo struct {
	client redis.UniversalClient
	prefix string
}

var _ core.DecisionClaimer = (*RedisClaimRepo)(nil)

// NewRedisClaimRepo creates a claim repository using the default key prefix.
func NewRedisClaimRepo(client redis.UniversalClient) *RedisClaimRepo {
	return &RedisClaimRepo{client: client, prefix: defaultClaimPrefix}
}

// Claim atomically takes the claim on key. It reports false when another caller holds it.
func (r *RedisClaimRepo) Claim(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyRequired
	}
	if ttl <= 0 {
		ttl = time.Second
	}

	// SETNX followed by EXPIRE is not atomic; SET with NX and a TTL is.
	token := uuid.NewString()
	status, err := r.client.SetArgs(ctx, r.prefix+key, token, redis.SetArgs{Mode: "NX", TTL: ttl}).Result()
	if err != nil {
		// An unmet NX condition comes back as a nil reply.
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis SET NX: %w", err)
	}
	if status != "OK" {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the claim on key if token still holds it. Releasing an unheld or
// re-taken claim is not an error.
func (r *RedisClaimRepo) Release(ctx context.Context, key, token string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := releaseScript.Run(ctx, r.client, []string{r.prefix + key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis release: %w", err)
	}
	return nil
}

// Health checks the health of the Redis connection.
func (r *RedisClaimRepo) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
