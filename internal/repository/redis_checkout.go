package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-checkout/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCheckoutRepository struct {
	client redis.UniversalClient
}

func NewRedisCheckoutRepository(client redis.UniversalClient) *RedisCheckoutRepository {
	return &RedisCheckoutRepository{
		client: client,
	}
}

func checkoutKey(sessionID string) string {
	return fmt.Sprintf("checkout:%s", sessionID)
}

func lockKey(sessionID string) string {
	return fmt.Sprintf("checkout:%s:lock", sessionID)
}

func (r *RedisCheckoutRepository) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, checkoutKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCheckoutNotFound
		}
		return nil, err
	}

	return data, nil
}

func (r *RedisCheckoutRepository) Save(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, checkoutKey(sessionID), data, ttl).Err()
}

func (r *RedisCheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, checkoutKey(sessionID)).Err()
}

// unlockScript deletes the lock key only if it still holds the caller's
// token. A lock that expired and was taken by another request stays.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (r *RedisCheckoutRepository) Lock(ctx context.Context, sessionID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, lockKey(sessionID), token, ttl).Result()
	if err != nil {
		return "", err
	}

	if !ok {
		return "", domain.ErrCheckoutLocked
	}

	return token, nil
}

func (r *RedisCheckoutRepository) Unlock(ctx context.Context, sessionID, token string) error {
	return unlockScript.Run(ctx, r.client, []string{lockKey(sessionID)}, token).Err()
}
