package slot

import (
	"context"
	"errors"
	"time"

	"queencare-storefront/internal/domain"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "queencare:slot:"

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores each slot under its own key. A zero ttl keeps slots forever.
func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func redisKey(owner, name string) string {
	return redisKeyPrefix + owner + ":" + name
}

func (r *redisRepo) Get(ctx context.Context, owner, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(owner, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (r *redisRepo) Put(ctx context.Context, owner, name string, data []byte) error {
	return r.client.Set(ctx, redisKey(owner, name), data, r.ttl).Err()
}

func (r *redisRepo) Delete(ctx context.Context, owner, name string) error {
	return r.client.Del(ctx, redisKey(owner, name)).Err()
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
