package trap

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/internal/infrastructure/cache"
)

// RedisStore keeps the latest-hit slot in Redis so it survives
// restarts and is shared across replicas. Still last-write-wins.
type RedisStore struct {
	cache *cache.RedisCache
}

func NewRedisStore(c *cache.RedisCache) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Record(ctx context.Context, hit models.TrapHit) error {
	return s.cache.SetJSON(ctx, cache.KeyTrapLatest, hit, 0)
}

func (s *RedisStore) Latest(ctx context.Context) (*models.TrapHit, error) {
	var hit models.TrapHit
	err := s.cache.GetJSON(ctx, cache.KeyTrapLatest, &hit)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hit, nil
}
