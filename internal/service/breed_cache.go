package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"deepbark-service/internal/entity"

	"github.com/go-redis/redis/v8"
)

const breedListKey = "breeds:all"

// breedCache holds the full breed list as JSON. Errors are logged and reported as misses.
type breedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func (c *breedCache) get(ctx context.Context) ([]*entity.DogBreed, bool) {
	if c == nil {
		return nil, false
	}

	cached, err := c.rdb.Get(ctx, breedListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error getting breeds from cache")
		}
		return nil, false
	}

	breeds := make([]*entity.DogBreed, 0)
	if err := json.Unmarshal(cached, &breeds); err != nil {
		logger.Error().Err(err).Msg("Error unmarshalling cached breeds")
		return nil, false
	}
	return breeds, true
}

func (c *breedCache) set(ctx context.Context, breeds []*entity.DogBreed) {
	if c == nil {
		return
	}

	data, err := json.Marshal(breeds)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling breeds for cache")
		return
	}
	if err := c.rdb.Set(ctx, breedListKey, data, c.ttl).Err(); err != nil {
		logger.Error().Err(err).Msg("Error setting breeds in cache")
	}
}
