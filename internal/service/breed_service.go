package service

import (
	"context"
	"strings"
	"time"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"

	"github.com/go-redis/redis/v8"
)

const healthOK = "OK"

// BreedService serves the read-only breed catalog.
type BreedService struct {
	breedRepo *repository.BreedRepository
	cache     *breedCache
}

// NewBreedService creates a new instance of BreedService. A nil rdb or zero cacheTTL disables caching.
func NewBreedService(breedRepo *repository.BreedRepository, rdb *redis.Client, cacheTTL time.Duration) *BreedService {
	s := &BreedService{breedRepo: breedRepo}
	if rdb != nil && cacheTTL > 0 {
		s.cache = &breedCache{rdb: rdb, ttl: cacheTTL}
	}
	return s
}

func (s *BreedService) ListBreeds(ctx context.Context) ([]*entity.DogBreed, error) {
	// Read from cache
	if breeds, ok := s.cache.get(ctx); ok {
		return breeds, nil
	}

	breeds, err := s.breedRepo.GetBreeds(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing breeds")
		return nil, err
	}

	// Write to cache
	s.cache.set(ctx, breeds)
	return breeds, nil
}

// PreWarmCache loads the breed list into the cache.
func (s *BreedService) PreWarmCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	breeds, err := s.breedRepo.GetBreeds(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting breeds")
		return err
	}
	s.cache.set(ctx, breeds)
	logger.Info().Int("breeds", len(breeds)).Msg("Breed cache warmed")
	return nil
}

// SearchBreeds returns breeds whose English or Korean name contains query, ignoring case.
func (s *BreedService) SearchBreeds(ctx context.Context, query string) ([]*entity.DogBreed, error) {
	breeds, err := s.breedRepo.SearchBreedsByName(ctx, strings.TrimSpace(query))
	if err != nil {
		logger.Error().Err(err).Msgf("Error searching breeds for %q", query)
		return nil, err
	}
	return breeds, nil
}

func (s *BreedService) ListBreedsBySize(ctx context.Context, size string) ([]*entity.DogBreed, error) {
	if err := requireFields([2]string{"size", size}); err != nil {
		return nil, err
	}
	breeds, err := s.breedRepo.GetBreedsBySize(ctx, strings.TrimSpace(size))
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing breeds of size %q", size)
		return nil, err
	}
	return breeds, nil
}

func (s *BreedService) HealthCheck() string {
	return healthOK
}
