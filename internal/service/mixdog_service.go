package service

import (
	"context"
	"errors"
	"strings"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"
)

type MixDogService struct {
	mixDogRepo *repository.MixDogRepository
}

func NewMixDogService(mixDogRepo *repository.MixDogRepository) *MixDogService {
	return &MixDogService{mixDogRepo: mixDogRepo}
}

// FindMix looks up the mix for an unordered pair of breeds.
func (s *MixDogService) FindMix(ctx context.Context, breed1, breed2 string) (*entity.MixDog, error) {
	if err := requireFields([2]string{"breed1", breed1}, [2]string{"breed2", breed2}); err != nil {
		return nil, err
	}

	mix, err := s.mixDogRepo.FindByBreeds(ctx, strings.TrimSpace(breed1), strings.TrimSpace(breed2))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "", "no mix found for "+breed1+" and "+breed2)
		}
		logger.Error().Err(err).Msgf("Error finding mix for %s and %s", breed1, breed2)
		return nil, err
	}
	return mix, nil
}
