package repository

import (
	"context"
	"database/sql"

	"deepbark-service/internal/entity"
)

type MixDogRepository struct {
	db *sql.DB
}

func NewMixDogRepository(db *sql.DB) *MixDogRepository {
	return &MixDogRepository{db}
}

// FindByBreeds returns the mix for the pair in either order, or ErrNotFound.
func (r *MixDogRepository) FindByBreeds(ctx context.Context, breed1, breed2 string) (*entity.MixDog, error) {
	query := `SELECT id, name_en, name_ko, breed1, breed2 FROM mix_dogs
		WHERE (breed1 = ? AND breed2 = ?) OR (breed1 = ? AND breed2 = ?)
		ORDER BY id LIMIT 1`

	var (
		mix            entity.MixDog
		nameEn, nameKo sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, breed1, breed2, breed2, breed1).
		Scan(&mix.ID, &nameEn, &nameKo, &mix.Breed1, &mix.Breed2)
	if err != nil {
		return nil, translateError(err)
	}

	mix.NameEn = nameEn.String
	mix.NameKo = nameKo.String
	return &mix, nil
}
