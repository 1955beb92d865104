package repository

import (
	"context"
	"database/sql"

	"deepbark-service/internal/entity"
)

const breedColumns = `id, name_en, name_ko, origin_en, origin_ko, size_en, size_ko, lifespan_en, lifespan_ko, weight, description_en, description_ko`

type BreedRepository struct {
	db *sql.DB
}

func NewBreedRepository(db *sql.DB) *BreedRepository {
	return &BreedRepository{db}
}

func (r *BreedRepository) GetBreeds(ctx context.Context) ([]*entity.DogBreed, error) {
	query := `SELECT ` + breedColumns + ` FROM dog_breeds ORDER BY id`
	return r.queryBreeds(ctx, query)
}

// SearchBreedsByName matches query as a case-insensitive substring of the English or Korean name.
func (r *BreedRepository) SearchBreedsByName(ctx context.Context, query string) ([]*entity.DogBreed, error) {
	pattern := containsPattern(query)
	sqlQuery := `SELECT ` + breedColumns + ` FROM dog_breeds
		WHERE LOWER(name_en) LIKE ? ESCAPE '!' OR LOWER(name_ko) LIKE ? ESCAPE '!'
		ORDER BY id`
	return r.queryBreeds(ctx, sqlQuery, pattern, pattern)
}

// GetBreedsBySize matches size exactly against the English or Korean size label.
func (r *BreedRepository) GetBreedsBySize(ctx context.Context, size string) ([]*entity.DogBreed, error) {
	query := `SELECT ` + breedColumns + ` FROM dog_breeds WHERE size_en = ? OR size_ko = ? ORDER BY id`
	return r.queryBreeds(ctx, query, size, size)
}

func (r *BreedRepository) queryBreeds(ctx context.Context, query string, args ...any) ([]*entity.DogBreed, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breeds := make([]*entity.DogBreed, 0)
	for rows.Next() {
		breed, err := scanBreed(rows)
		if err != nil {
			return nil, err
		}
		breeds = append(breeds, breed)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return breeds, nil
}

func scanBreed(rows *sql.Rows) (*entity.DogBreed, error) {
	var (
		breed    entity.DogBreed
		optional [9]sql.NullString
	)
	err := rows.Scan(&breed.ID, &breed.NameEn, &breed.NameKo,
		&optional[0], &optional[1], &optional[2], &optional[3], &optional[4],
		&optional[5], &optional[6], &optional[7], &optional[8])
	if err != nil {
		return nil, err
	}

	breed.OriginEn = optional[0].String
	breed.OriginKo = optional[1].String
	breed.SizeEn = optional[2].String
	breed.SizeKo = optional[3].String
	breed.LifespanEn = optional[4].String
	breed.LifespanKo = optional[5].String
	breed.Weight = optional[6].String
	breed.DescriptionEn = optional[7].String
	breed.DescriptionKo = optional[8].String
	return &breed, nil
}
