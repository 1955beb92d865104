package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"deepbark-service/internal/entity"

	"gopkg.in/yaml.v3"
)

// CatalogSeed is the layout of the seed file.
type CatalogSeed struct {
	Breeds  []entity.DogBreed `yaml:"breeds"`
	MixDogs []entity.MixDog   `yaml:"mixDogs"`
}

// LoadCatalogSeed reads a catalog seed from a YAML file.
func LoadCatalogSeed(path string) (*CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var seed CatalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for i, breed := range seed.Breeds {
		if breed.NameEn == "" || breed.NameKo == "" {
			return nil, fmt.Errorf("breed at index %d is missing nameEn or nameKo", i)
		}
	}
	return &seed, nil
}

// SeedCatalog inserts the seed into an empty catalog. It reports whether anything was inserted;
// a catalog that already holds breeds is left untouched.
func SeedCatalog(ctx context.Context, db *sql.DB, seed *CatalogSeed) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dog_breeds`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	breedQuery := `INSERT INTO dog_breeds (name_en, name_ko, origin_en, origin_ko, size_en, size_ko, lifespan_en, lifespan_ko, weight, description_en, description_ko)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, b := range seed.Breeds {
		_, err := tx.ExecContext(ctx, breedQuery, b.NameEn, b.NameKo, b.OriginEn, b.OriginKo, b.SizeEn, b.SizeKo,
			b.LifespanEn, b.LifespanKo, b.Weight, b.DescriptionEn, b.DescriptionKo)
		if err != nil {
			tx.Rollback()
			return false, fmt.Errorf("failed to seed breed %s: %w", b.NameEn, err)
		}
	}

	mixQuery := `INSERT INTO mix_dogs (name_en, name_ko, breed1, breed2) VALUES (?, ?, ?, ?)`
	for _, m := range seed.MixDogs {
		_, err := tx.ExecContext(ctx, mixQuery, m.NameEn, m.NameKo, m.Breed1, m.Breed2)
		if err != nil {
			tx.Rollback()
			return false, fmt.Errorf("failed to seed mix dog %s: %w", m.NameEn, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
