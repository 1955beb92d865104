package entity

// MixDog names the cross of two breeds. The (Breed1, Breed2) pair is unordered.
type MixDog struct {
	ID     int64  `json:"id" yaml:"-"`
	NameEn string `json:"nameEn" yaml:"nameEn"`
	NameKo string `json:"nameKo" yaml:"nameKo"`
	Breed1 string `json:"breed1" yaml:"breed1"`
	Breed2 string `json:"breed2" yaml:"breed2"`
}

/*
Mysql Schema:
CREATE TABLE mix_dogs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name_en VARCHAR(255),
	name_ko VARCHAR(255),
	breed1 VARCHAR(255),
	breed2 VARCHAR(255)
) DEFAULT CHARSET=utf8mb4;

CREATE INDEX mix_dogs_breeds_idx ON mix_dogs(breed1, breed2);
*/
