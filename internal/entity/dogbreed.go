package entity

// DogBreed is a catalog entry with bilingual (English/Korean) metadata.
type DogBreed struct {
	ID            int64  `json:"id" yaml:"-"`
	NameEn        string `json:"nameEn" yaml:"nameEn"`
	NameKo        string `json:"nameKo" yaml:"nameKo"`
	OriginEn      string `json:"originEn" yaml:"originEn"`
	OriginKo      string `json:"originKo" yaml:"originKo"`
	SizeEn        string `json:"sizeEn" yaml:"sizeEn"`
	SizeKo        string `json:"sizeKo" yaml:"sizeKo"`
	LifespanEn    string `json:"lifespanEn" yaml:"lifespanEn"`
	LifespanKo    string `json:"lifespanKo" yaml:"lifespanKo"`
	Weight        string `json:"weight" yaml:"weight"`
	DescriptionEn string `json:"descriptionEn" yaml:"descriptionEn"`
	DescriptionKo string `json:"descriptionKo" yaml:"descriptionKo"`
}

/*
Mysql Schema:
CREATE TABLE dog_breeds (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name_en VARCHAR(255) NOT NULL,
	name_ko VARCHAR(255) NOT NULL,
	origin_en VARCHAR(255),
	origin_ko VARCHAR(255),
	size_en VARCHAR(255),
	size_ko VARCHAR(255),
	lifespan_en VARCHAR(255),
	lifespan_ko VARCHAR(255),
	weight VARCHAR(255),
	description_en TEXT,
	description_ko TEXT
) DEFAULT CHARSET=utf8mb4;
*/
