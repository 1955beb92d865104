package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

const (
	DialectMySQL  = "mysql"
	DialectSQLite = "sqlite"
)

// table definitions; %[1]s is the dialect's id column, %[2]s its table options
var tables = []struct {
	name  string
	query string
}{
	{
		name: "users",
		query: `
		CREATE TABLE IF NOT EXISTS users (
			%[1]s,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(100) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL
		)%[2]s;
	`,
	},
	{
		name: "dog_breeds",
		query: `
		CREATE TABLE IF NOT EXISTS dog_breeds (
			%[1]s,
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
		)%[2]s;
	`,
	},
	{
		name: "mix_dogs",
		query: `
		CREATE TABLE IF NOT EXISTS mix_dogs (
			%[1]s,
			name_en VARCHAR(255),
			name_ko VARCHAR(255),
			breed1 VARCHAR(255),
			breed2 VARCHAR(255)
		)%[2]s;
	`,
	},
}

func dialectParts(dialect string) (idColumn, tableOptions string, err error) {
	switch dialect {
	case DialectMySQL:
		return "id BIGINT AUTO_INCREMENT PRIMARY KEY", " DEFAULT CHARSET=utf8mb4", nil
	case DialectSQLite:
		return "id INTEGER PRIMARY KEY AUTOINCREMENT", "", nil
	default:
		return "", "", fmt.Errorf("unsupported database dialect: %s", dialect)
	}
}

// AutoMigrate creates the users, dog_breeds and mix_dogs tables if they do not exist.
// Each statement is retried up to retries times, one second apart.
func AutoMigrate(dialect string, retries int, db *sql.DB) error {
	idColumn, tableOptions, err := dialectParts(dialect)
	if err != nil {
		return err
	}

	for _, table := range tables {
		query := fmt.Sprintf(table.query, idColumn, tableOptions)
		_, err := db.Exec(query)
		for i := 0; err != nil && i < retries; i++ {
			time.Sleep(1 * time.Second)
			_, err = db.Exec(query)
		}
		if err != nil {
			return fmt.Errorf("failed to migrate %s table: %w", table.name, err)
		}
	}
	return nil
}
