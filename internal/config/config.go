package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Database struct {
	Driver   string `yaml:"driver"` // mysql or sqlite
	DSN      string `yaml:"dsn"`    // used as-is when set
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Retries  int    `yaml:"retries"`
	SeedFile string `yaml:"seedFile"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Auth struct {
	JWTSecret     string        `yaml:"jwtSecret"`
	TokenTTL      time.Duration `yaml:"tokenTTL"`
	ResetTokenTTL time.Duration `yaml:"resetTokenTTL"`
	BcryptCost    int           `yaml:"bcryptCost"`
}

type Classifier struct {
	URL string `yaml:"url"`
}

type Catalog struct {
	CacheTTL time.Duration `yaml:"cacheTTL"` // 0 disables the breed list cache
}

type RateLimit struct {
	Rate      float64       `yaml:"rate"`
	Burst     int           `yaml:"burst"`
	ExpiresIn time.Duration `yaml:"expiresIn"`
}

type Config struct {
	Port       int        `yaml:"port"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	Kafka      Kafka      `yaml:"kafka"`
	Auth       Auth       `yaml:"auth"`
	Classifier Classifier `yaml:"classifier"`
	Catalog    Catalog    `yaml:"catalog"`
	RateLimit  RateLimit  `yaml:"rateLimit"`
}

func defaults() Config {
	return Config{
		Port: 8080,
		Database: Database{
			Driver:  "mysql",
			Host:    "127.0.0.1",
			Port:    "3306",
			User:    "root",
			Name:    "deepbark",
			Retries: 10,
		},
		Redis: Redis{Addr: "localhost:6379"},
		Kafka: Kafka{Topic: "account-topic"},
		Auth: Auth{
			TokenTTL:      24 * time.Hour,
			ResetTokenTTL: 15 * time.Minute,
			BcryptCost:    bcrypt.DefaultCost,
		},
		Catalog:   Catalog{CacheTTL: 10 * time.Minute},
		RateLimit: RateLimit{Rate: 10, Burst: 20, ExpiresIn: 3 * time.Minute},
	}
}

// Load reads the YAML file at path (skipped when path is empty), then applies environment overrides.
func Load(path string) (*Config, error) {
	config := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func applyEnv(config *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		config.Port = p
	}

	setString(&config.Database.Driver, "DB_DRIVER")
	setString(&config.Database.DSN, "DB_DSN")
	setString(&config.Database.Host, "DB_HOST")
	setString(&config.Database.Port, "DB_PORT")
	setString(&config.Database.User, "DB_USER")
	setString(&config.Database.Password, "DB_PASS")
	setString(&config.Database.Name, "DB_NAME")
	setString(&config.Database.SeedFile, "SEED_FILE")
	setString(&config.Redis.Addr, "REDIS_ADDR")
	setString(&config.Redis.Password, "REDIS_PASSWORD")
	setString(&config.Kafka.Topic, "KAFKA_TOPIC")
	setString(&config.Auth.JWTSecret, "JWT_SECRET")
	setString(&config.Classifier.URL, "CLASSIFIER_URL")

	if ttl := os.Getenv("CATALOG_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid CATALOG_CACHE_TTL %q: %w", ttl, err)
		}
		config.Catalog.CacheTTL = d
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		config.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return nil
}

func setString(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}

// Validate ensures the settings the service cannot start without are present.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 {
		errs = append(errs, fmt.Errorf("port must be positive, got %d", c.Port))
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver: %s", c.Database.Driver))
	}
	if c.Database.Driver == "sqlite" && c.Database.DSN == "" {
		errs = append(errs, errors.New("sqlite requires database.dsn"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwtSecret (JWT_SECRET) is required"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("auth.bcryptCost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Classifier.URL == "" {
		errs = append(errs, errors.New("classifier.url (CLASSIFIER_URL) is required"))
	}

	return errors.Join(errs...)
}

// DataSourceName returns the DSN for the configured driver.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}

	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = d.Host + ":" + d.Port
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}
