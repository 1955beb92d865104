package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CLASSIFIER_URL", "http://classifier:5000")
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DB_HOST", "db")
	t.Setenv("CATALOG_CACHE_TTL", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "account-topic", cfg.Kafka.Topic)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 15*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, 10, cfg.Database.Retries)
	assert.Equal(t, 30*time.Second, cfg.Catalog.CacheTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 8000
database:
  driver: sqlite
  dsn: file:deepbark.db
auth:
  jwtSecret: from-file
  tokenTTL: 2h
  bcryptCost: 4
classifier:
  url: http://localhost:5000
rateLimit:
  rate: 1.5
  burst: 3
`), 0o644))

	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:deepbark.db", cfg.Database.DataSourceName())
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 1.5, cfg.RateLimit.Rate)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("bad cache ttl", func(t *testing.T) {
		t.Setenv("CATALOG_CACHE_TTL", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid CATALOG_CACHE_TTL")
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.ErrorContains(t, err, "invalid PORT")
	})

	t.Run("missing secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("CLASSIFIER_URL", "")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
		assert.Contains(t, err.Error(), "CLASSIFIER_URL")
	})
}

func TestValidate(t *testing.T) {
	base := func() Config {
		c := defaults()
		c.Auth.JWTSecret = "secret"
		c.Classifier.URL = "http://localhost:5000"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults with secrets", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, wantErr: "unsupported database driver"},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.Database.Driver = "sqlite" }, wantErr: "sqlite requires database.dsn"},
		{name: "bcrypt cost too high", mutate: func(c *Config) { c.Auth.BcryptCost = 99 }, wantErr: "bcryptCost"},
		{name: "non-positive port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDataSourceName_MySQL(t *testing.T) {
	d := Database{Host: "db", Port: "3306", User: "root", Password: "pw", Name: "deepbark"}
	dsn := d.DataSourceName()

	assert.Contains(t, dsn, "root:pw@tcp(db:3306)/deepbark")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestNewKafkaWriter(t *testing.T) {
	assert.Nil(t, NewKafkaWriter(Kafka{Topic: "account-topic"}))

	w := NewKafkaWriter(Kafka{Brokers: []string{"localhost:9092"}, Topic: "account-topic"})
	require.NotNil(t, w)
	assert.Equal(t, "account-topic", w.Topic)
}
