package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deepbark-service/internal/api"
	"deepbark-service/internal/config"
	"deepbark-service/internal/metrics"
	"deepbark-service/internal/repository"
	"deepbark-service/internal/service"
	"deepbark-service/migrations"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"
)

func connectDB(cfg config.Database) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DataSourceName())
	if err != nil {
		return nil, err
	}

	retries := cfg.Retries
	if retries < 1 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		if err = db.Ping(); err == nil {
			return db, nil
		}
		log.Warn().Err(err).Msgf("Database not ready, retrying in 3s (%d/%d)", i+1, retries)
		time.Sleep(3 * time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
}

func seedCatalog(db *sql.DB, path string) error {
	seed, err := migrations.LoadCatalogSeed(path)
	if err != nil {
		return err
	}
	inserted, err := migrations.SeedCatalog(context.Background(), db, seed)
	if err != nil {
		return err
	}
	if inserted {
		log.Info().Int("breeds", len(seed.Breeds)).Int("mix_dogs", len(seed.MixDogs)).Msg("Catalog seeded")
	}
	return nil
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := migrations.AutoMigrate(cfg.Database.Driver, 3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	if cfg.Database.SeedFile != "" {
		if err := seedCatalog(db, cfg.Database.SeedFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// a nil *kafka.Writer must not end up inside the interface
	var messageWriter service.MessageWriter
	writer := config.NewKafkaWriter(cfg.Kafka)
	if writer != nil {
		messageWriter = writer
	} else {
		log.Warn().Msg("No kafka brokers configured, account events will be dropped")
	}
	events := service.NewEventPublisher(messageWriter)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	breedRepo := repository.NewBreedRepository(db)
	mixDogRepo := repository.NewMixDogRepository(db)

	// Services
	sessions := service.NewSessionStore(rdb)
	authService := service.NewAuthService(userRepo, sessions, events, service.AuthConfig{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		ResetTokenTTL: cfg.Auth.ResetTokenTTL,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	userService := service.NewUserService(userRepo, sessions, events, cfg.Auth.BcryptCost)
	breedService := service.NewBreedService(breedRepo, rdb, cfg.Catalog.CacheTTL)
	mixDogService := service.NewMixDogService(mixDogRepo)
	classifierService := service.NewClassifierService(cfg.Classifier.URL, nil)

	if err := breedService.PreWarmCache(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Breed cache not warmed")
	}

	e := defineServer(cfg.RateLimit)
	api.RegisterRoutes(e, api.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Users:    api.NewUserHandler(userService),
		Breeds:   api.NewBreedHandler(breedService),
		MixDogs:  api.NewMixDogHandler(mixDogService),
		Analysis: api.NewAnalysisHandler(classifierService),
	}, authService)

	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			log.Error().Err(err).Msg("Kafka writer close error")
		}
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Redis close error")
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("Database close error")
	}
}

func defineServer(limit config.RateLimit) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	rateLimiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(limit.Rate),
				Burst:     limit.Burst,
				ExpiresIn: limit.ExpiresIn,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/health"
		},
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogURI:      true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: []string{"*"}}))
	e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig))
	e.Use(metrics.Middleware())

	e.Validator = api.NewGenericEchoValidator()

	return e
}
