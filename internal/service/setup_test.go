package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"
	"deepbark-service/migrations"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// recordingWriter captures account events instead of sending them to kafka.
type recordingWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) events(t *testing.T) []entity.AccountEvent {
	t.Helper()
	w.mu.Lock()
	defer w.mu.Unlock()

	events := make([]entity.AccountEvent, 0, len(w.msgs))
	for _, msg := range w.msgs {
		var event entity.AccountEvent
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		events = append(events, event)
	}
	return events
}

func (w *recordingWriter) last(t *testing.T) entity.AccountEvent {
	t.Helper()
	events := w.events(t)
	require.NotEmpty(t, events)
	return events[len(events)-1]
}

type testEnv struct {
	db       *sql.DB
	redis    *miniredis.Miniredis
	writer   *recordingWriter
	sessions *SessionStore
	auth     *AuthService
	users    *UserService
	breeds   *BreedService
	mixDogs  *MixDogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.AutoMigrate(migrations.DialectSQLite, 0, db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	writer := &recordingWriter{}
	events := NewEventPublisher(writer)
	sessions := NewSessionStore(rdb)
	userRepo := repository.NewUserRepository(db)

	return &testEnv{
		db:       db,
		redis:    mr,
		writer:   writer,
		sessions: sessions,
		auth: NewAuthService(userRepo, sessions, events, AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			ResetTokenTTL: 15 * time.Minute,
			BcryptCost:    bcrypt.MinCost,
		}),
		users:   NewUserService(userRepo, sessions, events, bcrypt.MinCost),
		breeds:  NewBreedService(repository.NewBreedRepository(db), rdb, time.Minute),
		mixDogs: NewMixDogService(repository.NewMixDogRepository(db)),
	}
}

func (env *testEnv) register(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	user, err := env.auth.Register(context.Background(), username, email, password)
	require.NoError(t, err)
	return user
}

func (env *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	_, err := migrations.SeedCatalog(context.Background(), env.db, &migrations.CatalogSeed{
		Breeds: []entity.DogBreed{
			{NameEn: "Beagle", NameKo: "비글", SizeEn: "Medium", SizeKo: "중형"},
			{NameEn: "Poodle", NameKo: "푸들", SizeEn: "Medium", SizeKo: "중형"},
			{NameEn: "Maltese", NameKo: "말티즈", SizeEn: "Small", SizeKo: "소형"},
		},
		MixDogs: []entity.MixDog{
			{NameEn: "Maltipoo", NameKo: "말티푸", Breed1: "Maltese", Breed2: "Poodle"},
		},
	})
	require.NoError(t, err)
}
