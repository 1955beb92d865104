package repository

import (
	"context"
	"testing"

	"deepbark-service/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	created, err := repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "dog@example.com", Password: "hash"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "doglover", byID.Username)
	assert.Equal(t, "hash", byID.Password)

	byEmail, err := repo.GetUserByEmail(ctx, "dog@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetUserByEmail(ctx, "cat@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "dog@example.com", Password: "hash"})
	require.NoError(t, err)

	exists, err := repo.ExistsByEmail(ctx, "dog@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "doglover")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "dog@example.com", Password: "hash"})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "other@example.com", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = repo.CreateUser(ctx, &entity.User{Username: "other", Email: "dog@example.com", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "dog@example.com", Password: "old"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new"))

	reloaded, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", reloaded.Password)
}

func TestUserRepository_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.CreateUser(ctx, &entity.User{Username: "doglover", Email: "dog@example.com", Password: "hash"})
	require.NoError(t, err)

	deleted, err := repo.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
