package service

import (
	"context"
	"testing"

	"deepbark-service/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Availability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	available, err := env.users.CheckUsernameAvailable(ctx, "doglover")
	require.NoError(t, err)
	assert.True(t, available)

	env.register(t, "doglover", "dog@example.com", "woof1234")

	available, err = env.users.CheckUsernameAvailable(ctx, "doglover")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = env.users.CheckEmailAvailable(ctx, "dog@example.com")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = env.users.CheckEmailAvailable(ctx, "")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestUserService_GetUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "doglover", "dog@example.com", "woof1234")

	got, err := env.users.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Summary(), got.Summary())

	_, err = env.users.GetUser(context.Background(), user.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "doglover", "dog@example.com", "woof1234")
	_, err := env.auth.Login(ctx, "dog@example.com", "woof1234")
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteUser(ctx, user.ID))
	assert.False(t, env.redis.Exists("session:dog@example.com"))

	event := env.writer.last(t)
	assert.Equal(t, entity.EventUserDeleted, event.Type)
	assert.Equal(t, user.ID, event.UserID)

	// deleting again succeeds without publishing
	published := len(env.writer.events(t))
	require.NoError(t, env.users.DeleteUser(ctx, user.ID))
	assert.Len(t, env.writer.events(t), published)

	// the email can be registered again
	env.register(t, "doglover", "dog@example.com", "woof1234")
}

func TestUserService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.register(t, "doglover", "dog@example.com", "woof1234")
	login, err := env.auth.Login(ctx, "dog@example.com", "woof1234")
	require.NoError(t, err)

	tests := []struct {
		name            string
		userID          int64
		current, newPwd string
		wantKind        error
	}{
		{name: "blank current", userID: user.ID, current: "", newPwd: "x", wantKind: ErrValidation},
		{name: "blank new", userID: user.ID, current: "woof1234", newPwd: "  ", wantKind: ErrValidation},
		{name: "missing user id", userID: 0, current: "woof1234", newPwd: "x", wantKind: ErrValidation},
		{name: "unknown user", userID: user.ID + 100, current: "woof1234", newPwd: "x", wantKind: ErrNotFound},
		{name: "wrong current", userID: user.ID, current: "meow", newPwd: "x", wantKind: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.users.ChangePassword(ctx, tt.userID, tt.current, tt.newPwd)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}

	require.NoError(t, env.users.ChangePassword(ctx, user.ID, "woof1234", "bark5678"))
	assert.Equal(t, entity.EventPasswordChanged, env.writer.last(t).Type)

	valid, err := env.auth.ValidateSession(ctx, "dog@example.com", login.Token)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = env.auth.Login(ctx, "dog@example.com", "woof1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "dog@example.com", "bark5678")
	assert.NoError(t, err)
}

func TestEventPublisher_NilWriter(t *testing.T) {
	p := NewEventPublisher(nil)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), entity.AccountEvent{Type: entity.EventUserRegistered, UserID: 1}))
}

func TestEventPublisher_Key(t *testing.T) {
	w := &recordingWriter{}
	p := NewEventPublisher(w)

	require.NoError(t, p.Publish(context.Background(), entity.AccountEvent{Type: entity.EventUserDeleted, UserID: 7}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user-deleted-7", string(w.msgs[0].Key))
}
