package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps the active login token per email and pending password-reset tokens in redis.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s", email)
}

func resetKey(token string) string {
	return fmt.Sprintf("password-reset:%s", token)
}

// Save stores token as the active session for email, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, email, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(email), token, ttl).Err()
}

// Get returns the active session token for email, or "" when there is none.
func (s *SessionStore) Get(ctx context.Context, email string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Revoke(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, sessionKey(email)).Err()
}

func (s *SessionStore) SaveResetToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetKey(token), userID, ttl).Err()
}

// TakeResetToken returns the user the token was issued for and deletes it, so a token works once.
// ok is false when the token is unknown or expired.
func (s *SessionStore) TakeResetToken(ctx context.Context, token string) (userID int64, ok bool, err error) {
	pipe := s.rdb.TxPipeline()
	get := pipe.Get(ctx, resetKey(token))
	pipe.Del(ctx, resetKey(token))
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	userID, err = strconv.ParseInt(get.Val(), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt reset token entry: %w", err)
	}
	return userID, true, nil
}
