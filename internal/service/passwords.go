package service

import (
	"context"
	"errors"
	"fmt"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// passwords hashes, checks and replaces user passwords.
type passwords struct {
	userRepo *repository.UserRepository
	sessions *SessionStore
	cost     int
}

func (p passwords) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", newError(ErrValidation, "", "password must be at most 72 bytes")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

func (p passwords) matches(user *entity.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// set stores a new hash for the user and revokes the active session so old tokens stop working.
func (p passwords) set(ctx context.Context, user *entity.User, password string) error {
	hash, err := p.hash(password)
	if err != nil {
		return err
	}
	if err := p.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		logger.Error().Err(err).Msgf("Error updating password for user %d", user.ID)
		return err
	}
	if err := p.sessions.Revoke(ctx, user.Email); err != nil {
		logger.Error().Err(err).Msgf("Error revoking session for user %d", user.ID)
	}
	return nil
}
