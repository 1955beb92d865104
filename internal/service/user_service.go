package service

import (
	"context"
	"errors"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"
)

// UserService provides account operations for existing users.
type UserService struct {
	userRepo  *repository.UserRepository
	sessions  *SessionStore
	events    *EventPublisher
	passwords passwords
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo *repository.UserRepository, sessions *SessionStore, events *EventPublisher, bcryptCost int) *UserService {
	return &UserService{
		userRepo:  userRepo,
		sessions:  sessions,
		events:    events,
		passwords: passwords{userRepo: userRepo, sessions: sessions, cost: bcryptCost},
	}
}

// CheckUsernameAvailable reports whether no stored user has exactly this username.
func (s *UserService) CheckUsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking username availability for %s", username)
		return false, err
	}
	return !exists, nil
}

func (s *UserService) CheckEmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking email availability for %s", email)
		return false, err
	}
	return !exists, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "", "user not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user. Deleting a user that does not exist succeeds without effect.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	deleted, err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", userID)
		return err
	}
	if !deleted {
		return nil
	}

	if err := s.sessions.Revoke(ctx, user.Email); err != nil {
		logger.Error().Err(err).Msgf("Error revoking session for deleted user %d", userID)
	}
	logger.Info().Int64("user_id", userID).Msg("User deleted")
	s.events.publishQuietly(ctx, entity.AccountEvent{
		Type:     entity.EventUserDeleted,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	return nil
}

// ChangePassword replaces the password after checking the current one. The active session is revoked.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := requireFields([2]string{"currentPassword", currentPassword}, [2]string{"newPassword", newPassword}); err != nil {
		return err
	}
	if userID <= 0 {
		return newError(ErrValidation, "", "userId is required")
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwords.matches(user, currentPassword) {
		return newError(ErrInvalidCredentials, "", "current password does not match")
	}

	if err := s.passwords.set(ctx, user, newPassword); err != nil {
		return err
	}

	s.events.publishQuietly(ctx, entity.AccountEvent{Type: entity.EventPasswordChanged, UserID: user.ID, Email: user.Email})
	return nil
}
