package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"deepbark-service/internal/entity"
	"deepbark-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JwtCustomClaims struct {
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	BcryptCost    int
}

type LoginResult struct {
	Token string             `json:"token"`
	User  entity.UserSummary `json:"user"`
}

// AuthService handles registration, login and password reset.
type AuthService struct {
	userRepo  *repository.UserRepository
	sessions  *SessionStore
	events    *EventPublisher
	passwords passwords
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo *repository.UserRepository, sessions *SessionStore, events *EventPublisher, config AuthConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		sessions:  sessions,
		events:    events,
		passwords: passwords{userRepo: userRepo, sessions: sessions, cost: config.BcryptCost},
		config:    config,
		now:       time.Now,
	}
}

// Register validates the input, enforces unique email and username, and stores the user with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := requireFields([2]string{"username", username}, [2]string{"email", email}, [2]string{"password", password}); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking email during registration")
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "", "email is already registered")
	}

	taken, err = s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking username during registration")
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "", "username is already taken")
	}

	hash, err := s.passwords.hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, &entity.User{Username: username, Email: email, Password: hash})
	if err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "", "username or email is already registered")
		}
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	logger.Info().Int64("user_id", user.ID).Msg("User registered")
	s.events.publishQuietly(ctx, entity.AccountEvent{
		Type:     entity.EventUserRegistered,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	return user, nil
}

// Login checks the credentials, issues a JWT and records it as the active session for the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := requireFields([2]string{"email", email}, [2]string{"password", password}); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "email", "email is not registered")
		}
		logger.Error().Err(err).Msg("Error loading user for login")
		return nil, err
	}

	if !s.passwords.matches(user, password) {
		return nil, newError(ErrInvalidCredentials, "password", "password does not match")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	// Store the JWT token in Redis with the user email as the key
	if err := s.sessions.Save(ctx, user.Email, token, s.config.TokenTTL); err != nil {
		logger.Error().Err(err).Msgf("Error storing session for user %d", user.ID)
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Summary()}, nil
}

// ResetPassword starts a reset: it issues a single-use token and hands it to the mailer via an account event.
// The password itself is only changed by ConfirmPasswordReset.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	if err := requireFields([2]string{"email", email}); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "", "email is not registered")
		}
		return err
	}

	token := uuid.NewString()
	if err := s.sessions.SaveResetToken(ctx, token, user.ID, s.config.ResetTokenTTL); err != nil {
		logger.Error().Err(err).Msgf("Error storing reset token for user %d", user.ID)
		return err
	}

	if !s.events.Enabled() {
		logger.Warn().Int64("user_id", user.ID).Msg("Password reset requested but no event writer is configured to deliver the token")
	}
	err = s.events.Publish(ctx, entity.AccountEvent{
		Type:       entity.EventPasswordResetRequested,
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		ResetToken: token,
	})
	if err != nil {
		logger.Error().Err(err).Msgf("Error publishing reset request for user %d", user.ID)
		return fmt.Errorf("could not dispatch reset token: %w", err)
	}

	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password. Existing sessions are revoked.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := requireFields([2]string{"token", token}, [2]string{"newPassword", newPassword}); err != nil {
		return err
	}

	userID, ok, err := s.sessions.TakeResetToken(ctx, strings.TrimSpace(token))
	if err != nil {
		return err
	}
	invalid := newError(ErrNotFound, "", "reset token is invalid or expired")
	if !ok {
		return invalid
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid
		}
		return err
	}

	if err := s.passwords.set(ctx, user, newPassword); err != nil {
		return err
	}

	s.events.publishQuietly(ctx, entity.AccountEvent{Type: entity.EventPasswordReset, UserID: user.ID, Email: user.Email})
	return nil
}

// ValidateSession reports whether token is the active session for email.
func (s *AuthService) ValidateSession(ctx context.Context, email, token string) (bool, error) {
	active, err := s.sessions.Get(ctx, email)
	if err != nil {
		return false, err
	}
	return active != "" && active == token, nil
}

// ParseToken verifies the signature and expiry of a bearer token.
func (s *AuthService) ParseToken(raw string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(raw, &JwtCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) issueToken(user *entity.User) (string, error) {
	now := s.now()
	claims := &JwtCustomClaims{
		UserID: user.ID,
		Name:   user.Username,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString([]byte(s.config.JWTSecret))
}
