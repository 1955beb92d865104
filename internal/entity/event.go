package entity

import "time"

const (
	EventUserRegistered         = "registered"
	EventUserDeleted            = "deleted"
	EventPasswordChanged        = "password-changed"
	EventPasswordResetRequested = "password-reset-requested"
	EventPasswordReset          = "password-reset"
)

// AccountEvent is published to kafka whenever an account changes.
type AccountEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	ResetToken string    `json:"reset_token,omitempty"` // only on password-reset-requested
	OccurredAt time.Time `json:"occurred_at"`
}
