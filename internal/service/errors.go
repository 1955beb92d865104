package service

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Error kinds. Every Error wraps exactly one of these so callers can classify with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrUpstream           = errors.New("upstream failure")
)

// Error is a client-presentable failure. Field names the request field at fault, if any.
type Error struct {
	Kind    error
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireFields returns a validation error naming the first blank field, in argument order.
func requireFields(fields ...[2]string) error {
	for _, f := range fields {
		if isBlank(f[1]) {
			return newError(ErrValidation, "", f[0]+" is required")
		}
	}
	return nil
}
