package api

import (
	"errors"
	"fmt"
	"net/http"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func statusFor(kind error) int {
	switch kind {
	case service.ErrValidation, service.ErrConflict, service.ErrInvalidCredentials:
		return http.StatusBadRequest
	case service.ErrForbidden:
		return http.StatusForbidden
	case service.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Service errors keep their message and field,
// anything else is logged and reported as a generic internal error.
func respondError(c echo.Context, err error) error {
	return writeError(c, err, http.StatusNotFound)
}

// respondAuthError is respondError for the /api/auth endpoints, where an unknown account is a 400.
func respondAuthError(c echo.Context, err error) error {
	return writeError(c, err, http.StatusBadRequest)
}

func writeError(c echo.Context, err error, notFoundStatus int) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		status := statusFor(svcErr.Kind)
		if svcErr.Kind == service.ErrNotFound {
			status = notFoundStatus
		}
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("route", c.Path()).Msg("Upstream failure")
		}

		key := "error"
		if svcErr.Field != "" {
			key = svcErr.Field
		}
		return c.JSON(status, map[string]string{key: svcErr.Error()})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
	}

	log.Error().Err(err).Str("route", c.Path()).Msg("Unhandled error")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
