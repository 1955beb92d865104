package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind error
		want int
	}{
		{kind: service.ErrValidation, want: http.StatusBadRequest},
		{kind: service.ErrConflict, want: http.StatusBadRequest},
		{kind: service.ErrInvalidCredentials, want: http.StatusBadRequest},
		{kind: service.ErrForbidden, want: http.StatusForbidden},
		{kind: service.ErrNotFound, want: http.StatusNotFound},
		{kind: service.ErrUpstream, want: http.StatusInternalServerError},
		{kind: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.kind))
		})
	}
}

func TestWriteError(t *testing.T) {
	e := echo.New()
	run := func(respond func(echo.Context, error) error, err error) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, respond(c, err))
		return rec
	}

	notFound := &service.Error{Kind: service.ErrNotFound, Message: "user not found"}

	rec := run(respondError, notFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())

	rec = run(respondAuthError, notFound)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = run(respondAuthError, &service.Error{Kind: service.ErrInvalidCredentials, Field: "password", Message: "password does not match"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password":"password does not match"}`, rec.Body.String())

	rec = run(respondError, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	rec = run(respondError, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request payload"}`, rec.Body.String())
}
