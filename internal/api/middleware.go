package api

import (
	"net/http"

	"deepbark-service/internal/service"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const claimsKey = "claims"

// RequireSession accepts a request only when it carries a valid bearer JWT that is still
// the active session of its account. Logging in again, changing or resetting the password
// all replace or revoke the session.
func RequireSession(authService *service.AuthService) echo.MiddlewareFunc {
	verifyToken := echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return authService.ParseToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid token"})
		},
	})

	checkSession := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or invalid token"})
			}
			claims, ok := token.Claims.(*service.JwtCustomClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token claims"})
			}

			valid, err := authService.ValidateSession(c.Request().Context(), claims.Email, token.Raw)
			if err != nil {
				log.Error().Err(err).Msg("Error validating session")
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not validate session"})
			}
			if !valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session expired, please log in again"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verifyToken(checkSession(next))
	}
}

func claimsFrom(c echo.Context) *service.JwtCustomClaims {
	claims, _ := c.Get(claimsKey).(*service.JwtCustomClaims)
	return claims
}

// requireOwner rejects requests whose token belongs to a different user than userID.
func requireOwner(c echo.Context, userID int64) error {
	claims := claimsFrom(c)
	if claims == nil || claims.UserID != userID {
		return &service.Error{Kind: service.ErrForbidden, Message: "token does not belong to this user"}
	}
	return nil
}
