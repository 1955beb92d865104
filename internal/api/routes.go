package api

import (
	"deepbark-service/internal/metrics"
	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// maxImageUpload bounds the multipart body accepted by /api/analyze.
const maxImageUpload = "10M"

type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Breeds   *BreedHandler
	MixDogs  *MixDogHandler
	Analysis *AnalysisHandler
}

// RegisterRoutes mounts every /api route plus /metrics on e.
func RegisterRoutes(e *echo.Echo, h Handlers, authService *service.AuthService) {
	if e.Validator == nil {
		e.Validator = NewGenericEchoValidator()
	}
	requireSession := RequireSession(authService)

	g := e.Group("/api")

	// Auth
	g.POST("/auth/register", h.Auth.Register)
	g.POST("/auth/login", h.Auth.Login)
	g.POST("/auth/reset-password", h.Auth.ResetPassword)
	g.POST("/auth/reset-password/confirm", h.Auth.ConfirmPasswordReset)

	// Users
	g.GET("/users/check-username", h.Users.CheckUsername)
	g.GET("/users/check-email", h.Users.CheckEmail)
	g.PUT("/users/change-password", h.Users.ChangePassword, requireSession)
	g.GET("/users/:userId", h.Users.GetUser, requireSession)
	g.DELETE("/users/:userId", h.Users.DeleteUser, requireSession)

	// Catalog
	g.GET("/breeds", h.Breeds.ListBreeds)
	g.GET("/breeds/search", h.Breeds.SearchBreeds)
	g.GET("/breeds/by-size", h.Breeds.ListBreedsBySize)
	g.GET("/mix-dogs/find", h.MixDogs.FindMix)
	g.GET("/health", h.Breeds.Health)

	g.POST("/analyze", h.Analysis.AnalyzeImage, middleware.BodyLimit(maxImageUpload))

	e.GET("/metrics", metrics.Handler())
}
