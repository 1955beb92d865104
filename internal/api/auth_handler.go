package api

import (
	"net/http"
	"strings"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type confirmResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

func (r *registerRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *loginRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

func (r *resetPasswordRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register creates an account --> POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondAuthError(c, err)
	}

	if _, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		return respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Registration completed"})
}

// Login issues a session token --> POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondAuthError(c, err)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ResetPassword sends a reset token to the account's owner --> POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondAuthError(c, err)
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "A password reset link has been sent to your email"})
}

// ConfirmPasswordReset sets a new password with a reset token --> POST /api/auth/reset-password/confirm
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req confirmResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondAuthError(c, err)
	}

	if err := h.authService.ConfirmPasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return respondAuthError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Password has been reset"})
}
