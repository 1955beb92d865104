package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"deepbark-service/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type changePasswordRequest struct {
	// number or numeric string
	UserID          json.Number `json:"userId"`
	CurrentPassword string      `json:"currentPassword"`
	NewPassword     string      `json:"newPassword"`
}

type usernameAvailability struct {
	Available bool   `json:"available"`
	Username  string `json:"username"`
}

type emailAvailability struct {
	Available bool   `json:"available"`
	Email     string `json:"email"`
}

// CheckUsername --> GET /api/users/check-username?username=
func (h *UserHandler) CheckUsername(c echo.Context) error {
	username, err := requiredQuery(c, "username")
	if err != nil {
		return respondError(c, err)
	}

	available, err := h.userService.CheckUsernameAvailable(c.Request().Context(), username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, usernameAvailability{Available: available, Username: username})
}

// CheckEmail --> GET /api/users/check-email?email=
func (h *UserHandler) CheckEmail(c echo.Context) error {
	email, err := requiredQuery(c, "email")
	if err != nil {
		return respondError(c, err)
	}

	available, err := h.userService.CheckEmailAvailable(c.Request().Context(), email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, emailAvailability{Available: available, Email: email})
}

// GetUser returns the caller's own profile --> GET /api/users/:userId
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if err := requireOwner(c, userID); err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, user.Summary())
}

// DeleteUser removes the caller's own account --> DELETE /api/users/:userId
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if err := requireOwner(c, userID); err != nil {
		return respondError(c, err)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

// ChangePassword --> PUT /api/users/change-password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, &service.Error{Kind: service.ErrValidation, Message: "Invalid request payload"})
	}

	var userID int64
	if raw := strings.TrimSpace(req.UserID.String()); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return respondError(c, &service.Error{Kind: service.ErrValidation, Message: "userId must be an integer"})
		}
		userID = id
	}
	if userID > 0 {
		if err := requireOwner(c, userID); err != nil {
			return respondError(c, err)
		}
	}

	err := h.userService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Password changed"})
}

// requiredQuery returns the query parameter, which must be present but may be empty.
func requiredQuery(c echo.Context, name string) (string, error) {
	values, ok := c.QueryParams()[name]
	if !ok || len(values) == 0 {
		return "", &service.Error{Kind: service.ErrValidation, Message: name + " query parameter is required"}
	}
	return values[0], nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.Error{Kind: service.ErrValidation, Message: "Invalid " + name}
	}
	return id, nil
}
