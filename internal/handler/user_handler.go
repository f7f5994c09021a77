package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retaildash/internal/errors"
	"retaildash/internal/service"
)

// UserHandler handles user management endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// ResetPasswordRequest represents a password reset request.
type ResetPasswordRequest struct {
	UserID      uint   `json:"user_id" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ResetPasswordResponse acknowledges a reset. It never echoes the password
// or the stored hash.
type ResetPasswordResponse struct {
	Message string `json:"message"`
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Description The session identity must be an admin or the target user.
// @Tags users
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Target user and new password"
// @Success 200 {object} ResetPasswordResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: errors.ErrValidation.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	if err := h.authService.ResetPassword(c.Request().Context(), session, req.UserID, req.NewPassword); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ResetPasswordResponse{Message: "password updated"})
}
