package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"retaildash/internal/auth"
	"retaildash/internal/errors"
	"retaildash/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookieOpts  CookieOptions
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieOpts CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookieOpts: cookieOpts}
}

// LoginRequest represents a login request. Username matches either the
// account name or the email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the non-secret profile fields of the logged-in user.
type LoginResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// CheckResponse is the session validation payload.
type CheckResponse struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	IsAdmin       bool   `json:"is_admin"`
}

// Login godoc
// @Summary Log in with username/email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: errors.ErrValidation.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.cookieOpts.Secure,
	})

	return c.JSON(http.StatusOK, LoginResponse{
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
}

// Check godoc
// @Summary Validate the current session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} CheckResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	session, err := h.authService.ValidateSession(c.Request().Context(), tokenFromRequest(c, h.cookieOpts))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, CheckResponse{
		Authenticated: true,
		Name:          session.Name,
		Email:         session.Email,
		IsAdmin:       session.IsAdmin,
	})
}
