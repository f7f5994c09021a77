package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"retaildash/internal/errors"
	"retaildash/internal/service"
)

const (
	// CookieName is the session cookie, matched case-sensitively.
	CookieName = "auth-token"
	// DebugCookieName is a diagnostic fallback, only honored when the
	// debug-cookie flag is on. Disabled by default and refused in
	// production at config load.
	DebugCookieName = "auth-token-debug"

	sessionContextKey = "session"
)

// CookieOptions controls how session cookies are issued and read.
type CookieOptions struct {
	Secure        bool
	DebugFallback bool
}

// tokenFromRequest extracts the raw session token, or "" when absent.
func tokenFromRequest(c echo.Context, opts CookieOptions) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if opts.DebugFallback {
		if cookie, err := c.Cookie(DebugCookieName); err == nil {
			return cookie.Value
		}
	}
	return ""
}

// SessionMiddleware validates the session cookie and stores the resolved
// identity in the request context. Requests without a valid session get the
// mapped 401/503 response and never reach the handler.
func SessionMiddleware(authService service.AuthService, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := authService.ValidateSession(c.Request().Context(), tokenFromRequest(c, opts))
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// sessionFromContext returns the identity stashed by SessionMiddleware.
func sessionFromContext(c echo.Context) (*service.Session, error) {
	session, ok := c.Get(sessionContextKey).(*service.Session)
	if !ok || session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: errors.ErrUnauthenticated.Error(),
			Code:  "UNAUTHENTICATED",
		})
	}
	return session, nil
}
