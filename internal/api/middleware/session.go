package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/core/service"
)

// ContextUserKey is where RequireSession stores the current domain.User.
const ContextUserKey = "user"

// LoginPath is where anonymous operators are sent.
const LoginPath = "/login"

// RequireSession gates protected pages on the operator session. While the
// boot auth check is pending it answers 503 so the caller retries shortly.
func RequireSession(sessions ports.SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			switch service.Guard(snap) {
			case service.DecisionLoading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "loading"})
			case service.DecisionRedirectLogin:
				return c.Redirect(http.StatusFound, LoginPath)
			}
			c.Set(ContextUserKey, *snap.User)
			return next(c)
		}
	}
}
