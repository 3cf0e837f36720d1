package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// RBAC enforces role-based access control on the user stored by RequireSession.
// The user passes when any of their groups is allowed.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextUserKey).(domain.User)
			for _, role := range user.Roles {
				if _, ok := allowed[role]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// RequireManager admits the groups allowed to change the inventory.
func RequireManager() echo.MiddlewareFunc {
	return RBAC(domain.RoleManager, domain.RoleAdmin)
}
