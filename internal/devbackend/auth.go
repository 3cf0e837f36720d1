package devbackend

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const ctxUserKey = "user"

// detail is the error body of authentication and permission failures.
type detail struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Authenticate validates the bearer access token and injects the user.
func Authenticate(issuer *TokenIssuer, store *Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, detail{Detail: "Authentication credentials were not provided."})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, detail{Detail: "Authorization header must contain two space-delimited values", Code: "bad_authorization_header"})
			}

			userID, err := issuer.Verify(parts[1], tokenTypeAccess)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, detail{Detail: "Given token not valid for any token type", Code: "token_not_valid"})
			}
			user, err := store.User(userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, detail{Detail: "User not found", Code: "user_not_found"})
			}

			c.Set(ctxUserKey, user)
			return next(c)
		}
	}
}

// ManagerWrites lets any authenticated user read and restricts writes to
// Manager and Admin.
func ManagerWrites() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			user, _ := c.Get(ctxUserKey).(domain.User)
			if !user.CanManageInventory() {
				return c.JSON(http.StatusForbidden, detail{Detail: "You do not have permission to perform this action."})
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) domain.User {
	user, _ := c.Get(ctxUserKey).(domain.User)
	return user
}
