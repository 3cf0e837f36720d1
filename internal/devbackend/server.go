package devbackend

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// BasePath is where the API is mounted, matching the real backend.
const BasePath = "/products/api/v1"

// NewServer builds the Echo instance serving the backend API.
func NewServer(store *Store, issuer *TokenIssuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(echomiddleware.AddTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(requestLogger(log))

	h := &handlers{store: store, issuer: issuer, validate: newPayloadValidator(), log: log}
	authenticated := Authenticate(issuer, store)

	v1 := e.Group(BasePath)

	// --- Auth ---
	v1.POST("/auth/login/", h.login)
	v1.POST("/auth/refresh/", h.refresh)
	v1.POST("/auth/register/", h.register)
	v1.GET("/auth/me/", h.me, authenticated)
	v1.PUT("/auth/profile/", h.updateProfile, authenticated)

	// --- Resources ---
	api := v1.Group("", authenticated, ManagerWrites())
	api.GET("/products/", h.listProducts)
	api.POST("/products/", h.createProduct)
	api.GET("/products/:id/", h.getProduct)
	api.PUT("/products/:id/", h.updateProduct)
	api.DELETE("/products/:id/", h.deleteProduct)
	api.GET("/categories/", h.listCategories)
	api.POST("/categories/", h.createCategory)
	api.GET("/categories/:id/", h.getCategory)
	api.PUT("/categories/:id/", h.updateCategory)
	api.DELETE("/categories/:id/", h.deleteCategory)
	api.GET("/stats/", h.stats)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
