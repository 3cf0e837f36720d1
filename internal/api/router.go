package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stockmanager/admin-console/internal/api/docs"
	"github.com/stockmanager/admin-console/internal/api/handler"
	"github.com/stockmanager/admin-console/internal/api/middleware"
	"github.com/stockmanager/admin-console/internal/core/ports"
)

// Deps are the services the console routes are served from.
type Deps struct {
	Session   ports.SessionService
	Products  ports.ProductListService
	Inventory ports.InventoryService
	Dashboard ports.DashboardService
	Notices   handler.NoticeSource
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.DependencyCheck
	// Registry receives the console HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "stockmanager",
		Subsystem:  "console",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Session)
	productHandler := handler.NewProductHandler(deps.Products, deps.Inventory)
	categoryHandler := handler.NewCategoryHandler(deps.Inventory)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard)
	profileHandler := handler.NewProfileHandler(deps.Session)
	notificationHandler := handler.NewNotificationHandler(deps.Notices)
	requireSession := middleware.RequireSession(deps.Session)
	requireManager := middleware.RequireManager()

	// --- Public pages ---
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/products") })
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)
	e.GET("/notifications", notificationHandler.Drain)

	// --- Protected pages ---
	p := e.Group("", requireSession)
	p.GET("/products", productHandler.List)
	p.GET("/products/:id", productHandler.Get)
	p.PUT("/products/:id", productHandler.Update, requireManager)
	p.DELETE("/products/:id", productHandler.Delete, requireManager)
	p.GET("/products-create", productHandler.CreateForm)
	p.POST("/products-create", productHandler.Create, requireManager)
	p.GET("/categories", categoryHandler.List)
	p.GET("/categories/:id", categoryHandler.Get)
	p.PUT("/categories/:id", categoryHandler.Update, requireManager)
	p.DELETE("/categories/:id", categoryHandler.Delete, requireManager)
	p.GET("/categories-create", categoryHandler.CreateForm)
	p.POST("/categories-create", categoryHandler.Create, requireManager)
	p.GET("/dashboard", dashboardHandler.Show)
	p.GET("/profile", profileHandler.Show)
	p.PUT("/profile", profileHandler.Update)

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
