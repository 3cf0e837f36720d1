package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Show handles GET /dashboard.
//
// @Summary      Inventory dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardView
// @Router       /dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.LoadDashboard(c.Request().Context()))
}
