package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/infrastructure/notify"
)

// NoticeSource hands out pending notices exactly once.
type NoticeSource interface {
	Drain() []notify.Notice
}

type NotificationHandler struct {
	notices NoticeSource
}

func NewNotificationHandler(notices NoticeSource) *NotificationHandler {
	return &NotificationHandler{notices: notices}
}

// Drain handles GET /notifications.
//
// @Summary      Pending notices
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  notify.Notice
// @Router       /notifications [get]
func (h *NotificationHandler) Drain(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notices.Drain())
}
