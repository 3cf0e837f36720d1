package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/ports"
)

// ProfileHandler serves the operator's own account page.
type ProfileHandler struct {
	session ports.SessionService
}

func NewProfileHandler(session ports.SessionService) *ProfileHandler {
	return &ProfileHandler{session: session}
}

// Show handles GET /profile.
//
// @Summary      Current operator
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Router       /profile [get]
func (h *ProfileHandler) Show(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user, DisplayRole: user.PrimaryRole()})
}

// Update handles PUT /profile.
//
// @Summary      Update the current operator
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.session.UpdateProfile(c.Request().Context(), req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{User: user, DisplayRole: user.PrimaryRole()})
}
