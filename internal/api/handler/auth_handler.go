package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
)

const (
	homePath  = "/products"
	loginPath = "/login"
)

// AuthHandler serves login, registration and logout.
type AuthHandler struct {
	session ports.SessionService
}

func NewAuthHandler(session ports.SessionService) *AuthHandler {
	return &AuthHandler{session: session}
}

// LoginPage handles GET /login. An authenticated operator is sent to the products page.
//
// @Summary      Login page state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginPageResponse
// @Success      302
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.page(c, "login")
}

// RegisterPage handles GET /register.
//
// @Summary      Registration page state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginPageResponse
// @Success      302
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.page(c, "register")
}

func (h *AuthHandler) page(c echo.Context, name string) error {
	snap := h.session.Snapshot()
	if snap.IsAuthenticated {
		return c.Redirect(http.StatusFound, homePath)
	}
	return c.JSON(http.StatusOK, loginPageResponse{Page: name, Session: snap})
}

// Login handles POST /login.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  redirectResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.session.Login(c.Request().Context(), domain.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		return err
	}

	snap := h.session.Snapshot()
	return c.JSON(http.StatusOK, redirectResponse{Redirect: homePath, Session: &snap})
}

// Register handles POST /register. The new account still has to log in.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account"
// @Success      201   {object}  redirectResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.session.Register(c.Request().Context(), domain.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, redirectResponse{Redirect: loginPath})
}

// Logout handles POST /logout. It always succeeds.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  redirectResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	snap := h.session.Snapshot()
	return c.JSON(http.StatusOK, redirectResponse{Redirect: loginPath, Session: &snap})
}
