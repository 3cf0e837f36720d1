package devbackend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

type handlers struct {
	store    *Store
	issuer   *TokenIssuer
	validate *payloadValidator
	log      zerolog.Logger
}

// errorBody is the {"error": "..."} shape used by the auth views.
type errorBody struct {
	Error string `json:"error"`
}

var errNotFound = detail{Detail: "Not found."}

func badJSON(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, detail{Detail: "JSON parse error"})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// --- Auth ---

func (h *handlers) login(c echo.Context) error {
	var p loginPayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if errs := h.validate.check(p); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	user, err := h.store.Authenticate(*p.Username, *p.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, detail{Detail: "No active account found with the given credentials"})
	}
	access, refresh, err := h.issuer.Pair(user.ID)
	if err != nil {
		return err
	}
	h.log.Info().Str("username", user.Username).Msg("login")
	return c.JSON(http.StatusOK, domain.TokenPair{Access: access, Refresh: refresh})
}

func (h *handlers) refresh(c echo.Context) error {
	var p refreshPayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if errs := h.validate.check(p); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}
	access, err := h.issuer.Access(*p.Refresh)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, detail{Detail: "Token is invalid or expired", Code: "token_not_valid"})
	}
	return c.JSON(http.StatusOK, map[string]string{"access": access})
}

func (h *handlers) register(c echo.Context) error {
	var p registerPayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if p.Username == "" || p.Password == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Username and password required"})
	}

	user, err := h.store.CreateUser(p.Username, p.Email, p.Password, domain.RoleReader)
	if errors.Is(err, ErrUserExists) {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Username already exists"})
	}
	if err != nil {
		return err
	}
	access, refresh, err := h.issuer.Pair(user.ID)
	if err != nil {
		return err
	}
	h.log.Info().Str("username", user.Username).Msg("user registered")
	return c.JSON(http.StatusCreated, domain.RegisterAck{Access: access, Refresh: refresh, User: &user})
}

func (h *handlers) me(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (h *handlers) updateProfile(c echo.Context) error {
	var p profilePayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if errs := h.validate.check(p); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}
	if p.NewPassword != "" && p.CurrentPassword == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Current password is required to change password"})
	}

	user, err := h.store.UpdateProfile(currentUser(c).ID, ProfileChange{
		Username:        p.Username,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		CurrentPassword: p.CurrentPassword,
		NewPassword:     p.NewPassword,
	})
	switch {
	case errors.Is(err, ErrInvalidPassword):
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Current password is incorrect"})
	case errors.Is(err, ErrUserExists):
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Username already exists"})
	case errors.Is(err, ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, detail{Detail: "User not found", Code: "user_not_found"})
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// --- Products ---

// productResponse renders prices with two decimals, as the serializer does.
type productResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Price           string           `json:"price"`
	Quantity        int              `json:"quantity"`
	SoldQuantity    int              `json:"sold_quantity"`
	Category        *int64           `json:"category"`
	CategoryDetails *domain.Category `json:"category_details"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price.StringFixed(2),
		Quantity:        p.Quantity,
		SoldQuantity:    p.SoldQuantity,
		Category:        p.Category,
		CategoryDetails: p.CategoryDetails,
	}
}

func (h *handlers) listProducts(c echo.Context) error {
	products := h.store.Products()
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *handlers) getProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	p, err := h.store.Product(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *handlers) createProduct(c echo.Context) error {
	return h.saveProduct(c, 0, http.StatusCreated)
}

func (h *handlers) updateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return h.saveProduct(c, id, http.StatusOK)
}

func (h *handlers) saveProduct(c echo.Context, id int64, status int) error {
	var p productPayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if errs := h.validate.check(p); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}
	if !p.Price.Equal(p.Price.Round(2)) {
		return c.JSON(http.StatusBadRequest, fieldErrors{"price": {"Ensure that there are no more than 2 decimal places."}})
	}

	in := domain.ProductInput{Name: *p.Name, Price: *p.Price, Quantity: *p.Quantity, Category: p.Category}
	if p.SoldQuantity != nil {
		in.SoldQuantity = *p.SoldQuantity
	}
	product, err := h.store.SaveProduct(id, in)
	switch {
	case errors.Is(err, ErrUnknownCategory):
		return c.JSON(http.StatusBadRequest, fieldErrors{"category": {"Invalid pk \"" + strconv.FormatInt(*p.Category, 10) + "\" - object does not exist."}})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, errNotFound)
	case err != nil:
		return err
	}
	return c.JSON(status, toProductResponse(product))
}

func (h *handlers) deleteProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok || h.store.DeleteProduct(id) != nil {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Categories ---

func (h *handlers) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Categories())
}

func (h *handlers) getCategory(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	cat, err := h.store.Category(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *handlers) createCategory(c echo.Context) error {
	return h.saveCategory(c, 0, http.StatusCreated)
}

func (h *handlers) updateCategory(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return h.saveCategory(c, id, http.StatusOK)
}

func (h *handlers) saveCategory(c echo.Context, id int64, status int) error {
	var p categoryPayload
	if err := c.Bind(&p); err != nil {
		return badJSON(c)
	}
	if errs := h.validate.check(p); errs != nil {
		return c.JSON(http.StatusBadRequest, errs)
	}

	in := domain.CategoryInput{Name: *p.Name, Description: p.Description}
	if p.Icon != nil {
		in.Icon = *p.Icon
	}
	cat, err := h.store.SaveCategory(id, in)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	if err != nil {
		return err
	}
	return c.JSON(status, cat)
}

func (h *handlers) deleteCategory(c echo.Context) error {
	id, ok := pathID(c)
	if !ok || h.store.DeleteCategory(id) != nil {
		return c.JSON(http.StatusNotFound, errNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Stats ---

func (h *handlers) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, computeStats(h.store.Products(), h.store.Categories(), timeNow()))
}
