package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/ports"
)

// CategoryHandler serves the category pages.
type CategoryHandler struct {
	inventory ports.InventoryService
}

func NewCategoryHandler(inventory ports.InventoryService) *CategoryHandler {
	return &CategoryHandler{inventory: inventory}
}

// List handles GET /categories.
//
// @Summary      Category list
// @Tags         categories
// @Produce      json
// @Success      200  {object}  domain.CategoryListView
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.inventory.ListCategories(c.Request().Context()))
}

// Get handles GET /categories/:id.
//
// @Summary      Category edit form
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  categoryFormResponse
// @Failure      404  {object}  errorResponse
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	category, err := h.inventory.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryFormResponse{Category: &category, CanEdit: user.CanManageInventory()})
}

// CreateForm handles GET /categories-create.
//
// @Summary      Category create form
// @Tags         categories
// @Produce      json
// @Success      200  {object}  categoryFormResponse
// @Router       /categories-create [get]
func (h *CategoryHandler) CreateForm(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categoryFormResponse{CanEdit: user.CanManageInventory()})
}

// Create handles POST /categories-create.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /categories-create [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.inventory.CreateCategory(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Category id"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.inventory.UpdateCategory(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Param        id   path  int  true  "Category id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.inventory.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
