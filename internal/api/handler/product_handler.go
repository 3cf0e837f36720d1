package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
)

// ProductHandler serves the product pages.
type ProductHandler struct {
	list      ports.ProductListService
	inventory ports.InventoryService
}

func NewProductHandler(list ports.ProductListService, inventory ports.InventoryService) *ProductHandler {
	return &ProductHandler{list: list, inventory: inventory}
}

// List handles GET /products.
//
// @Summary      Product list
// @Description  Loads products and categories, then applies the search, stock, category and sort controls.
// @Tags         products
// @Produce      json
// @Param        search    query     string  false  "Case-insensitive name filter"
// @Param        stock     query     string  false  "all, in-stock, low-stock or out-of-stock"
// @Param        category  query     string  false  "Category id or all"
// @Param        sort      query     string  false  "name, price_asc, price_desc, quantity_asc or quantity_desc"
// @Success      200       {object}  domain.ProductListView
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := domain.ViewFilterState{
		SearchTerm:  c.QueryParam("search"),
		StockFilter: domain.ParseStockFilter(c.QueryParam("stock")),
		CategoryID:  domain.ParseCategoryFilter(c.QueryParam("category")),
		SortOrder:   domain.SortOrder(c.QueryParam("sort")),
	}
	return c.JSON(http.StatusOK, h.list.LoadProductList(c.Request().Context(), filter))
}

// Get handles GET /products/:id, the edit form.
//
// @Summary      Product edit form
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  productFormResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	product, err := h.inventory.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	categories := h.inventory.ListCategories(ctx)
	return c.JSON(http.StatusOK, productFormResponse{
		Product:    &product,
		Categories: categories.Categories,
		CanEdit:    user.CanManageInventory(),
	})
}

// CreateForm handles GET /products-create.
//
// @Summary      Product create form
// @Tags         products
// @Produce      json
// @Success      200  {object}  productFormResponse
// @Router       /products-create [get]
func (h *ProductHandler) CreateForm(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	categories := h.inventory.ListCategories(c.Request().Context())
	return c.JSON(http.StatusOK, productFormResponse{Categories: categories.Categories, CanEdit: user.CanManageInventory()})
}

// Create handles POST /products-create.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /products-create [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.inventory.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.inventory.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Param        id   path  int  true  "Product id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.inventory.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
