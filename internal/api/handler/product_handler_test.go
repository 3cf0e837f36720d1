package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/stockmanager/admin-console/internal/api/middleware"
	"github.com/stockmanager/admin-console/internal/core/domain"
)

type stubProductList struct {
	loadFn func(ctx context.Context, filter domain.ViewFilterState) domain.ProductListView
}

func (s *stubProductList) LoadProductList(ctx context.Context, filter domain.ViewFilterState) domain.ProductListView {
	return s.loadFn(ctx, filter)
}

type stubInventory struct {
	getProductFn     func(ctx context.Context, id int64) (domain.Product, error)
	createProductFn  func(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	deleteProductFn  func(ctx context.Context, id int64) error
	listCategoriesFn func(ctx context.Context) domain.CategoryListView
	createCategoryFn func(ctx context.Context, in domain.CategoryInput) (domain.Category, error)
}

func (s *stubInventory) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.getProductFn(ctx, id)
}

func (s *stubInventory) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	return s.createProductFn(ctx, in)
}

func (s *stubInventory) UpdateProduct(context.Context, int64, domain.ProductInput) (domain.Product, error) {
	return domain.Product{}, errors.New("not stubbed")
}

func (s *stubInventory) DeleteProduct(ctx context.Context, id int64) error {
	return s.deleteProductFn(ctx, id)
}

func (s *stubInventory) ListCategories(ctx context.Context) domain.CategoryListView {
	return s.listCategoriesFn(ctx)
}

func (s *stubInventory) GetCategory(context.Context, int64) (domain.Category, error) {
	return domain.Category{}, errors.New("not stubbed")
}

func (s *stubInventory) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	return s.createCategoryFn(ctx, in)
}

func (s *stubInventory) UpdateCategory(context.Context, int64, domain.CategoryInput) (domain.Category, error) {
	return domain.Category{}, errors.New("not stubbed")
}

func (s *stubInventory) DeleteCategory(context.Context, int64) error {
	return errors.New("not stubbed")
}

func TestProductHandler_List_ParsesControls(t *testing.T) {
	e := newEcho()
	list := &stubProductList{loadFn: func(_ context.Context, f domain.ViewFilterState) domain.ProductListView {
		if f.SearchTerm != "Wid" || f.StockFilter != domain.StockFilterLowStock || f.SortOrder != domain.SortPriceDesc {
			t.Fatalf("unexpected filter: %+v", f)
		}
		if f.CategoryID == nil || *f.CategoryID != 3 {
			t.Fatalf("unexpected category filter: %v", f.CategoryID)
		}
		return domain.ProductListView{Filter: f, Products: []domain.Product{{ID: 1, Name: "Widget"}}, Categories: []domain.Category{}, Total: 1}
	}}
	handler := NewProductHandler(list, &stubInventory{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products?search=Wid&stock=low-stock&category=3&sort=price_desc", nil), rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view domain.ProductListView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(view.Products) != 1 || view.Filter.CategoryID == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestProductHandler_List_AllCategoryIsNil(t *testing.T) {
	e := newEcho()
	list := &stubProductList{loadFn: func(_ context.Context, f domain.ViewFilterState) domain.ProductListView {
		if f.CategoryID != nil || f.StockFilter != domain.StockFilterAll {
			t.Fatalf("unexpected filter: %+v", f)
		}
		return domain.ProductListView{}
	}}
	handler := NewProductHandler(list, &stubInventory{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products?category=all&stock=bogus", nil), httptest.NewRecorder())
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestProductHandler_Create(t *testing.T) {
	e := newEcho()
	inv := &stubInventory{createProductFn: func(_ context.Context, in domain.ProductInput) (domain.Product, error) {
		if in.Name != "Hammer" || !in.Price.Equal(decimal.RequireFromString("12.50")) || in.Quantity != 4 {
			t.Fatalf("unexpected input: %+v", in)
		}
		return domain.Product{ID: 10, Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
	}}
	handler := NewProductHandler(&stubProductList{}, inv)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/products-create", `{"name":"Hammer","price":"12.50","quantity":4,"sold_quantity":0,"category":null}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProductHandler_Create_NegativePrice(t *testing.T) {
	e := newEcho()
	handler := NewProductHandler(&stubProductList{}, &stubInventory{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/products-create", `{"name":"Hammer","price":"-1","quantity":1}`), httptest.NewRecorder())

	var he *echo.HTTPError
	if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestProductHandler_Create_RequiresPriceAndQuantity(t *testing.T) {
	e := newEcho()
	inv := &stubInventory{createProductFn: func(context.Context, domain.ProductInput) (domain.Product, error) {
		t.Fatalf("incomplete form must not reach the backend")
		return domain.Product{}, nil
	}}
	handler := NewProductHandler(&stubProductList{}, inv)

	for _, body := range []string{
		`{"name":"Hammer","quantity":1}`,
		`{"name":"Hammer","price":"3.00"}`,
	} {
		c := e.NewContext(jsonRequest(http.MethodPost, "/products-create", body), httptest.NewRecorder())

		var he *echo.HTTPError
		if err := handler.Create(c); !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %v", body, err)
		}
	}
}

func TestProductHandler_Create_AcceptsExplicitZeros(t *testing.T) {
	e := newEcho()
	inv := &stubInventory{createProductFn: func(_ context.Context, in domain.ProductInput) (domain.Product, error) {
		if !in.Price.IsZero() || in.Quantity != 0 {
			t.Fatalf("unexpected input: %+v", in)
		}
		return domain.Product{ID: 11, Name: in.Name}, nil
	}}
	handler := NewProductHandler(&stubProductList{}, inv)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/products-create", `{"name":"Freebie","price":"0","quantity":0}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProductHandler_Get_IncludesCategoriesAndCapability(t *testing.T) {
	e := newEcho()
	inv := &stubInventory{
		getProductFn: func(_ context.Context, id int64) (domain.Product, error) {
			return domain.Product{ID: id, Name: "Widget"}, nil
		},
		listCategoriesFn: func(context.Context) domain.CategoryListView {
			return domain.CategoryListView{Categories: []domain.Category{{ID: 1, Name: "Tools"}}}
		},
	}
	handler := NewProductHandler(&stubProductList{}, inv)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set(middleware.ContextUserKey, domain.User{Username: "r", Roles: []string{domain.RoleReader}})

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp productFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Product == nil || resp.Product.ID != 5 || len(resp.Categories) != 1 || resp.CanEdit {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestProductHandler_Delete_InvalidID(t *testing.T) {
	e := newEcho()
	handler := NewProductHandler(&stubProductList{}, &stubInventory{deleteProductFn: func(context.Context, int64) error {
		t.Fatalf("service must not be called")
		return nil
	}})

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	var he *echo.HTTPError
	if err := handler.Delete(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProductHandler_Delete_ForwardsForbidden(t *testing.T) {
	e := newEcho()
	handler := NewProductHandler(&stubProductList{}, &stubInventory{deleteProductFn: func(context.Context, int64) error {
		return domain.ErrForbidden
	}})

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
