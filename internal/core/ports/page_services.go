package ports

import (
	"context"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// ProductListService loads the product list page. It never fails: load
// errors degrade to a Failed view.
type ProductListService interface {
	LoadProductList(ctx context.Context, filter domain.ViewFilterState) domain.ProductListView
}

// DashboardService loads the dashboard page, failing soft like the product list.
type DashboardService interface {
	LoadDashboard(ctx context.Context) domain.DashboardView
}

// InventoryService performs the explicit create/edit/delete actions. Every
// failure is also reported through the Notifier.
type InventoryService interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) domain.CategoryListView
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
