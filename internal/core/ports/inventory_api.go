package ports

import (
	"context"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// AuthAPI is the auth/ part of the backend.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error)
	Register(ctx context.Context, reg domain.Registration) (domain.RegisterAck, error)
	CurrentUser(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.User, error)
}

// ProductAPI is the products/ resource.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryAPI is the categories/ resource.
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// StatsAPI is the stats/ endpoint.
type StatsAPI interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// CatalogReader is the read side the product list needs.
type CatalogReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// InventoryAPI groups the resource calls used by the inventory pages.
type InventoryAPI interface {
	ProductAPI
	CategoryAPI
}
