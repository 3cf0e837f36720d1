package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const resourceCategories = "categories"

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	err := c.do(ctx, call{
		op: "list categories", resource: resourceCategories, method: http.MethodGet, path: "categories/",
		out: &categories, classify: resourceFailure,
	})
	return categories, err
}

func (c *Client) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var cat domain.Category
	err := c.do(ctx, call{
		op: "get category", resource: resourceCategories, method: http.MethodGet, path: categoryPath(id),
		out: &cat, classify: resourceFailure,
	})
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	var cat domain.Category
	err := c.do(ctx, call{
		op: "create category", resource: resourceCategories, method: http.MethodPost, path: "categories/",
		body: in, out: &cat, classify: resourceFailure,
	})
	return cat, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error) {
	var cat domain.Category
	err := c.do(ctx, call{
		op: "update category", resource: resourceCategories, method: http.MethodPut, path: categoryPath(id),
		body: in, out: &cat, classify: resourceFailure,
	})
	return cat, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op: "delete category", resource: resourceCategories, method: http.MethodDelete, path: categoryPath(id),
		classify: resourceFailure,
	})
}

func categoryPath(id int64) string {
	return fmt.Sprintf("categories/%d/", id)
}
