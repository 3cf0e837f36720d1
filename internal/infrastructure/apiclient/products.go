package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

const resourceProducts = "products"

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := c.do(ctx, call{
		op: "list products", resource: resourceProducts, method: http.MethodGet, path: "products/",
		out: &products, classify: resourceFailure,
	})
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, call{
		op: "get product", resource: resourceProducts, method: http.MethodGet, path: productPath(id),
		out: &p, classify: resourceFailure,
	})
	return p, err
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, call{
		op: "create product", resource: resourceProducts, method: http.MethodPost, path: "products/",
		body: in, out: &p, classify: resourceFailure,
	})
	return p, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := c.do(ctx, call{
		op: "update product", resource: resourceProducts, method: http.MethodPut, path: productPath(id),
		body: in, out: &p, classify: resourceFailure,
	})
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op: "delete product", resource: resourceProducts, method: http.MethodDelete, path: productPath(id),
		classify: resourceFailure,
	})
}

func productPath(id int64) string {
	return fmt.Sprintf("products/%d/", id)
}
