package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/99minutos/storefront/internal/core/domain"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []productDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products"}, &out); err != nil {
		return nil, err
	}
	return productsToDomain(out), nil
}

// AllProducts lists every product including out-of-stock ones.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	var out []productDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products/all"}, &out); err != nil {
		return nil, err
	}
	return productsToDomain(out), nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out productDTO
	err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + escape(id)}, &out)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	p := out.toDomain()
	return &p, nil
}
