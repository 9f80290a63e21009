package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/99minutos/storefront/internal/core/domain"
)

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	req, err := c.newJSONRequest(http.MethodPatch, "/orders/"+escape(orderID), token, map[string]string{"status": string(status)})
	if err != nil {
		return nil, err
	}
	var out orderDTO
	err = c.do(ctx, req, &out)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	order := out.toDomain()
	return &order, nil
}

func (c *Client) ListCustomers(ctx context.Context, token string) ([]domain.Customer, error) {
	var out []profileDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/customers", token: token}, &out); err != nil {
		return nil, err
	}
	customers := make([]domain.Customer, len(out))
	for i, d := range out {
		customers[i] = d.toDomain()
	}
	return customers, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, token, customerID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/customers/" + escape(customerID), token: token}, nil)
}

func (c *Client) CreateProduct(ctx context.Context, token string, in domain.ProductInput) (*domain.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products", token, in)
}

func (c *Client) UpdateProduct(ctx context.Context, token, productID string, in domain.ProductInput) (*domain.Product, error) {
	p, err := c.writeProduct(ctx, http.MethodPatch, "/products/"+escape(productID), token, in)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return p, err
}

func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	err := c.do(ctx, request{method: http.MethodDelete, path: "/products/" + escape(productID), token: token}, nil)
	if isNotFound(err) {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	return err
}

func (c *Client) writeProduct(ctx context.Context, method, path, token string, in domain.ProductInput) (*domain.Product, error) {
	req, err := c.newJSONRequest(method, path, token, in)
	if err != nil {
		return nil, err
	}
	var out productDTO
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	p := out.toDomain()
	return &p, nil
}
