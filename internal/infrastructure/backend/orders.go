package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// CreateOrder submits the order. IdempotencyKey, when set, lets the backend
// collapse a resubmitted checkout.
func (c *Client) CreateOrder(ctx context.Context, token string, in ports.CreateOrderInput) (*domain.Order, error) {
	payload := createOrderDTO{
		Items:        make([]orderItemDTO, len(in.Items)),
		Subtotal:     in.Subtotal,
		ShippingCost: in.Shipping,
		Total:        in.Total,
	}
	for i, it := range in.Items {
		payload.Items[i] = orderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}

	req, err := c.newJSONRequest(http.MethodPost, "/orders", token, payload)
	if err != nil {
		return nil, err
	}
	if in.IdempotencyKey != "" {
		req.header = http.Header{"Idempotency-Key": []string{in.IdempotencyKey}}
	}

	var out orderDTO
	if err := c.do(ctx, req, &out); err != nil {
		return nil, err
	}
	order := out.toDomain()
	if order.ID == "" {
		return nil, fmt.Errorf("create order: response without id")
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []orderDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders", token: token}, &out); err != nil {
		return nil, err
	}
	return ordersToDomain(out), nil
}

func (c *Client) ListAllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []orderDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders/all", token: token}, &out); err != nil {
		return nil, err
	}
	return ordersToDomain(out), nil
}

// CreateCheckoutSession asks the backend for the processor's hosted payment
// page for orderID.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, orderID string) (string, error) {
	var out checkoutDTO
	err := c.do(ctx, request{method: http.MethodPost, path: "/stripe/checkout/" + escape(orderID), token: token}, &out)
	if err != nil {
		return "", err
	}
	if out.CheckoutURL == "" {
		return "", fmt.Errorf("checkout session: response without checkout_url")
	}
	return out.CheckoutURL, nil
}
