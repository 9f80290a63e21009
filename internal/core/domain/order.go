package domain

import "time"

// OrderStatus is the backend-owned lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a line of a submitted order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is the backend's order DTO.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id,omitempty"`
	Items      []OrderItem `json:"items"`
	Subtotal   float64     `json:"subtotal"`
	Shipping   float64     `json:"shipping"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// CheckoutResult is what the storefront hands back after submitting a cart:
// the order and the processor's hosted payment page.
type CheckoutResult struct {
	OrderID     string  `json:"order_id"`
	Total       float64 `json:"total"`
	CheckoutURL string  `json:"checkout_url"`
}
