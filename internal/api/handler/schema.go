package handler

import (
	"time"

	"github.com/99minutos/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	IsAdmin       bool             `json:"is_admin"`
	Identity      *domain.Identity `json:"identity,omitempty"`
}

// --- Cart ---

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

// Quantity zero or below removes the line.
type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type lineItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Image     string  `json:"image,omitempty"`
}

type cartResponse struct {
	Items               []lineItemResponse `json:"items"`
	ItemCount           int                `json:"item_count"`
	Subtotal            float64            `json:"subtotal"`
	Shipping            float64            `json:"shipping"`
	Total               float64            `json:"total"`
	FreeShippingFrom    float64            `json:"free_shipping_from"`
	FreeShippingApplied bool               `json:"free_shipping_applied"`
}

// --- Checkout / orders ---

type checkoutResponse struct {
	OrderID     string  `json:"order_id"`
	Total       float64 `json:"total"`
	CheckoutURL string  `json:"checkout_url"`
}

type orderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id,omitempty"`
	Status     string              `json:"status"`
	Items      []orderItemResponse `json:"items"`
	Subtotal   float64             `json:"subtotal"`
	Shipping   float64             `json:"shipping"`
	Total      float64             `json:"total"`
	CreatedAt  *time.Time          `json:"created_at,omitempty"`
}

type orderListResponse struct {
	Data  []orderResponse `json:"data"`
	Total int             `json:"total"`
}

// --- Favorites / ratings ---

type addFavoriteRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type rateRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Score     int    `json:"score"      validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// --- Admin ---

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

type productRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"         validate:"required,gt=0"`
	Stock        int     `json:"stock"         validate:"min=0"`
	ShippingCost float64 `json:"shipping_cost" validate:"min=0"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
