package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// RegisterInput carries the fields the backend needs to create a customer.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// AuthAPI is the backend's authentication contract.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Me returns the profile for token, or domain.ErrUnauthorized on 401.
	Me(ctx context.Context, token string) (*domain.Profile, error)
	Register(ctx context.Context, in RegisterInput) error
}

// CatalogAPI reads products.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	AllProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// CreateOrderInput is the order payload submitted at checkout.
type CreateOrderInput struct {
	Items          []domain.OrderItem
	Subtotal       float64
	Shipping       float64
	Total          float64
	IdempotencyKey string
}

// OrderAPI covers order placement and the hosted checkout handoff.
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, in CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListAllOrders(ctx context.Context, token string) ([]domain.Order, error)
	CreateCheckoutSession(ctx context.Context, token, orderID string) (string, error)
}

// EngagementAPI covers favorites and ratings.
type EngagementAPI interface {
	ListFavorites(ctx context.Context, token string) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, token, productID string) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, token, favoriteID string) error
	Rate(ctx context.Context, token string, rating domain.Rating) error
}

// AdminAPI covers the back-office screens. The backend authorizes every call.
type AdminAPI interface {
	UpdateOrderStatus(ctx context.Context, token, orderID string, status domain.OrderStatus) (*domain.Order, error)
	ListCustomers(ctx context.Context, token string) ([]domain.Customer, error)
	DeleteCustomer(ctx context.Context, token, customerID string) error
	CreateProduct(ctx context.Context, token string, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, token, productID string, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
}

// Backend is everything the storefront consumes from the REST API.
type Backend interface {
	AuthAPI
	CatalogAPI
	OrderAPI
	EngagementAPI
	AdminAPI
	Ping(ctx context.Context) error
}
