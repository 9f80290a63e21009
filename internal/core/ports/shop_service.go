package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// CartView is the cart as renderers display it.
type CartView struct {
	Items  []domain.LineItem `json:"items"`
	Totals domain.Totals     `json:"totals"`
}

// ShopService is the storefront's cart and catalog surface. It enforces the
// stock ceiling before mutating the cart.
type ShopService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	CartView(ctx context.Context) (*CartView, error)
	AddToCart(ctx context.Context, productID string, quantity int) (*CartView, error)
	SetQuantity(ctx context.Context, productID string, quantity int) (*CartView, error)
	RemoveFromCart(ctx context.Context, productID string) (*CartView, error)
	ClearCart(ctx context.Context) error

	Favorites(ctx context.Context) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, productID string) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, favoriteID string) error
	Rate(ctx context.Context, rating domain.Rating) error
}

// CheckoutService turns the cart into a backend order and a hosted payment page.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.CheckoutResult, error)
}

// OrderFeed keeps the order list fresh.
type OrderFeed interface {
	Orders() []domain.Order
	Refresh(ctx context.Context) ([]domain.Order, error)
	Trigger()
}

// AdminService wraps the back-office calls with the session's bearer.
type AdminService interface {
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}
