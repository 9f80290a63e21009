package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type stubSessionService struct {
	snap       domain.Session
	loginFn    func(ctx context.Context, email, password string) error
	registerFn func(ctx context.Context, in ports.RegisterInput) error
	refreshErr error
	logouts    int
}

func (s *stubSessionService) Snapshot() domain.Session { return s.snap }
func (s *stubSessionService) IsAuthenticated() bool { return s.snap.IsAuthenticated() }
func (s *stubSessionService) IsAdmin() bool {
	return s.snap.IsAuthenticated() && s.snap.Identity.IsAdmin()
}

func (s *stubSessionService) Restore(context.Context) error { return nil }

func (s *stubSessionService) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubSessionService) Logout(context.Context) error {
	s.logouts++
	s.snap = domain.Session{}
	return nil
}

func (s *stubSessionService) Refresh(context.Context) error { return s.refreshErr }
func (s *stubSessionService) Expire(context.Context) { s.snap = domain.Session{} }

type stubShopService struct {
	view          *ports.CartView
	err           error
	addFn         func(ctx context.Context, productID string, quantity int) (*ports.CartView, error)
	setQuantityFn func(ctx context.Context, productID string, quantity int) (*ports.CartView, error)
	removed       []string
	cleared       bool
	ratings       []domain.Rating
}

func (s *stubShopService) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: "p1", Name: "Lamp", Price: 100, Stock: 5}}, s.err
}

func (s *stubShopService) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: id, Name: "Lamp"}, nil
}

func (s *stubShopService) CartView(context.Context) (*ports.CartView, error) { return s.view, s.err }

func (s *stubShopService) AddToCart(ctx context.Context, productID string, quantity int) (*ports.CartView, error) {
	return s.addFn(ctx, productID, quantity)
}

func (s *stubShopService) SetQuantity(ctx context.Context, productID string, quantity int) (*ports.CartView, error) {
	return s.setQuantityFn(ctx, productID, quantity)
}

func (s *stubShopService) RemoveFromCart(_ context.Context, productID string) (*ports.CartView, error) {
	s.removed = append(s.removed, productID)
	return s.view, s.err
}

func (s *stubShopService) ClearCart(context.Context) error {
	s.cleared = true
	return s.err
}

func (s *stubShopService) Favorites(context.Context) ([]domain.Favorite, error) { return nil, s.err }

func (s *stubShopService) AddFavorite(_ context.Context, productID string) (*domain.Favorite, error) {
	return &domain.Favorite{ID: "f1", ProductID: productID}, s.err
}

func (s *stubShopService) RemoveFavorite(context.Context, string) error { return s.err }

func (s *stubShopService) Rate(_ context.Context, r domain.Rating) error {
	s.ratings = append(s.ratings, r)
	return s.err
}

type stubOrderFeed struct {
	orders    []domain.Order
	err       error
	refreshes int
}

func (f *stubOrderFeed) Orders() []domain.Order { return f.orders }

func (f *stubOrderFeed) Refresh(context.Context) ([]domain.Order, error) {
	f.refreshes++
	return f.orders, f.err
}

func (f *stubOrderFeed) Trigger() {}

type stubCheckoutService struct {
	res *domain.CheckoutResult
	err error
}

func (s *stubCheckoutService) Checkout(context.Context) (*domain.CheckoutResult, error) {
	return s.res, s.err
}
