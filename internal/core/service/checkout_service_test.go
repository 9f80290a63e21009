package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func newCheckoutFixture(t *testing.T) (*shopFixture, *CheckoutService) {
	t.Helper()
	f := newShopFixture(t)
	svc := NewCheckoutService(f.backend, f.backend, f.cart, f.session, f.notifier, nopLogger())
	return f, svc
}

func TestCheckoutService_Success(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 1)

	var submitted ports.CreateOrderInput
	f.backend.createOrderFn = func(_ context.Context, token string, in ports.CreateOrderInput) (*domain.Order, error) {
		if token != "token-u1" {
			t.Fatalf("unexpected bearer %q", token)
		}
		submitted = in
		return &domain.Order{ID: "o1", Total: in.Total, Status: domain.OrderPending}, nil
	}
	f.backend.checkoutFn = func(_ context.Context, _, orderID string) (string, error) {
		return "https://pay.example.com/" + orderID, nil
	}

	res, err := svc.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	want := &domain.CheckoutResult{OrderID: "o1", Total: 120, CheckoutURL: "https://pay.example.com/o1"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	wantItems := []domain.OrderItem{{ProductID: "p1", Name: "Lamp", UnitPrice: 100, Quantity: 1}}
	if diff := cmp.Diff(wantItems, submitted.Items); diff != "" {
		t.Fatalf("order items mismatch (-want +got):\n%s", diff)
	}
	if submitted.Subtotal != 100 || submitted.Shipping != 20 || submitted.Total != 120 {
		t.Fatalf("unexpected submitted totals: %+v", submitted)
	}
	if _, err := uuid.Parse(submitted.IdempotencyKey); err != nil {
		t.Fatalf("expected a uuid idempotency key, got %q", submitted.IdempotencyKey)
	}
	if f.cart.ItemCount() != 0 || f.store.persisted("u1") != nil {
		t.Fatalf("cart must be cleared after a successful checkout")
	}
}

func TestCheckoutService_SessionFailureKeepsCart(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 1)

	f.backend.createOrderFn = func(context.Context, string, ports.CreateOrderInput) (*domain.Order, error) {
		return &domain.Order{ID: "o1"}, nil
	}
	f.backend.checkoutFn = func(context.Context, string, string) (string, error) {
		return "", &domain.APIError{Status: http.StatusBadGateway, Message: "payment processor unavailable"}
	}

	if _, err := svc.Checkout(context.Background()); err == nil {
		t.Fatalf("expected an error")
	}
	if f.cart.Quantity("p1") != 1 {
		t.Fatalf("cart must be kept when no checkout url was obtained")
	}
	if !f.notifier.has(domain.LevelWarning) {
		t.Fatalf("expected the backend message surfaced")
	}
}

func TestCheckoutService_KeepsItemsAddedDuringCheckout(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 1)

	var submitted ports.CreateOrderInput
	f.backend.createOrderFn = func(_ context.Context, _ string, in ports.CreateOrderInput) (*domain.Order, error) {
		submitted = in
		return &domain.Order{ID: "o1", Total: in.Total}, nil
	}
	f.backend.checkoutFn = func(ctx context.Context, _, orderID string) (string, error) {
		// Another request adds to the cart while the order is in flight.
		if _, err := f.shop.AddToCart(ctx, "p2", 1); err != nil {
			t.Errorf("AddToCart: %v", err)
		}
		return "https://pay.example.com/" + orderID, nil
	}

	if _, err := svc.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if len(submitted.Items) != 1 || submitted.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected order items: %+v", submitted.Items)
	}
	want := []domain.LineItem{{ProductID: "p2", Name: "Desk", UnitPrice: 250, Quantity: 1}}
	if diff := cmp.Diff(want, f.cart.Items()); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, f.store.persisted("u1")); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	f.backend.createOrderFn = func(context.Context, string, ports.CreateOrderInput) (*domain.Order, error) {
		t.Fatalf("no order may be created for an empty cart")
		return nil, nil
	}

	if _, err := svc.Checkout(context.Background()); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutService_Unauthenticated(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	f.session.Expire(context.Background())

	if _, err := svc.Checkout(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCheckoutService_StockShortfall(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 4)
	f.backend.setStock("p1", 2)
	f.backend.createOrderFn = func(context.Context, string, ports.CreateOrderInput) (*domain.Order, error) {
		t.Fatalf("no order may be created past the stock ceiling")
		return nil, nil
	}

	_, err := svc.Checkout(context.Background())

	var stockErr *domain.StockError
	if !errors.As(err, &stockErr) || stockErr.Available != 2 {
		t.Fatalf("expected StockError with 2 available, got %v", err)
	}
	if f.cart.Quantity("p1") != 4 {
		t.Fatalf("cart must be kept")
	}
}

func TestCheckoutService_UnauthorizedExpires(t *testing.T) {
	f, svc := newCheckoutFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 1)
	f.backend.createOrderFn = func(context.Context, string, ports.CreateOrderInput) (*domain.Order, error) {
		return nil, &domain.APIError{Status: http.StatusUnauthorized, Message: "expired"}
	}

	if _, err := svc.Checkout(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.session.expiredCount() != 1 {
		t.Fatalf("expected the session expired")
	}
}
