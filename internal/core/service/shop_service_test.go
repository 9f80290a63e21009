package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/99minutos/storefront/internal/core/domain"
)

var (
	lampProduct = domain.Product{ID: "p1", Name: "Lamp", Price: 100, Stock: 5, ShippingCost: 20}
	deskProduct = domain.Product{ID: "p2", Name: "Desk", Price: 250, Stock: 3, ShippingCost: 0}
)

type shopFixture struct {
	shop     *ShopService
	cart     *CartEngine
	store    *stubCartStore
	backend  *stubShopBackend
	session  *stubSession
	notifier *recordingNotifier
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()
	f := &shopFixture{
		store:    newStubCartStore(),
		backend:  newStubShopBackend(lampProduct, deskProduct),
		session:  newCustomerSession("u1"),
		notifier: &recordingNotifier{},
	}
	f.cart = NewCartEngine(f.store, f.store, nopLogger())
	f.cart.IdentityChanged(context.Background(), f.session.Snapshot().Identity)
	f.shop = NewShopService(f.backend, f.backend, f.cart, f.session, f.notifier, nopLogger())
	return f
}

func TestShopService_CartView_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		adds map[string]int
		want domain.Totals
	}{
		{"free shipping over threshold", map[string]int{"p1": 1, "p2": 1}, domain.Totals{Subtotal: 350, Shipping: 0, Total: 350, ItemCount: 2}},
		{"shipping charged below threshold", map[string]int{"p1": 1}, domain.Totals{Subtotal: 100, Shipping: 20, Total: 120, ItemCount: 1}},
		{"quantity does not multiply shipping", map[string]int{"p1": 2}, domain.Totals{Subtotal: 200, Shipping: 20, Total: 220, ItemCount: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newShopFixture(t)
			for id, qty := range tt.adds {
				if _, err := f.shop.AddToCart(context.Background(), id, qty); err != nil {
					t.Fatalf("AddToCart %s: %v", id, err)
				}
			}

			view, err := f.shop.CartView(context.Background())
			if err != nil {
				t.Fatalf("CartView: %v", err)
			}
			if diff := cmp.Diff(tt.want, view.Totals); diff != "" {
				t.Fatalf("totals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShopService_CartView_Empty(t *testing.T) {
	f := newShopFixture(t)
	f.backend.listErr = errors.New("catalog must not be read for an empty cart")

	view, err := f.shop.CartView(context.Background())
	if err != nil {
		t.Fatalf("CartView: %v", err)
	}
	if len(view.Items) != 0 || view.Totals != (domain.Totals{}) {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestShopService_AddToCart_SnapshotsProduct(t *testing.T) {
	f := newShopFixture(t)

	view, err := f.shop.AddToCart(context.Background(), "p1", 2)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	want := []domain.LineItem{{ProductID: "p1", Name: "Lamp", UnitPrice: 100, Quantity: 2}}
	if diff := cmp.Diff(want, view.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, f.store.persisted("u1")); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestShopService_AddToCart_StockCeiling(t *testing.T) {
	f := newShopFixture(t)
	if _, err := f.shop.AddToCart(context.Background(), "p1", 4); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	_, err := f.shop.AddToCart(context.Background(), "p1", 2)

	var stockErr *domain.StockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected StockError, got %v", err)
	}
	if stockErr.Requested != 6 || stockErr.Available != 5 {
		t.Fatalf("expected merged request 6 of 5, got %+v", stockErr)
	}
	if f.cart.Quantity("p1") != 4 {
		t.Fatalf("cart must be unchanged, got quantity %d", f.cart.Quantity("p1"))
	}
	if !f.notifier.has(domain.LevelWarning) {
		t.Fatalf("expected a warning notification")
	}
}

func TestShopService_AddToCart_ExactStockAllowed(t *testing.T) {
	f := newShopFixture(t)
	if _, err := f.shop.AddToCart(context.Background(), "p2", 3); err != nil {
		t.Fatalf("adding the full stock must succeed: %v", err)
	}
}

func TestShopService_AddToCart_Errors(t *testing.T) {
	f := newShopFixture(t)

	if _, err := f.shop.AddToCart(context.Background(), "p1", 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := f.shop.AddToCart(context.Background(), "missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	f.cart.IdentityChanged(context.Background(), nil)
	if _, err := f.shop.AddToCart(context.Background(), "p1", 1); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}
}

func TestShopService_SetQuantity(t *testing.T) {
	f := newShopFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 2)

	if _, err := f.shop.SetQuantity(context.Background(), "p1", 6); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if f.cart.Quantity("p1") != 2 {
		t.Fatalf("rejected increment must not mutate the cart")
	}

	if _, err := f.shop.SetQuantity(context.Background(), "p1", 5); err != nil {
		t.Fatalf("increment to stock: %v", err)
	}

	// Decrements are allowed even when stock dropped below the cart quantity.
	f.backend.setStock("p1", 1)
	if _, err := f.shop.SetQuantity(context.Background(), "p1", 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	view, err := f.shop.SetQuantity(context.Background(), "p1", 0)
	if err != nil {
		t.Fatalf("set to zero: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("quantity 0 must remove the line, got %+v", view.Items)
	}
}

func TestShopService_SetQuantity_RacingDecreaseStaysStockChecked(t *testing.T) {
	f := newShopFixture(t)
	f.backend.setStock("p1", 1)
	_ = f.cart.AddItem(lamp(1))

	for i := 0; i < 100; i++ {
		// Stock dropped below what the cart holds; both calls start as decreases.
		_ = f.cart.UpdateQuantity("p1", 5)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, qty := range []int{3, 1} {
			wg.Add(1)
			go func(qty int) {
				defer wg.Done()
				_, err := f.shop.SetQuantity(context.Background(), "p1", qty)
				errs <- err
			}(qty)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil && !errors.Is(err, domain.ErrInsufficientStock) {
				t.Fatalf("SetQuantity: %v", err)
			}
		}
		if got := f.cart.Quantity("p1"); got != 1 {
			t.Fatalf("iteration %d: quantity %d exceeds stock 1", i, got)
		}
	}
}

func TestShopService_RemoveAndClear(t *testing.T) {
	f := newShopFixture(t)
	_, _ = f.shop.AddToCart(context.Background(), "p1", 1)
	_, _ = f.shop.AddToCart(context.Background(), "p2", 1)

	view, err := f.shop.RemoveFromCart(context.Background(), "p2")
	if err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != "p1" {
		t.Fatalf("unexpected items: %+v", view.Items)
	}

	if err := f.shop.ClearCart(context.Background()); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if f.cart.ItemCount() != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestShopService_UnauthorizedExpiresSession(t *testing.T) {
	f := newShopFixture(t)
	f.backend.listErr = &domain.APIError{Status: http.StatusUnauthorized, Message: "expired"}

	_, err := f.shop.GetProduct(context.Background(), "p1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.session.expiredCount() != 1 {
		t.Fatalf("expected session expired once, got %d", f.session.expiredCount())
	}
}

func TestShopService_BackendDownNotifies(t *testing.T) {
	f := newShopFixture(t)
	f.backend.listErr = domain.ErrBackendUnavailable

	if _, err := f.shop.ListProducts(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if !f.notifier.has(domain.LevelError) {
		t.Fatalf("expected an error notification")
	}
	if f.session.expiredCount() != 0 {
		t.Fatalf("network errors must not end the session")
	}
}

func TestShopService_Favorites(t *testing.T) {
	f := newShopFixture(t)

	fav, err := f.shop.AddFavorite(context.Background(), "p1")
	if err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	favs, err := f.shop.Favorites(context.Background())
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].ID != fav.ID {
		t.Fatalf("unexpected favorites: %+v", favs)
	}
	if err := f.shop.Rate(context.Background(), domain.Rating{ProductID: "p1", Score: 5}); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if len(f.backend.ratings) != 1 {
		t.Fatalf("expected rating forwarded")
	}

	f.session.Expire(context.Background())
	if _, err := f.shop.Favorites(context.Background()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
