package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

func sampleView() *ports.CartView {
	items := []domain.LineItem{{ProductID: "p1", Name: "Lamp", UnitPrice: 100, Quantity: 2}}
	return &ports.CartView{Items: items, Totals: domain.PriceCart(items, map[string]float64{"p1": 20})}
}

func TestCartHandler_Get(t *testing.T) {
	e := newTestEcho()
	handler := NewCartHandler(&stubShopService{view: sampleView()})

	c, rec := newJSONContext(e, http.MethodGet, "/v1/cart", "")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Subtotal != 200 || resp.Shipping != 20 || resp.Total != 220 || resp.ItemCount != 2 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if resp.FreeShippingApplied || resp.FreeShippingFrom != domain.FreeShippingThreshold {
		t.Fatalf("unexpected free shipping fields: %+v", resp)
	}
	if len(resp.Items) != 1 || resp.Items[0].LineTotal != 200 {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestCartHandler_Get_NoActiveCart(t *testing.T) {
	e := newTestEcho()
	handler := NewCartHandler(&stubShopService{err: domain.ErrNoActiveCart})

	c, _ := newJSONContext(e, http.MethodGet, "/v1/cart", "")
	if err := handler.Get(c); !errors.Is(err, domain.ErrNoActiveCart) {
		t.Fatalf("expected ErrNoActiveCart, got %v", err)
	}
}

func TestCartHandler_AddItem(t *testing.T) {
	e := newTestEcho()
	handler := NewCartHandler(&stubShopService{
		addFn: func(_ context.Context, productID string, quantity int) (*ports.CartView, error) {
			if productID != "p1" || quantity != 2 {
				t.Fatalf("unexpected args: %s %d", productID, quantity)
			}
			return sampleView(), nil
		},
	})

	c, rec := newJSONContext(e, http.MethodPost, "/v1/cart/items", `{"product_id":"p1","quantity":2}`)
	if err := handler.AddItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_AddItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing product", `{"quantity":1}`},
		{"zero quantity", `{"product_id":"p1","quantity":0}`},
		{"negative quantity", `{"product_id":"p1","quantity":-2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			handler := NewCartHandler(&stubShopService{
				addFn: func(context.Context, string, int) (*ports.CartView, error) {
					t.Fatalf("service must not be called")
					return nil, nil
				},
			})

			c, _ := newJSONContext(e, http.MethodPost, "/v1/cart/items", tt.body)
			err := handler.AddItem(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
		})
	}
}

func TestCartHandler_AddItem_StockError(t *testing.T) {
	e := newTestEcho()
	handler := NewCartHandler(&stubShopService{
		addFn: func(context.Context, string, int) (*ports.CartView, error) {
			return nil, &domain.StockError{ProductID: "p1", Requested: 6, Available: 5}
		},
	})

	c, _ := newJSONContext(e, http.MethodPost, "/v1/cart/items", `{"product_id":"p1","quantity":6}`)
	if err := handler.AddItem(c); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected stock error, got %v", err)
	}
}

func TestCartHandler_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantQty  int
		wantCode int
	}{
		{"positive", `{"quantity":3}`, 3, 0},
		{"zero removes", `{"quantity":0}`, 0, 0},
		{"missing quantity", `{}`, 0, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			called := false
			handler := NewCartHandler(&stubShopService{
				setQuantityFn: func(_ context.Context, productID string, quantity int) (*ports.CartView, error) {
					called = true
					if productID != "p1" || quantity != tt.wantQty {
						t.Fatalf("unexpected args: %s %d", productID, quantity)
					}
					return sampleView(), nil
				},
			})

			c, _ := newJSONContext(e, http.MethodPatch, "/v1/cart/items/p1", tt.body)
			c.SetParamNames("product_id")
			c.SetParamValues("p1")
			err := handler.SetQuantity(c)

			if tt.wantCode == 0 {
				if err != nil || !called {
					t.Fatalf("expected success, got %v (called=%v)", err, called)
				}
				return
			}
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != tt.wantCode {
				t.Fatalf("expected %d, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestCartHandler_RemoveAndClear(t *testing.T) {
	e := newTestEcho()
	stub := &stubShopService{view: &ports.CartView{Items: []domain.LineItem{}}}
	handler := NewCartHandler(stub)

	c, rec := newJSONContext(e, http.MethodDelete, "/v1/cart/items/p1", "")
	c.SetParamNames("product_id")
	c.SetParamValues("p1")
	if err := handler.RemoveItem(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || len(stub.removed) != 1 || stub.removed[0] != "p1" {
		t.Fatalf("unexpected remove result: %d %v", rec.Code, stub.removed)
	}

	c, rec = newJSONContext(e, http.MethodDelete, "/v1/cart", "")
	if err := handler.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || !stub.cleared {
		t.Fatalf("expected 204 and a cleared cart, got %d", rec.Code)
	}
}
