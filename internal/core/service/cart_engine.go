package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

// CartEngine holds the active identity's line items and exposes the cart
// arithmetic. It performs no stock checks; callers compare against stock
// before incrementing.
type CartEngine struct {
	store  ports.CartStore
	writer ports.CartWriter
	log    zerolog.Logger

	mu    sync.Mutex
	owner string
	items []domain.LineItem
}

// NewCartEngine returns an engine with no active cart until an identity is set.
func NewCartEngine(store ports.CartStore, writer ports.CartWriter, log zerolog.Logger) *CartEngine {
	return &CartEngine{store: store, writer: writer, log: log}
}

// IdentityChanged swaps the in-memory cart to identity's partition. A nil
// identity empties memory and leaves every persisted partition untouched.
func (e *CartEngine) IdentityChanged(ctx context.Context, identity *domain.Identity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if identity == nil {
		e.owner = ""
		e.items = nil
		return
	}
	if identity.ID == e.owner {
		return
	}

	// Writes issued before a previous switch away may still be queued.
	if err := e.writer.Sync(ctx, identity.ID); err != nil {
		e.log.Warn().Err(err).Str("identity_id", identity.ID).Msg("cart writer sync failed")
	}

	items, err := e.store.LoadCart(ctx, identity.ID)
	if err != nil {
		e.log.Error().Err(err).Str("identity_id", identity.ID).Msg("failed to load cart, starting empty")
		items = nil
	}
	e.owner = identity.ID
	e.items = items
}

// AddItem merges item into the cart: an existing line for the same product
// gains item.Quantity, otherwise the item is appended.
func (e *CartEngine) AddItem(item domain.LineItem) error {
	if item.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.owner == "" {
		return domain.ErrNoActiveCart
	}
	if i := e.indexOf(item.ProductID); i >= 0 {
		e.items[i].Quantity += item.Quantity
	} else {
		e.items = append(e.items, item)
	}

	e.persist()
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return nil
}

// RemoveItem drops the product's line. Removing an absent product is a no-op.
func (e *CartEngine) RemoveItem(productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.owner == "" {
		return domain.ErrNoActiveCart
	}
	i := e.indexOf(productID)
	if i < 0 {
		return nil
	}
	e.items = append(e.items[:i], e.items[i+1:]...)

	e.persist()
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return nil
}

// UpdateQuantity sets the product's quantity. quantity <= 0 removes the line.
func (e *CartEngine) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(productID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.owner == "" {
		return domain.ErrNoActiveCart
	}
	i := e.indexOf(productID)
	if i < 0 {
		return nil
	}
	e.items[i].Quantity = quantity

	e.persist()
	metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	return nil
}

// Clear empties the cart and removes the identity's persisted partition.
func (e *CartEngine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.owner == "" {
		return domain.ErrNoActiveCart
	}
	e.items = nil
	e.writer.Delete(e.owner)
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return nil
}

// Consume takes submitted quantities out of owner's cart, dropping lines that
// reach zero. Lines added or raised after the snapshot keep the difference.
// It does nothing when owner's cart is no longer the loaded one.
func (e *CartEngine) Consume(owner string, submitted []domain.LineItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.owner == "" {
		return domain.ErrNoActiveCart
	}
	if e.owner != owner {
		e.log.Warn().Str("identity_id", owner).Msg("cart switched during checkout, leaving it untouched")
		return nil
	}

	for _, it := range submitted {
		i := e.indexOf(it.ProductID)
		if i < 0 {
			continue
		}
		if e.items[i].Quantity <= it.Quantity {
			e.items = append(e.items[:i], e.items[i+1:]...)
			continue
		}
		e.items[i].Quantity -= it.Quantity
	}

	if len(e.items) == 0 {
		e.items = nil
		e.writer.Delete(e.owner)
	} else {
		e.persist()
	}
	metrics.CartMutationsTotal.WithLabelValues("consume").Inc()
	return nil
}

// Active reports whether an identity's cart is loaded.
func (e *CartEngine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owner != ""
}

// Owner returns the identity id whose cart is loaded, or "".
func (e *CartEngine) Owner() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owner
}

// Snapshot returns the owner and a copy of its line items, read together.
func (e *CartEngine) Snapshot() (string, []domain.LineItem) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.owner, cloneItems(e.items)
}

// Items returns a copy of the line items in insertion order.
func (e *CartEngine) Items() []domain.LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneItems(e.items)
}

// Quantity returns the product's current quantity, 0 when absent.
func (e *CartEngine) Quantity(productID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(productID); i >= 0 {
		return e.items[i].Quantity
	}
	return 0
}

func (e *CartEngine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Subtotal(e.items)
}

func (e *CartEngine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.ItemCount(e.items)
}

// Totals prices the cart with the given per-product shipping costs.
func (e *CartEngine) Totals(shippingCosts map[string]float64) domain.Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.PriceCart(e.items, shippingCosts)
}

func (e *CartEngine) indexOf(productID string) int {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// persist must be called with mu held so snapshots are issued in mutation order.
func (e *CartEngine) persist() {
	e.writer.Write(e.owner, cloneItems(e.items))
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out
}
