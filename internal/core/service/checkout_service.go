package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

// CheckoutService submits the cart as a backend order and hands back the
// payment processor's hosted checkout page.
type CheckoutService struct {
	catalog ports.CatalogAPI
	orders  ports.OrderAPI
	cart    *CartEngine
	guard   backendGuard
	log     zerolog.Logger
}

func NewCheckoutService(
	catalog ports.CatalogAPI,
	orders ports.OrderAPI,
	cart *CartEngine,
	session ports.SessionService,
	notifier ports.Notifier,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog: catalog,
		orders:  orders,
		cart:    cart,
		guard:   backendGuard{session: session, notifier: notifier},
		log:     log,
	}
}

// Checkout prices the cart against fresh catalog data, creates the order and
// the checkout session, then removes the submitted items from the cart. If the checkout session cannot
// be created the order stays on the backend and the cart is kept.
func (s *CheckoutService) Checkout(ctx context.Context) (*domain.CheckoutResult, error) {
	token, err := s.guard.bearer()
	if err != nil {
		return nil, err
	}

	owner, items := s.cart.Snapshot()
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	products, err := s.catalog.AllProducts(ctx)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("checkout: load products: %w", err))
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("checkout: %w: %s", domain.ErrProductNotFound, it.ProductID)
		}
		if it.Quantity > p.Stock {
			s.guard.notify(domain.LevelWarning, fmt.Sprintf("Only %d units of %s are available", p.Stock, p.Name))
			return nil, &domain.StockError{ProductID: p.ID, Requested: it.Quantity, Available: p.Stock}
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	totals := domain.PriceCart(items, shippingCostIndex(products))

	order, err := s.orders.CreateOrder(ctx, token, ports.CreateOrderInput{
		Items:          orderItems,
		Subtotal:       totals.Subtotal,
		Shipping:       totals.Shipping,
		Total:          totals.Total,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("order_failed").Inc()
		return nil, s.guard.handle(ctx, fmt.Errorf("checkout: create order: %w", err))
	}

	url, err := s.orders.CreateCheckoutSession(ctx, token, order.ID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("session_failed").Inc()
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("order created without checkout session")
		return nil, s.guard.handle(ctx, fmt.Errorf("checkout: create checkout session: %w", err))
	}

	// Only the submitted lines leave the cart; items added meanwhile stay.
	if err := s.cart.Consume(owner, items); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to clear cart after checkout")
	}

	total := order.Total
	if total == 0 {
		total = totals.Total
	}
	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	metrics.CheckoutAmount.Observe(total)
	s.log.Info().Str("order_id", order.ID).Float64("total", total).Msg("checkout started")

	return &domain.CheckoutResult{OrderID: order.ID, Total: total, CheckoutURL: url}, nil
}
