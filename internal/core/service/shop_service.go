package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

// ShopService is the consuming layer over the cart engine: it snapshots
// product data into line items and refuses increments past the stock ceiling.
type ShopService struct {
	catalog    ports.CatalogAPI
	engagement ports.EngagementAPI
	cart       *CartEngine
	guard      backendGuard
	log        zerolog.Logger

	// mu spans the stock comparison and the mutation it allows.
	mu sync.Mutex
}

func NewShopService(
	catalog ports.CatalogAPI,
	engagement ports.EngagementAPI,
	cart *CartEngine,
	session ports.SessionService,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ShopService {
	return &ShopService{
		catalog:    catalog,
		engagement: engagement,
		cart:       cart,
		guard:      backendGuard{session: session, notifier: notifier},
		log:        log,
	}
}

func (s *ShopService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("list products: %w", err))
	}
	return products, nil
}

func (s *ShopService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("get product: %w", err))
	}
	return p, nil
}

// CartView prices the cart using the catalog's current shipping costs.
func (s *ShopService) CartView(ctx context.Context) (*ports.CartView, error) {
	if !s.cart.Active() {
		return nil, domain.ErrNoActiveCart
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return &ports.CartView{Items: items, Totals: domain.Totals{}}, nil
	}

	costs, err := s.shippingCosts(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.CartView{Items: items, Totals: domain.PriceCart(items, costs)}, nil
}

// AddToCart adds quantity units of the product unless the cart would then
// hold more than the product's stock.
func (s *ShopService) AddToCart(ctx context.Context, productID string, quantity int) (*ports.CartView, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !s.cart.Active() {
		return nil, domain.ErrNoActiveCart
	}

	p, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	requested := s.cart.Quantity(productID) + quantity
	if err := s.checkStock(p, requested); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	err = s.cart.AddItem(domain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
		Image:     p.Image,
	})
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("product_id", productID).Int("quantity", requested).Msg("added to cart")
	return s.CartView(ctx)
}

// SetQuantity sets the product's quantity. Increments are checked against
// fresh stock; decrements and removals are not. Whether the call increments
// is decided under the mutation lock, against the quantity it replaces.
func (s *ShopService) SetQuantity(ctx context.Context, productID string, quantity int) (*ports.CartView, error) {
	if !s.cart.Active() {
		return nil, domain.ErrNoActiveCart
	}
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, productID)
	}

	var product *domain.Product
	for {
		s.mu.Lock()
		if quantity > s.cart.Quantity(productID) {
			if product == nil {
				// The change became an increase; stock is needed before it may land.
				s.mu.Unlock()
				p, err := s.GetProduct(ctx, productID)
				if err != nil {
					return nil, err
				}
				product = p
				continue
			}
			if err := s.checkStock(product, quantity); err != nil {
				s.mu.Unlock()
				return nil, err
			}
		}
		err := s.cart.UpdateQuantity(productID, quantity)
		s.mu.Unlock()
		if err != nil {
			return nil, err
		}
		return s.CartView(ctx)
	}
}

func (s *ShopService) RemoveFromCart(ctx context.Context, productID string) (*ports.CartView, error) {
	s.mu.Lock()
	err := s.cart.RemoveItem(productID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.CartView(ctx)
}

func (s *ShopService) ClearCart(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clear()
}

func (s *ShopService) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	token, err := s.guard.bearer()
	if err != nil {
		return nil, err
	}
	favs, err := s.engagement.ListFavorites(ctx, token)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("list favorites: %w", err))
	}
	return favs, nil
}

func (s *ShopService) AddFavorite(ctx context.Context, productID string) (*domain.Favorite, error) {
	token, err := s.guard.bearer()
	if err != nil {
		return nil, err
	}
	fav, err := s.engagement.AddFavorite(ctx, token, productID)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("add favorite: %w", err))
	}
	return fav, nil
}

func (s *ShopService) RemoveFavorite(ctx context.Context, favoriteID string) error {
	token, err := s.guard.bearer()
	if err != nil {
		return err
	}
	if err := s.engagement.RemoveFavorite(ctx, token, favoriteID); err != nil {
		return s.guard.handle(ctx, fmt.Errorf("remove favorite: %w", err))
	}
	return nil
}

func (s *ShopService) Rate(ctx context.Context, rating domain.Rating) error {
	token, err := s.guard.bearer()
	if err != nil {
		return err
	}
	if err := s.engagement.Rate(ctx, token, rating); err != nil {
		return s.guard.handle(ctx, fmt.Errorf("rate product: %w", err))
	}
	return nil
}

func (s *ShopService) checkStock(p *domain.Product, requested int) error {
	if requested <= p.Stock {
		return nil
	}
	metrics.CartStockRejectionsTotal.Inc()
	s.guard.notify(domain.LevelWarning, fmt.Sprintf("Only %d units of %s are available", p.Stock, p.Name))
	return &domain.StockError{ProductID: p.ID, Requested: requested, Available: p.Stock}
}

func (s *ShopService) shippingCosts(ctx context.Context) (map[string]float64, error) {
	products, err := s.catalog.AllProducts(ctx)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("load shipping costs: %w", err))
	}
	return shippingCostIndex(products), nil
}

func shippingCostIndex(products []domain.Product) map[string]float64 {
	costs := make(map[string]float64, len(products))
	for _, p := range products {
		costs[p.ID] = p.ShippingCost
	}
	return costs
}
