package service

import (
	"context"
	"fmt"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// AdminService forwards back-office calls with the session's bearer. The
// backend authorizes each call; the admin check here only hides the routes.
type AdminService struct {
	admin ports.AdminAPI
	guard backendGuard
	feed  ports.OrderFeed
}

func NewAdminService(admin ports.AdminAPI, session ports.SessionService, notifier ports.Notifier, feed ports.OrderFeed) *AdminService {
	return &AdminService{
		admin: admin,
		guard: backendGuard{session: session, notifier: notifier},
		feed:  feed,
	}
}

func (s *AdminService) token() (string, error) {
	token, err := s.guard.bearer()
	if err != nil {
		return "", err
	}
	if !s.guard.session.IsAdmin() {
		return "", domain.ErrForbidden
	}
	return token, nil
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	order, err := s.admin.UpdateOrderStatus(ctx, token, orderID, status)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("update order status: %w", err))
	}
	if s.feed != nil {
		s.feed.Trigger()
	}
	return order, nil
}

func (s *AdminService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	customers, err := s.admin.ListCustomers(ctx, token)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("list customers: %w", err))
	}
	return customers, nil
}

func (s *AdminService) DeleteCustomer(ctx context.Context, customerID string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.admin.DeleteCustomer(ctx, token, customerID); err != nil {
		return s.guard.handle(ctx, fmt.Errorf("delete customer: %w", err))
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	p, err := s.admin.CreateProduct(ctx, token, in)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("create product: %w", err))
	}
	return p, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, productID string, in domain.ProductInput) (*domain.Product, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	p, err := s.admin.UpdateProduct(ctx, token, productID, in)
	if err != nil {
		return nil, s.guard.handle(ctx, fmt.Errorf("update product: %w", err))
	}
	return p, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, productID string) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.admin.DeleteProduct(ctx, token, productID); err != nil {
		return s.guard.handle(ctx, fmt.Errorf("delete product: %w", err))
	}
	return nil
}
