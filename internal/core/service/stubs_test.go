package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// ---------------------------------------------------------------------------
// Auth backend stub
// ---------------------------------------------------------------------------

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, email, password string) (string, error)
	meFn       func(ctx context.Context, token string) (*domain.Profile, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) error

	mu      sync.Mutex
	meCalls int
}

func (s *stubAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthAPI) Me(ctx context.Context, token string) (*domain.Profile, error) {
	s.mu.Lock()
	s.meCalls++
	s.mu.Unlock()
	return s.meFn(ctx, token)
}

func (s *stubAuthAPI) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

// ---------------------------------------------------------------------------
// Stores
// ---------------------------------------------------------------------------

type stubTokenStore struct {
	mu      sync.Mutex
	token   string
	loadErr error
	deletes int
}

func (s *stubTokenStore) LoadToken(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return "", s.loadErr
	}
	if s.token == "" {
		return "", domain.ErrKeyNotFound
	}
	return s.token, nil
}

func (s *stubTokenStore) SaveToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *stubTokenStore) DeleteToken(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.deletes++
	return nil
}

func (s *stubTokenStore) stored() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// stubCartStore is a keyed cart store that also acts as a synchronous
// CartWriter.
type stubCartStore struct {
	mu      sync.Mutex
	carts   map[string][]domain.LineItem
	loadErr error
	syncs   int
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[string][]domain.LineItem)}
}

func (s *stubCartStore) LoadCart(_ context.Context, id string) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]domain.LineItem{}, s.carts[id]...), nil
}

func (s *stubCartStore) SaveCart(_ context.Context, id string, items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[id] = append([]domain.LineItem{}, items...)
	return nil
}

func (s *stubCartStore) DeleteCart(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	return nil
}

func (s *stubCartStore) Write(id string, items []domain.LineItem) {
	_ = s.SaveCart(context.Background(), id, items)
}

func (s *stubCartStore) Delete(id string) {
	_ = s.DeleteCart(context.Background(), id)
}

func (s *stubCartStore) Sync(_ context.Context, _ string) error {
	s.mu.Lock()
	s.syncs++
	s.mu.Unlock()
	return nil
}

func (s *stubCartStore) persisted(id string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.carts[id]
	if !ok {
		return nil
	}
	return append([]domain.LineItem{}, items...)
}

// ---------------------------------------------------------------------------
// Notifications and identity listeners
// ---------------------------------------------------------------------------

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *recordingNotifier) Publish(msg domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) levels() []domain.NotificationLevel {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.NotificationLevel, len(n.sent))
	for i, m := range n.sent {
		out[i] = m.Level
	}
	return out
}

func (n *recordingNotifier) has(level domain.NotificationLevel) bool {
	for _, l := range n.levels() {
		if l == level {
			return true
		}
	}
	return false
}

type recordingListener struct {
	mu      sync.Mutex
	changes []string // identity ids, "" for logout
}

func (l *recordingListener) IdentityChanged(_ context.Context, id *domain.Identity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.changes = append(l.changes, identityID(id))
}

func (l *recordingListener) seen() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.changes...)
}

// ---------------------------------------------------------------------------
// Session stub for services that only read the session
// ---------------------------------------------------------------------------

type stubSession struct {
	mu      sync.Mutex
	snap    domain.Session
	expired int
}

func newCustomerSession(id string) *stubSession {
	return &stubSession{snap: domain.Session{
		Token:    "token-" + id,
		Identity: &domain.Identity{ID: id, Name: id, Role: domain.RoleCustomer},
	}}
}

func newAdminSession(id string) *stubSession {
	s := newCustomerSession(id)
	s.snap.Identity.Role = domain.RoleAdmin
	return s
}

func (s *stubSession) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.Identity != nil {
		id := *snap.Identity
		snap.Identity = &id
	}
	return snap
}

func (s *stubSession) IsAuthenticated() bool { return s.Snapshot().IsAuthenticated() }
func (s *stubSession) IsAdmin() bool {
	snap := s.Snapshot()
	return snap.IsAuthenticated() && snap.Identity.IsAdmin()
}

func (s *stubSession) Restore(context.Context) error { return nil }
func (s *stubSession) Login(context.Context, string, string) error { return nil }
func (s *stubSession) Register(context.Context, ports.RegisterInput) error { return nil }
func (s *stubSession) Logout(context.Context) error { return nil }
func (s *stubSession) Refresh(context.Context) error { return nil }

func (s *stubSession) Expire(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired++
	s.snap = domain.Session{}
}

func (s *stubSession) expiredCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

func (s *stubSession) switchTo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = domain.Session{
		Token:    "token-" + id,
		Identity: &domain.Identity{ID: id, Name: id, Role: domain.RoleCustomer},
	}
}

// ---------------------------------------------------------------------------
// Catalog / order / engagement / admin backend stub
// ---------------------------------------------------------------------------

type stubShopBackend struct {
	mu       sync.Mutex
	products map[string]domain.Product
	listErr  error

	createOrderFn func(ctx context.Context, token string, in ports.CreateOrderInput) (*domain.Order, error)
	checkoutFn    func(ctx context.Context, token, orderID string) (string, error)
	listOrdersFn  func(ctx context.Context, token string) ([]domain.Order, error)
	listAllFn     func(ctx context.Context, token string) ([]domain.Order, error)

	favorites []domain.Favorite
	ratings   []domain.Rating
	favErr    error
}

func newStubShopBackend(products ...domain.Product) *stubShopBackend {
	b := &stubShopBackend{products: make(map[string]domain.Product)}
	for _, p := range products {
		b.products[p.ID] = p
	}
	return b
}

func (b *stubShopBackend) setStock(id string, stock int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.products[id]
	p.Stock = stock
	b.products[id] = p
}

func (b *stubShopBackend) ListProducts(context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		if p.Stock > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (b *stubShopBackend) AllProducts(context.Context) ([]domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]domain.Product, 0, len(b.products))
	for _, p := range b.products {
		out = append(out, p)
	}
	return out, nil
}

func (b *stubShopBackend) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	p, ok := b.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (b *stubShopBackend) CreateOrder(ctx context.Context, token string, in ports.CreateOrderInput) (*domain.Order, error) {
	return b.createOrderFn(ctx, token, in)
}

func (b *stubShopBackend) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return b.listOrdersFn(ctx, token)
}

func (b *stubShopBackend) ListAllOrders(ctx context.Context, token string) ([]domain.Order, error) {
	return b.listAllFn(ctx, token)
}

func (b *stubShopBackend) CreateCheckoutSession(ctx context.Context, token, orderID string) (string, error) {
	return b.checkoutFn(ctx, token, orderID)
}

func (b *stubShopBackend) ListFavorites(context.Context, string) ([]domain.Favorite, error) {
	if b.favErr != nil {
		return nil, b.favErr
	}
	return b.favorites, nil
}

func (b *stubShopBackend) AddFavorite(_ context.Context, _ string, productID string) (*domain.Favorite, error) {
	if b.favErr != nil {
		return nil, b.favErr
	}
	fav := domain.Favorite{ID: "fav-" + productID, ProductID: productID}
	b.favorites = append(b.favorites, fav)
	return &fav, nil
}

func (b *stubShopBackend) RemoveFavorite(context.Context, string, string) error { return b.favErr }

func (b *stubShopBackend) Rate(_ context.Context, _ string, r domain.Rating) error {
	b.ratings = append(b.ratings, r)
	return nil
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
