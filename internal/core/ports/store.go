package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// TokenStore persists the bearer token across restarts.
// LoadToken returns domain.ErrKeyNotFound when no token is stored.
type TokenStore interface {
	LoadToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

// CartStore is a keyed store mapping an identity id to that identity's cart.
// LoadCart returns an empty slice, not an error, for an unknown identity.
type CartStore interface {
	LoadCart(ctx context.Context, identityID string) ([]domain.LineItem, error)
	SaveCart(ctx context.Context, identityID string, items []domain.LineItem) error
	DeleteCart(ctx context.Context, identityID string) error
}

// Store is the full persisted client state.
type Store interface {
	TokenStore
	CartStore
	Ping(ctx context.Context) error
	Close() error
}

// CartWriter applies cart persistence for an identity in the order the
// writes were issued. Write and Delete do not wait for the store.
type CartWriter interface {
	Write(identityID string, items []domain.LineItem)
	Delete(identityID string)
	// Sync blocks until every write already issued for identityID is applied.
	Sync(ctx context.Context, identityID string) error
}
