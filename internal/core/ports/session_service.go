package ports

import (
	"context"

	"github.com/99minutos/storefront/internal/core/domain"
)

// IdentityListener is told about every change of the active identity.
// identity is nil after logout or session loss.
type IdentityListener interface {
	IdentityChanged(ctx context.Context, identity *domain.Identity)
}

// SessionReader exposes the derived session state.
type SessionReader interface {
	Snapshot() domain.Session
	IsAuthenticated() bool
	IsAdmin() bool
}

// SessionService owns the authentication token lifecycle.
type SessionService interface {
	SessionReader
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, in RegisterInput) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	// Expire clears the session after the backend rejected the token.
	Expire(ctx context.Context)
}
