package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

// SessionManager is the single source of truth for who is logged in.
// Token and identity are always set and cleared together.
type SessionManager struct {
	auth     ports.AuthAPI
	store    ports.TokenStore
	notifier ports.Notifier
	log      zerolog.Logger

	// flight serializes lifecycle operations so a slow profile fetch cannot
	// interleave with a logout.
	flight sync.Mutex

	mu        sync.RWMutex
	token     string
	identity  *domain.Identity
	listeners []ports.IdentityListener
}

// NewSessionManager returns an unauthenticated SessionManager. Call Restore
// to pick up a persisted token.
func NewSessionManager(
	auth ports.AuthAPI,
	store ports.TokenStore,
	notifier ports.Notifier,
	log zerolog.Logger,
	listeners ...ports.IdentityListener,
) *SessionManager {
	return &SessionManager{
		auth:      auth,
		store:     store,
		notifier:  notifier,
		log:       log,
		listeners: listeners,
	}
}

// AddListener registers l for identity changes. Listeners registered after
// a change are not told about it.
func (s *SessionManager) AddListener(l ports.IdentityListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Restore reads the persisted token and revalidates it against the backend.
func (s *SessionManager) Restore(ctx context.Context) error {
	s.flight.Lock()
	defer s.flight.Unlock()

	token, err := s.store.LoadToken(ctx)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.set(ctx, "", nil)
		return nil
	}
	if err != nil {
		s.set(ctx, "", nil)
		return fmt.Errorf("restore session: %w", err)
	}
	return s.establish(ctx, token)
}

// Login exchanges credentials for a token, persists it and validates it.
func (s *SessionManager) Login(ctx context.Context, email, password string) error {
	s.flight.Lock()
	defer s.flight.Unlock()

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		if authErr := asAuthError(err); authErr != nil {
			metrics.SessionLoginsTotal.WithLabelValues("rejected").Inc()
			return authErr
		}
		metrics.SessionLoginsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("login: %w", err)
	}

	if err := s.store.SaveToken(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session token")
	}

	if err := s.establish(ctx, token); err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SessionLoginsTotal.WithLabelValues("success").Inc()
	if id := s.Identity(); id != nil {
		s.publish(domain.LevelSuccess, "Welcome, "+id.Name)
	}
	return nil
}

// Register creates the account and logs in with the same credentials.
func (s *SessionManager) Register(ctx context.Context, in ports.RegisterInput) error {
	if err := s.auth.Register(ctx, in); err != nil {
		if authErr := asAuthError(err); authErr != nil {
			return authErr
		}
		return fmt.Errorf("register: %w", err)
	}
	return s.Login(ctx, in.Email, in.Password)
}

// Logout clears the session from memory and storage. Idempotent.
func (s *SessionManager) Logout(ctx context.Context) error {
	s.flight.Lock()
	defer s.flight.Unlock()

	if s.Token() != "" {
		metrics.SessionClearsTotal.WithLabelValues("logout").Inc()
	}
	s.set(ctx, "", nil)
	if err := s.store.DeleteToken(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Refresh revalidates the in-memory token. No-op when unauthenticated.
func (s *SessionManager) Refresh(ctx context.Context) error {
	s.flight.Lock()
	defer s.flight.Unlock()

	token := s.Token()
	if token == "" {
		return nil
	}
	return s.establish(ctx, token)
}

// Expire drops the session after the backend answered 401 to any call.
func (s *SessionManager) Expire(ctx context.Context) {
	s.flight.Lock()
	defer s.flight.Unlock()

	if s.Token() == "" {
		return
	}
	s.clear(ctx, "expired", true)
	s.publish(domain.LevelWarning, "Your session has expired, please log in again")
}

// establish decodes token, fetches the profile and installs the identity.
// Any failure leaves the session fully cleared.
func (s *SessionManager) establish(ctx context.Context, token string) error {
	claims, err := DecodeToken(token)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed session token")
		s.clear(ctx, "malformed", true)
		return err
	}

	profile, err := s.auth.Me(ctx, token)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		s.clear(ctx, "expired", true)
		s.publish(domain.LevelWarning, "Your session has expired, please log in again")
		return domain.ErrSessionExpired
	case err != nil:
		// Fail closed but keep the persisted token for the next start.
		s.clear(ctx, "unreachable", false)
		return fmt.Errorf("validate session: %w", err)
	case profile == nil || profile.ID == "":
		s.clear(ctx, "unreachable", false)
		return fmt.Errorf("validate session: profile without id")
	}

	s.set(ctx, token, buildIdentity(profile, claims))
	s.log.Debug().Str("identity_id", profile.ID).Msg("session established")
	return nil
}

func (s *SessionManager) clear(ctx context.Context, reason string, dropPersisted bool) {
	metrics.SessionClearsTotal.WithLabelValues(reason).Inc()
	s.set(ctx, "", nil)
	if !dropPersisted {
		return
	}
	if err := s.store.DeleteToken(ctx); err != nil {
		s.log.Warn().Err(err).Str("reason", reason).Msg("failed to delete persisted token")
	}
}

// set installs the new state and tells listeners when the identity changed.
func (s *SessionManager) set(ctx context.Context, token string, identity *domain.Identity) {
	s.mu.Lock()
	prev := identityID(s.identity)
	s.token = token
	s.identity = identity
	listeners := append([]ports.IdentityListener(nil), s.listeners...)
	s.mu.Unlock()

	if prev == identityID(identity) {
		return
	}
	for _, l := range listeners {
		l.IdentityChanged(ctx, cloneIdentity(identity))
	}
}

// Snapshot returns a copy of the current session.
func (s *SessionManager) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Session{Token: s.token, Identity: cloneIdentity(s.identity)}
}

func (s *SessionManager) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionManager) Identity() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIdentity(s.identity)
}

func (s *SessionManager) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *SessionManager) IsAdmin() bool {
	snap := s.Snapshot()
	return snap.IsAuthenticated() && snap.Identity.IsAdmin()
}

func (s *SessionManager) publish(level domain.NotificationLevel, msg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(domain.Notification{Level: level, Message: msg, At: time.Now().UTC()})
}

// buildIdentity merges the profile with the token hint. The profile's role is
// authoritative; the decoded claim only fills in when the profile has none.
func buildIdentity(p *domain.Profile, claims TokenClaims) *domain.Identity {
	id := &domain.Identity{
		ID:         p.ID,
		Email:      p.Email,
		Name:       p.Name,
		Surname:    p.Surname,
		Phone:      p.Phone,
		Address:    p.Address,
		Role:       p.Role,
		RoleSource: domain.RoleSourceProfile,
	}
	if !domain.ValidRole(id.Role) {
		id.Role = claims.Role
		id.RoleSource = domain.RoleSourceTokenHint
	}
	return id
}

func asAuthError(err error) *domain.AuthError {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return &domain.AuthError{Message: apiErr.Message, Err: err}
	}
	return nil
}

func identityID(id *domain.Identity) string {
	if id == nil {
		return ""
	}
	return id.ID
}

func cloneIdentity(id *domain.Identity) *domain.Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
