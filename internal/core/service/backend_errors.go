package service

import (
	"context"
	"errors"
	"time"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// backendGuard applies the storefront's reaction to backend failures:
// 401 ends the session, transport failures and business errors surface
// as notifications. Nothing is retried.
type backendGuard struct {
	session  ports.SessionService
	notifier ports.Notifier
}

func (g backendGuard) handle(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *domain.APIError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		g.session.Expire(ctx)
	case errors.Is(err, domain.ErrBackendUnavailable):
		g.notify(domain.LevelError, "Connection error, please try again")
	case errors.As(err, &apiErr):
		g.notify(domain.LevelWarning, apiErr.Message)
	}
	return err
}

func (g backendGuard) notify(level domain.NotificationLevel, msg string) {
	if g.notifier == nil || msg == "" {
		return
	}
	g.notifier.Publish(domain.Notification{Level: level, Message: msg, At: time.Now().UTC()})
}

// bearer returns the session token or ErrUnauthenticated.
func (g backendGuard) bearer() (string, error) {
	snap := g.session.Snapshot()
	if !snap.IsAuthenticated() {
		return "", domain.ErrUnauthenticated
	}
	return snap.Token, nil
}
