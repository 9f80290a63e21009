package ports

import "github.com/99minutos/storefront/internal/core/domain"

// Notifier broadcasts user-visible messages to all mounted renderers.
type Notifier interface {
	Publish(n domain.Notification)
}
