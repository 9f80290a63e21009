// Package notify is the storefront's broadcast channel for user-visible
// messages. Renderers subscribe when they mount and close their subscription
// when they unmount.
package notify

import (
	"sync"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

const defaultBuffer = 32

// Bus fans notifications out to every open subscription.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool
}

// NewBus returns a Bus whose subscriptions buffer up to buffer notifications.
// If buffer <= 0, defaultBuffer is used.
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{subs: make(map[uint64]*Subscription), buffer: buffer}
}

// Subscription is one renderer's view of the bus.
type Subscription struct {
	id   uint64
	bus  *Bus
	ch   chan domain.Notification
	once sync.Once
}

// C delivers notifications until the subscription or the bus is closed.
func (s *Subscription) C() <-chan domain.Notification {
	return s.ch
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s.id)
	})
}

// Subscribe registers a new renderer. On a closed bus the returned
// subscription's channel is already closed.
func (b *Bus) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscription{bus: b, ch: make(chan domain.Notification, b.buffer)}
	if b.closed {
		close(sub.ch)
		return sub
	}
	b.nextID++
	sub.id = b.nextID
	b.subs[sub.id] = sub
	metrics.NotificationSubscribers.Inc()
	return sub
}

// Publish delivers n to every subscriber without blocking. A subscriber whose
// buffer is full misses n.
func (b *Bus) Publish(n domain.Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- n:
		default:
			metrics.NotificationsDroppedTotal.Inc()
		}
	}
}

// Close closes every subscription. Later publishes are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
		metrics.NotificationSubscribers.Dec()
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.ch)
	metrics.NotificationSubscribers.Dec()
}
