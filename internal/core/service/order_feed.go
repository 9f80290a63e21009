package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/pkg/metrics"
)

const defaultPollInterval = 15 * time.Second

// OrderFeed keeps the order list fresh under two triggers: a fixed-interval
// poll and explicit Trigger calls. All triggers share one in-flight request
// per identity generation, and a response is applied only if it is newer
// than the last applied one and was fetched for the identity that is still
// active.
type OrderFeed struct {
	orders   ports.OrderAPI
	session  ports.SessionService
	log      zerolog.Logger
	interval time.Duration

	group   singleflight.Group
	trigger chan struct{}
	seq     atomic.Uint64

	mu         sync.RWMutex
	list       []domain.Order
	applied    uint64
	generation uint64
	owner      string
}

func NewOrderFeed(orders ports.OrderAPI, session ports.SessionService, interval time.Duration, log zerolog.Logger) *OrderFeed {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &OrderFeed{
		orders:   orders,
		session:  session,
		log:      log,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Run polls until ctx is cancelled.
func (f *OrderFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.poll(ctx)
		case <-f.trigger:
			f.poll(ctx)
		}
	}
}

// Trigger asks Run for an immediate refresh. Triggers coalesce.
func (f *OrderFeed) Trigger() {
	select {
	case f.trigger <- struct{}{}:
	default:
	}
}

// Orders returns the last applied order list.
func (f *OrderFeed) Orders() []domain.Order {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]domain.Order, len(f.list))
	copy(out, f.list)
	return out
}

// Refresh fetches the order list now, joining a fetch already in flight.
// Fetches are shared per identity generation, so a caller never joins a
// request started before the latest identity change, even when the same
// identity has come back since.
func (f *OrderFeed) Refresh(ctx context.Context) ([]domain.Order, error) {
	// Read the generation before the session so a concurrent identity switch
	// can only make this fetch look stale, never current.
	f.mu.RLock()
	gen := f.generation
	f.mu.RUnlock()

	snap := f.session.Snapshot()
	if !snap.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	key := strconv.FormatUint(gen, 10) + "/" + snap.Identity.ID
	ch := f.group.DoChan(key, func() (any, error) {
		return nil, f.fetch(context.WithoutCancel(ctx), gen)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return f.Orders(), nil
	}
}

// IdentityChanged drops the previous identity's orders and invalidates any
// fetch still running for it.
func (f *OrderFeed) IdentityChanged(_ context.Context, identity *domain.Identity) {
	f.mu.Lock()
	f.generation++
	f.list = nil
	f.owner = identityID(identity)
	f.mu.Unlock()

	if identity != nil {
		f.Trigger()
	}
}

func (f *OrderFeed) fetch(ctx context.Context, gen uint64) error {
	snap := f.session.Snapshot()
	if !snap.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	id := f.seq.Add(1)

	var (
		list []domain.Order
		err  error
	)
	if snap.Identity.IsAdmin() {
		list, err = f.orders.ListAllOrders(ctx, snap.Token)
	} else {
		list, err = f.orders.ListOrders(ctx, snap.Token)
	}
	if err != nil {
		metrics.OrderRefreshesTotal.WithLabelValues("error").Inc()
		if errors.Is(err, domain.ErrUnauthorized) {
			f.session.Expire(ctx)
		}
		return fmt.Errorf("refresh orders: %w", err)
	}

	if !f.apply(gen, id, snap.Identity.ID, list) {
		metrics.OrderRefreshesTotal.WithLabelValues("stale").Inc()
		f.log.Debug().Uint64("request_id", id).Msg("discarded stale order list")
		return nil
	}
	metrics.OrderRefreshesTotal.WithLabelValues("applied").Inc()
	return nil
}

func (f *OrderFeed) apply(gen, id uint64, owner string, list []domain.Order) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation || owner != f.owner || id <= f.applied {
		return false
	}
	f.list = list
	f.applied = id
	return true
}

func (f *OrderFeed) poll(ctx context.Context) {
	if !f.session.IsAuthenticated() {
		return
	}
	if _, err := f.Refresh(ctx); err != nil && ctx.Err() == nil {
		f.log.Warn().Err(err).Msg("order refresh failed")
	}
}
