// Package app wires configuration, persisted state, the backend client and
// the services into a running console.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/service"
	"github.com/99minutos/storefront/internal/infrastructure/backend"
	"github.com/99minutos/storefront/internal/infrastructure/http/handlers"
	"github.com/99minutos/storefront/internal/infrastructure/notify"
	"github.com/99minutos/storefront/internal/infrastructure/queue"
	"github.com/99minutos/storefront/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// App is one console: one session, one active cart.
type App struct {
	Config *config.Config
	Log    zerolog.Logger

	Store   ports.Store
	Backend *backend.Client
	Bus     *notify.Bus
	Writer  *queue.CartWriter

	Session  *service.SessionManager
	Cart     *service.CartEngine
	Shop     *service.ShopService
	Checkout *service.CheckoutService
	Feed     *service.OrderFeed
	Admin    *service.AdminService

	closeOnce sync.Once
}

// New builds an App from cfg. The returned App owns the store connection
// and must be closed.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	client, err := backend.New(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	}, log.With().Str("component", "backend").Logger())
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return Assemble(cfg, log, store, client), nil
}

// Assemble wires the services over an already opened store and backend.
func Assemble(cfg *config.Config, log zerolog.Logger, store ports.Store, client *backend.Client) *App {
	bus := notify.NewBus(cfg.NotifyBuffer)

	writer := queue.NewCartWriter(cfg.Store.PersistWorkers, store, log.With().Str("component", "cart_writer").Logger())
	writer.Start()

	cart := service.NewCartEngine(store, writer, log.With().Str("component", "cart").Logger())
	session := service.NewSessionManager(client, store, bus, log.With().Str("component", "session").Logger(), cart)
	feed := service.NewOrderFeed(client, session, cfg.Feed.PollInterval, log.With().Str("component", "order_feed").Logger())
	session.AddListener(feed)

	return &App{
		Config:   cfg,
		Log:      log,
		Store:    store,
		Backend:  client,
		Bus:      bus,
		Writer:   writer,
		Session:  session,
		Cart:     cart,
		Shop:     service.NewShopService(client, client, cart, session, bus, log.With().Str("component", "shop").Logger()),
		Checkout: service.NewCheckoutService(client, client, cart, session, bus, log.With().Str("component", "checkout").Logger()),
		Feed:     feed,
		Admin:    service.NewAdminService(client, session, bus, feed),
	}
}

// Restore picks up the persisted session. A backend that cannot be reached
// leaves the console logged out but keeps the token for the next start.
func (a *App) Restore(ctx context.Context) error {
	err := a.Session.Restore(ctx)
	if err != nil {
		a.Log.Warn().Err(err).Msg("session not restored")
	}
	return err
}

// Router builds the HTTP surface over the App's services.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Session:       a.Session,
		Shop:          a.Shop,
		Checkout:      a.Checkout,
		Orders:        a.Feed,
		Admin:         a.Admin,
		Notifications: a.Bus,
		Ready: map[string]handlers.Pinger{
			"store":   a.Store,
			"backend": a.Backend,
		},
		Log: a.Log,
	})
}

// Serve restores the session, starts the order feed and serves HTTP until
// ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	_ = a.Restore(ctx)

	feedCtx, stopFeed := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Feed.Run(feedCtx)
	}()
	defer func() {
		stopFeed()
		wg.Wait()
	}()

	e := a.Router()
	addr := ":" + a.Config.Port

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", addr).Str("store", a.Config.Store.Driver).Str("backend", a.Config.Backend.URL).Msg("console listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.Log.Info().Msg("shutting down")
	// Open SSE streams end with their subscriptions.
	a.Bus.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close flushes pending cart writes and releases the store. Idempotent.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.Writer.Close()
		a.Bus.Close()
		err = a.Store.Close()
	})
	return err
}
