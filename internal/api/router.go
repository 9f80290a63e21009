// Package api is the console's HTTP surface.
//
// @title        Storefront console API
// @version      1.0
// @description  Session, cart, checkout and order feed for one storefront user.
// @BasePath     /
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/storefront/internal/api/docs"
	"github.com/99minutos/storefront/internal/api/handler"
	"github.com/99minutos/storefront/internal/api/middleware"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/http/handlers"
)

// Deps is everything the router mounts.
type Deps struct {
	Session       ports.SessionService
	Shop          ports.ShopService
	Checkout      ports.CheckoutService
	Orders        ports.OrderFeed
	Admin         ports.AdminService
	Notifications handler.NotificationSource
	// Ready are the dependencies checked by /health/ready.
	Ready map[string]handlers.Pinger
	Log   zerolog.Logger
	// Registry receives the HTTP metrics; the default registry when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig(d.Registry)))

	// --- Health probes and tooling (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness over store and backend
	e.GET("/metrics", promHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(d.Session)
	catalogHandler := handler.NewCatalogHandler(d.Shop)
	cartHandler := handler.NewCartHandler(d.Shop)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout)
	orderHandler := handler.NewOrderHandler(d.Orders)
	favoriteHandler := handler.NewFavoriteHandler(d.Shop)
	adminHandler := handler.NewAdminHandler(d.Admin, d.Orders)
	notificationHandler := handler.NewNotificationHandler(d.Notifications)

	requireSession := middleware.RequireSession(d.Session)

	v1 := e.Group("/v1")

	// --- Session (public) ---
	v1.GET("/session", sessionHandler.Get)
	v1.POST("/session", sessionHandler.Login)
	v1.POST("/session/register", sessionHandler.Register)
	v1.POST("/session/refresh", sessionHandler.Refresh)
	v1.DELETE("/session", sessionHandler.Logout)

	// --- Catalog (public) ---
	v1.GET("/products", catalogHandler.List)
	v1.GET("/products/:id", catalogHandler.Get)

	v1.GET("/notifications/stream", notificationHandler.Stream)

	// --- Customer routes ---
	auth := v1.Group("", requireSession)
	auth.GET("/cart", cartHandler.Get)
	auth.DELETE("/cart", cartHandler.Clear)
	auth.POST("/cart/items", cartHandler.AddItem)
	auth.PATCH("/cart/items/:product_id", cartHandler.SetQuantity)
	auth.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)
	auth.POST("/checkout", checkoutHandler.Checkout)
	auth.GET("/orders", orderHandler.List)
	auth.POST("/orders/refresh", orderHandler.Refresh)
	auth.GET("/favorites", favoriteHandler.List)
	auth.POST("/favorites", favoriteHandler.Add)
	auth.DELETE("/favorites/:id", favoriteHandler.Remove)
	auth.POST("/ratings", favoriteHandler.Rate)

	// --- Back office ---
	admin := v1.Group("/admin", requireSession, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/orders", adminHandler.Orders)
	admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
	admin.GET("/customers", adminHandler.Customers)
	admin.DELETE("/customers/:id", adminHandler.DeleteCustomer)
	admin.POST("/products", adminHandler.CreateProduct)
	admin.PATCH("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	return e
}

// requestLogger feeds echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func promConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "storefront",
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func promHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
