package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/pkg/config"
	"github.com/99minutos/storefront/pkg/logger"
)

var (
	// Global flags
	logLevel   string
	backendURL string
	storeFlag  string

	cfg *config.Config
	log zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront console: session, cart and checkout against the shop backend",
	Long: `storefront keeps one user's session and cart for the shop backend.

Run "storefront serve" for the HTTP console, or use the subcommands directly
from a terminal. The session token and carts persist in the configured store
(SQLite by default), so a login survives between invocations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadContext(cmd.Context(), nil)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.LogLevel = logLevel
		}
		if backendURL != "" {
			loaded.Backend.URL = backendURL
		}
		if storeFlag != "" {
			loaded.Store.Driver = storeFlag
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  cfg.IsDevelopment(),
			Output:  os.Stderr,
			Service: "storefront",
			Env:     cfg.Env,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL; overrides BACKEND_URL")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "state store (sqlite, redis, mongo, memory); overrides STORE_DRIVER")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
	rootCmd.AddCommand(productsCmd, cartCmd)
	rootCmd.AddCommand(checkoutCmd, ordersCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp builds the console, restores the persisted session, runs fn and
// flushes state. Notifications raised while fn runs are printed to stderr.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("close")
		}
	}()

	sub := a.Bus.Subscribe()
	defer sub.Close()

	_ = a.Restore(ctx)
	runErr := fn(ctx, a)

	printNotifications(cmd, sub.C())
	return runErr
}

func printNotifications(cmd *cobra.Command, ch <-chan domain.Notification) {
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", n.Level, n.Message)
		default:
			return
		}
	}
}

// requireLogin fails with a readable hint when no session is active.
func requireLogin(a *app.App) error {
	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("%w: run \"storefront login\" first", domain.ErrUnauthenticated)
	}
	return nil
}
