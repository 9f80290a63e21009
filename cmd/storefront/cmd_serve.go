package main

import (
	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/app"
)

// serveCmd runs the HTTP console
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console over HTTP",
	Long: `Serve the console's JSON API, the notification stream, health probes,
Prometheus metrics and Swagger docs on PORT. Orders are polled every
ORDER_POLL_INTERVAL while a session is active.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Serve(cmd.Context())
	},
}
