package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/app"
)

// checkoutCmd places an order for the cart
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart and print the payment link",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			res, err := a.Checkout.Checkout(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "order %s placed, total %.2f\n", res.OrderID, res.Total)
			fmt.Fprintf(out, "complete payment at: %s\n", res.CheckoutURL)
			return nil
		})
	},
}

// ordersCmd lists orders; admins see every customer's
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			orders, err := a.Feed.Refresh(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tITEMS\tTOTAL\tCREATED")
			for _, o := range orders {
				created := "-"
				if !o.CreatedAt.IsZero() {
					created = o.CreatedAt.Format("2006-01-02 15:04")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n", o.ID, o.Status, len(o.Items), o.Total, created)
			}
			return w.Flush()
		})
	},
}
