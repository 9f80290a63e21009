package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/99minutos/storefront/internal/app"
	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

// productsCmd lists the catalog
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			products, err := a.Shop.ListProducts(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK\tSHIPPING")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.2f\n", p.ID, p.Name, p.Price, p.Stock, p.ShippingCost)
			}
			return w.Flush()
		})
	},
}

// cartCmd groups the cart operations
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show or change the cart",
	Long: `Show or change the logged-in identity's cart.

Available subcommands:
  list    - show items and totals (default)
  add     - add a product, merging with an existing line
  set     - set a line's quantity; 0 removes it
  remove  - remove a product
  clear   - empty the cart`,
	RunE: runCartList,
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show items and totals",
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID [QUANTITY]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
			qty = n
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			view, err := a.Shop.AddToCart(ctx, args[0], qty)
			if err != nil {
				return err
			}
			return printCart(cmd, view)
		})
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set PRODUCT_ID QUANTITY",
	Short: "Set a line's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			view, err := a.Shop.SetQuantity(ctx, args[0], qty)
			if err != nil {
				return err
			}
			return printCart(cmd, view)
		})
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			view, err := a.Shop.RemoveFromCart(ctx, args[0])
			if err != nil {
				return err
			}
			return printCart(cmd, view)
		})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			if err := a.Shop.ClearCart(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return nil
		})
	},
}

func init() {
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartSetCmd, cartRemoveCmd, cartClearCmd)
}

func runCartList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app.App) error {
		if err := requireLogin(a); err != nil {
			return err
		}
		view, err := a.Shop.CartView(ctx)
		if err != nil {
			return err
		}
		return printCart(cmd, view)
	})
}

func printCart(cmd *cobra.Command, view *ports.CartView) error {
	out := cmd.OutOrStdout()
	if len(view.Items) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tLINE")
	for _, it := range view.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n", it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Total())
	}
	fmt.Fprintf(w, "\t\t%d items\tsubtotal\t%.2f\n", view.Totals.ItemCount, view.Totals.Subtotal)
	shipping := fmt.Sprintf("%.2f", view.Totals.Shipping)
	if view.Totals.Subtotal >= domain.FreeShippingThreshold {
		shipping = "free"
	}
	fmt.Fprintf(w, "\t\t\tshipping\t%s\n", shipping)
	fmt.Fprintf(w, "\t\t\ttotal\t%.2f\n", view.Totals.Total)
	return w.Flush()
}
