package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/unishop/pkg/model"
)

func newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		newCartListCmd(),
		newCartAddCmd(),
		newCartRemoveCmd(),
		newCartUpdateCmd(),
		newCartClearCmd(),
	)
	return cmd
}

func newCartListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			// Let the post-restore refresh settle before reading.
			app.Cart.Wait()

			state := app.Cart.State()
			if len(state.Items) == 0 {
				fmt.Println("Cart is empty.")
				return nil
			}

			fmt.Printf("%-14s  %-28s  %5s  %10s  %10s\n", "ID", "NAME", "QTY", "PRICE", "SUBTOTAL")
			fmt.Printf("%-14s  %-28s  %5s  %10s  %10s\n", "--", "----", "---", "-----", "--------")
			for _, it := range state.Items {
				fmt.Printf("%-14s  %-28s  %5d  %10.2f  %10.2f\n",
					it.ProductID, it.Name, it.Quantity, it.UnitPrice, it.Subtotal())
			}
			fmt.Printf("\n%d item(s), total %.2f\n", state.TotalItems, state.TotalPrice)
			return nil
		},
	}
}

func newCartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID [QUANTITY]",
		Short: "Add a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity := 1
			if len(args) == 2 {
				q, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity must be a number: %w", err)
				}
				quantity = q
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			app.Cart.Wait()

			product, err := lookupProduct(app, cmd, args[0])
			if err != nil {
				return err
			}

			if err := app.Cart.Add(cmd.Context(), *product, quantity); err != nil {
				return cartErr(err)
			}
			app.Cart.Wait()

			fmt.Printf("Added %d × %s. Cart now has %d item(s).\n",
				quantity, product.Name, app.Cart.State().TotalItems)
			return nil
		},
	}
}

func newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PRODUCT_ID",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			app.Cart.Wait()

			if err := app.Cart.Remove(cmd.Context(), args[0]); err != nil {
				return cartErr(err)
			}
			app.Cart.Wait()

			fmt.Printf("Removed %s. Cart now has %d item(s).\n", args[0], app.Cart.State().TotalItems)
			return nil
		},
	}
}

func newCartUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update PRODUCT_ID QUANTITY",
		Short: "Set a product's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			app.Cart.Wait()

			if err := app.Cart.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
				return cartErr(err)
			}
			app.Cart.Wait()

			fmt.Printf("Updated %s. Cart now has %d item(s).\n", args[0], app.Cart.State().TotalItems)
			return nil
		},
	}
}

func newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()
			app.Cart.Wait()

			if err := app.Cart.Clear(cmd.Context()); err != nil {
				return cartErr(err)
			}
			app.Cart.Wait()

			fmt.Println("Cart cleared.")
			return nil
		},
	}
}

// lookupProduct resolves a product ID against the catalog so the cart line
// carries name, price, and category.
func lookupProduct(app *App, cmd *cobra.Command, id string) (*model.Product, error) {
	products, err := app.Client.FetchProducts(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s not found in catalog", id)
}

// cartErr keeps gated mutations quiet on the error path: the notifier has
// already told the user to sign in, so the command just exits non-zero.
func cartErr(err error) error {
	if errors.Is(err, model.ErrAuthRequired) {
		return fmt.Errorf("not signed in")
	}
	return err
}
