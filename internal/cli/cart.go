package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/khayr-gifts/khayr/internal/app/session"
	"github.com/khayr-gifts/khayr/internal/daemon"
)

// ─── Cart CLI ───────────────────────────────────────────────────────────────
// Cart commands operate on the default session, whose cart persists under
// the original storage slot and survives between invocations.

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)

	cartAddCmd.Flags().IntP("quantity", "q", 1, "Units to add")
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the persistent cart",
}

// ─── cart show ──────────────────────────────────────────────────────────────

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents and totals",
	RunE:  runCartShow,
}

func runCartShow(cmd *cobra.Command, args []string) error {
	engine, sess, err := cartSession(cmd, false)
	if err != nil {
		return err
	}
	defer engine.Close()

	if sess.Cart.IsEmpty() {
		fmt.Fprintln(os.Stdout, "Your cart is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s %-28s %-10s %-5s %s\n", "ID", "NAME", "PRICE", "QTY", "SUBTOTAL")
	for _, li := range sess.Cart.Items() {
		fmt.Fprintf(os.Stdout, "%-6d %-28s $%-9.2f %-5d $%.2f\n",
			li.ProductID, li.Name, li.Price, li.Quantity, li.Subtotal())
	}
	fmt.Fprintf(os.Stdout, "\n%d items, total $%.2f\n", sess.Cart.TotalItemCount(), sess.Cart.TotalPrice())
	return nil
}

// ─── cart add ───────────────────────────────────────────────────────────────

var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartAdd,
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("product id must be an integer: %q", args[0])
	}
	quantity, _ := cmd.Flags().GetInt("quantity")

	// Adding requires the product to resolve, so fetch the catalog first.
	engine, sess, err := cartSession(cmd, true)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := sess.Cart.Add(productID, quantity); err != nil {
		return err
	}

	item := itemFor(sess, productID)
	fmt.Fprintf(os.Stdout, "Added %d × %s. Cart now holds %d items ($%.2f).\n",
		quantity, item, sess.Cart.TotalItemCount(), sess.Cart.TotalPrice())
	return nil
}

// ─── cart remove ────────────────────────────────────────────────────────────

var cartRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("product id must be an integer: %q", args[0])
	}

	engine, sess, err := cartSession(cmd, false)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := sess.Cart.Remove(productID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed product %d. Cart now holds %d items.\n",
		productID, sess.Cart.TotalItemCount())
	return nil
}

// ─── cart set ───────────────────────────────────────────────────────────────

var cartSetCmd = &cobra.Command{
	Use:   "set PRODUCT_ID QUANTITY",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

func runCartSet(cmd *cobra.Command, args []string) error {
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("product id must be an integer: %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be an integer: %q", args[1])
	}

	engine, sess, err := cartSession(cmd, false)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := sess.Cart.SetQuantity(productID, quantity); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Cart now holds %d items ($%.2f).\n",
		sess.Cart.TotalItemCount(), sess.Cart.TotalPrice())
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// cartSession wires the engine and the default session, optionally loading
// the catalog first.
func cartSession(cmd *cobra.Command, loadCatalog bool) (*daemon.Engine, *session.Session, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, nil, err
	}
	if loadCatalog {
		if err := engine.Catalog.Load(cmd.Context()); err != nil {
			engine.Close()
			return nil, nil, fmt.Errorf("catalog unavailable: %w", err)
		}
	}
	return engine, engine.Sessions.Default(), nil
}

// itemFor names a cart line for output, falling back to the raw id.
func itemFor(sess *session.Session, productID int) string {
	for _, li := range sess.Cart.Items() {
		if li.ProductID == productID {
			return li.Name
		}
	}
	return strconv.Itoa(productID)
}
