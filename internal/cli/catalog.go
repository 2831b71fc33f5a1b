package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khayr-gifts/khayr/internal/domain"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)

	catalogListCmd.Flags().StringP("category", "c", "all", "Filter by category")
	catalogListCmd.Flags().Bool("featured", false, "Only featured products")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the product catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and list the product catalog",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Catalog.Load(cmd.Context()); err != nil {
		// Empty catalog is a rendered state, not a fatal one.
		fmt.Fprintf(os.Stderr, "warning: catalog unavailable: %v\n", err)
	}

	category, _ := cmd.Flags().GetString("category")
	featuredOnly, _ := cmd.Flags().GetBool("featured")

	products := engine.Catalog.ByCategory(category)
	if featuredOnly {
		products = engine.Catalog.Filter(func(p domain.Product) bool {
			return p.Featured && (category == "all" || category == "" || p.Category == category)
		})
	}

	if len(products) == 0 {
		fmt.Fprintln(os.Stdout, "No products.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-6s %-28s %-10s %-12s %s\n", "ID", "NAME", "PRICE", "CATEGORY", "FEATURED")
	for _, p := range products {
		featured := ""
		if p.Featured {
			featured = "★"
		}
		fmt.Fprintf(os.Stdout, "%-6d %-28s $%-9.2f %-12s %s\n", p.ID, p.Name, p.Price, p.Category, featured)
	}
	return nil
}
