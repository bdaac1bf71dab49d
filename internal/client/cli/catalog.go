package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/services"
)

// Products lists the catalog; all arguments together form the search text.
func (a *App) Products(ctx context.Context, args []string) error {
	products, err := a.catalog.Products(ctx, services.ProductQuery{Search: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	printProducts(a.out, products)
	return nil
}

func (a *App) Product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("product <id>")
	}
	p, err := a.catalog.Product(ctx, args[0])
	if err != nil {
		return err
	}
	printProduct(a.out, p)
	return nil
}

func (a *App) Categories(ctx context.Context, _ []string) error {
	cats, err := a.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories.")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, c := range cats {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("category <id>")
	}
	products, err := a.catalog.ByCategory(ctx, args[0], services.ProductQuery{})
	if err != nil {
		return err
	}
	printProducts(a.out, products)
	return nil
}
