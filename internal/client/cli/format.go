package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func displayName(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tRATING\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f (%d)\t%s\n", p.ID, p.Title, money(p.Price), p.Rating.Avg, p.Rating.Total, p.Category)
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p *models.Product) {
	fmt.Fprintf(w, "%s  %s\n", p.Title, money(p.Price))
	if p.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", p.Category)
	}
	fmt.Fprintf(w, "Rating:   %.1f from %d review(s)\n", p.Rating.Avg, p.Rating.Total)
	if len(p.Sizes) > 0 {
		sizes := make([]string, len(p.Sizes))
		for i, s := range p.Sizes {
			sizes[i] = fmt.Sprint(s)
		}
		fmt.Fprintf(w, "Sizes:    %s\n", strings.Join(sizes, ", "))
	}
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
}
