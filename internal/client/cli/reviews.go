package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) Reviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("reviews <productId>")
	}
	reviews, err := a.reviews.List(ctx, args[0])
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}
	for _, r := range reviews {
		fmt.Fprintf(a.out, "%s  %s\n", strings.Repeat("*", r.Rating), displayName(r.UserName, "anonymous"))
		if r.Comment != "" {
			fmt.Fprintf(a.out, "  %s\n", r.Comment)
		}
	}
	return nil
}

// Review posts a rating with an optional comment made of the remaining
// arguments.
func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("review <productId> <1-5> [comment]")
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("review <productId> <1-5> [comment]")
	}
	if err := a.reviews.Submit(ctx, args[0], rating, strings.Join(args[2:], " ")); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Thanks for your review!")
	return nil
}

func (a *App) Unreview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("unreview <productId>")
	}
	if err := a.reviews.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Review deleted.")
	return nil
}
