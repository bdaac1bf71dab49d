package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
)

// AddToCart looks the product up so the cart line carries its title, price
// and image.
func (a *App) AddToCart(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("add <productId> [size]")
	}
	p, err := a.catalog.Product(ctx, args[0])
	if err != nil {
		return err
	}

	size := cart.DefaultSize
	if len(args) == 2 {
		size = cart.ParseSize(args[1])
	}
	a.cart.Add(ctx, cart.Add{ProductID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image, Size: size})
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("remove <productId> [size]")
	}
	size := cart.DefaultSize
	if len(args) == 2 {
		size = cart.ParseSize(args[1])
	}
	a.cart.Remove(ctx, args[0], size)
	return nil
}

func (a *App) SetQuantity(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError("qty <productId> <size> <qty>")
	}
	a.cart.SetQuantity(ctx, args[0], cart.ParseSize(args[1]), cart.ParseQuantity(args[2]))
	return nil
}

func (a *App) ChangeSize(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usageError("size <productId> <from> <to>")
	}
	a.cart.ChangeSize(ctx, args[0], cart.ParseSize(args[1]), cart.ParseSize(args[2]))
	return nil
}

func (a *App) ClearCart(ctx context.Context, _ []string) error {
	a.cart.Clear(ctx)
	return nil
}

func (a *App) ShowCart(_ context.Context, _ []string) error {
	snap := a.cart.Snapshot()
	if len(snap.Items) == 0 {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "PRODUCT\tTITLE\tSIZE\tQTY\tPRICE\tSUBTOTAL")
	for _, it := range snap.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n", it.ProductID, it.Title, it.Size, it.Qty, money(it.Price), money(it.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d item(s), total %s\n", snap.Count, money(snap.Total))
	return nil
}

// Remote shows or edits the server-side cart.
func (a *App) Remote(ctx context.Context, args []string) error {
	const usage = usageError("remote [add <id> [qty] [size] | qty <id> <qty> [size] | rm <id> [size] | clear]")

	if len(args) == 0 {
		return a.showRemote(ctx)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "add":
		if len(rest) < 1 || len(rest) > 3 {
			return usage
		}
		qty := 1
		if len(rest) > 1 {
			qty = cart.ParseQuantity(rest[1])
		}
		if err := a.remote.Add(ctx, rest[0], qty, optionalSize(rest, 2)); err != nil {
			return err
		}
	case "qty":
		if len(rest) < 2 || len(rest) > 3 {
			return usage
		}
		if err := a.remote.Update(ctx, rest[0], cart.ParseQuantity(rest[1]), optionalSize(rest, 2)); err != nil {
			return err
		}
	case "rm":
		if len(rest) < 1 || len(rest) > 2 {
			return usage
		}
		if err := a.remote.Remove(ctx, rest[0], optionalSize(rest, 1)); err != nil {
			return err
		}
	case "clear":
		if err := a.remote.Clear(ctx); err != nil {
			return err
		}
	default:
		return usage
	}
	return a.showRemote(ctx)
}

// optionalSize returns args[i] normalized through cart.ParseSize, or "" when
// absent.
func optionalSize(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strconv.Itoa(cart.ParseSize(args[i]))
}

func (a *App) showRemote(ctx context.Context) error {
	items, err := a.remote.Items(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Your saved cart is empty.")
		return nil
	}

	tw := newTable(a.out)
	fmt.Fprintln(tw, "PRODUCT\tTITLE\tSIZE\tQTY")
	for _, it := range items {
		title := ""
		if it.Product != nil {
			title = it.Product.Title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", it.ProductID, title, displayName(it.Size, "-"), it.Quantity)
	}
	return tw.Flush()
}
