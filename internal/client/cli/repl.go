package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error

	AddToCart(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	SetQuantity(ctx context.Context, args []string) error
	ChangeSize(ctx context.Context, args []string) error
	ClearCart(ctx context.Context, args []string) error
	ShowCart(ctx context.Context, args []string) error
	Remote(ctx context.Context, args []string) error

	Reviews(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error
	Unreview(ctx context.Context, args []string) error

	Login(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Google(ctx context.Context, args []string) error
	Callback(ctx context.Context, args []string) error
	Forgot(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
}

const (
	helpCommon = `Catalog:  products [search], product <id>, categories, category <id>
Reviews:  reviews <productId>
Cart:     add <productId> [size], remove <productId> [size], qty <productId> <size> <qty>,
          size <productId> <from> <to>, clear, cart
Other:    help, exit`
	helpGuest  = `Account:  login, register, google, callback <url>, forgot, reset <url>`
	helpMember = `Account:  whoami, logout
Reviews:  review <productId> <1-5> [comment], unreview <productId>
Remote:   remote [add <id> [qty] [size] | qty <id> <qty> [size] | rm <id> [size] | clear]`
)

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches the remaining tokens to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// A command error is printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("storefront %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpCommon)
			if a.isLoggedIn(ctx) {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "products":
			cmdErr = a.Products(ctx, args)
		case "product":
			cmdErr = a.Product(ctx, args)
		case "categories":
			cmdErr = a.Categories(ctx, args)
		case "category":
			cmdErr = a.Category(ctx, args)

		case "add":
			cmdErr = a.AddToCart(ctx, args)
		case "remove":
			cmdErr = a.RemoveFromCart(ctx, args)
		case "qty":
			cmdErr = a.SetQuantity(ctx, args)
		case "size":
			cmdErr = a.ChangeSize(ctx, args)
		case "clear":
			cmdErr = a.ClearCart(ctx, args)
		case "cart":
			cmdErr = a.ShowCart(ctx, args)
		case "remote":
			cmdErr = a.Remote(ctx, args)

		case "reviews":
			cmdErr = a.Reviews(ctx, args)
		case "review":
			cmdErr = a.Review(ctx, args)
		case "unreview":
			cmdErr = a.Unreview(ctx, args)

		case "login":
			cmdErr = a.Login(ctx, args)
		case "register":
			cmdErr = a.Register(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "google":
			cmdErr = a.Google(ctx, args)
		case "callback":
			cmdErr = a.Callback(ctx, args)
		case "forgot":
			cmdErr = a.Forgot(ctx, args)
		case "reset":
			cmdErr = a.Reset(ctx, args)
		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}

type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
