package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/storefront/internal/client/cart"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/credentials"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	auth    services.AuthService
	catalog services.CatalogService
	remote  services.RemoteCartService
	reviews services.ReviewService
	creds   *credentials.Store
	cart    *cart.Store

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB
}

// NewApp opens the local database and wires the gateway, services and cart
// store.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	repo := storage.NewSQLiteRepository(db)
	creds := credentials.NewStore(repo, logger)

	gateway, err := client.NewHTTPClient(c.APIBaseURL, creds, logger,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithRefreshTimeout(c.RefreshTimeout),
		client.WithRateLimit(c.RequestsPerSecond),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		logger:  logger,
		auth:    services.NewAuthService(gateway, creds, storage.NewMemoryRepository(), logger),
		catalog: services.NewCatalogService(gateway),
		remote:  services.NewRemoteCartService(gateway),
		reviews: services.NewReviewService(gateway),
		creds:   creds,
		cart:    cart.Load(ctx, repo, logger),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		db:      db,
	}
	return a, nil
}

// Run shows the welcome banner and serves commands until EOF or exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Storefront CLI (type 'help' for commands)")
	if u := a.auth.CurrentUser(ctx); u != nil && a.auth.IsLoggedIn(ctx) {
		fmt.Fprintf(a.out, "Signed in as %s\n", displayName(u.Name, u.Email))
	}
	if n := a.cart.Count(); n > 0 {
		fmt.Fprintf(a.out, "Your cart has %d item(s) from last time.\n", n)
	}

	unsubscribe := a.cart.Subscribe(func(s cart.Snapshot) {
		fmt.Fprintf(a.out, "Cart: %d item(s), total %s\n", s.Count, money(s.Total))
	})
	defer unsubscribe()

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.auth.IsLoggedIn(ctx)
}

func (a *App) status(ctx context.Context) string {
	s := ""
	if u := a.auth.CurrentUser(ctx); u != nil && a.auth.IsLoggedIn(ctx) {
		s = displayName(u.Email, u.Name) + " "
	}
	s += fmt.Sprintf("cart:%d", a.cart.Count())
	return "(" + s + ")"
}
