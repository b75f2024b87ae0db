package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/me/unishop/internal/api"
	"github.com/me/unishop/internal/cart"
	"github.com/me/unishop/internal/config"
	"github.com/me/unishop/internal/session"
	"github.com/me/unishop/internal/store"
)

// App wires the client stack for one CLI invocation: store, API client,
// session manager, and cart state machine. Commands create it, act, and
// Close it, mirroring the app bootstrap → act → shutdown cycle.
type App struct {
	Store    store.Store
	Client   *api.Client
	Sessions *session.Manager
	Cart     *cart.Manager
}

// newApp builds the stack and restores the persisted session. The cart
// subscribes to session transitions before Restore runs, so a successful
// restore immediately triggers the remote cart refresh.
func newApp(ctx context.Context) (*App, error) {
	if flagDB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(flagDB), 0o700); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	st, err := store.NewSQLiteStore(flagDB, logger)
	if err != nil {
		return nil, fmt.Errorf("open session cache: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate session cache: %w", err)
	}

	client := api.NewClient(flagServer, config.LoadClient().Timeout, logger)
	sessions := session.NewManager(client, st, logger)
	carts := cart.NewManager(client, &consoleNotifier{}, logger)
	sessions.Subscribe(carts.HandleSessionChange)

	sessions.Restore(ctx)

	return &App{Store: st, Client: client, Sessions: sessions, Cart: carts}, nil
}

// Close drains in-flight cart calls and releases the store.
func (a *App) Close() error {
	a.Cart.Wait()
	return a.Store.Close()
}

// consoleNotifier is the CLI's notification/redirect sink.
type consoleNotifier struct{}

func (consoleNotifier) AuthRequired() {
	fmt.Println("You need to sign in first. Run: unishop login")
}

func (consoleNotifier) OperationFailed(op, productID string, err error) {
	if productID != "" {
		fmt.Printf("Cart %s for %s failed: %v\n", op, productID, err)
		return
	}
	fmt.Printf("Cart %s failed: %v\n", op, err)
}
