package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/kbcli/internal/client/api"
	"github.com/dmitrijs2005/kbcli/internal/client/config"
	"github.com/dmitrijs2005/kbcli/internal/client/localstore"
	"github.com/dmitrijs2005/kbcli/internal/client/services"
	"github.com/dmitrijs2005/kbcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the client services together and carries the interactive
// state of one kbcli run.
type App struct {
	config  *config.Config
	api     api.Client
	session services.SessionService
	docs    services.DocumentService
	search  services.SearchService
	qa      services.QAService
	store   *localstore.SQLiteStore
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	store, err := localstore.Open(ctx, c.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config:  c,
		api:     apiClient,
		session: services.NewSessionService(apiClient, store, log),
		docs:    services.NewDocumentService(apiClient),
		search:  services.NewSearchService(apiClient, store, log),
		qa:      services.NewQAService(apiClient, store, log),
		store:   store,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores persisted state and enters the REPL. The session is
// bootstrapped before the first prompt, so authenticated commands are
// available immediately when a previous login survived.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.session.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap session: %w", err)
	}
	if err := a.search.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore search state: %w", err)
	}
	if err := a.qa.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore transcript: %w", err)
	}

	printlnFn("Welcome to kbcli (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	u := a.session.CurrentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.Role)
}
