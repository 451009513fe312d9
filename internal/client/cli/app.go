package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dantsyura/nexus-cli/internal/client/api"
	"github.com/dantsyura/nexus-cli/internal/client/config"
	"github.com/dantsyura/nexus-cli/internal/client/repositories/session"
	"github.com/dantsyura/nexus-cli/internal/client/store"
	"github.com/dantsyura/nexus-cli/internal/common"
	"github.com/dantsyura/nexus-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired-up client and the REPL's view state (the current
// search query and tag selection, both applied locally on every list).
type App struct {
	config   *config.Config
	client   api.Client
	store    *store.ConnectionStore
	resolver *store.RelationshipResolver
	log      logging.Logger
	reader   *bufio.Reader

	query        string
	selectedTags []string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	db, err := session.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	st := store.New(apiClient, session.NewSQLiteRepository(db), log)

	return &App{
		config:   c,
		client:   apiClient,
		store:    st,
		resolver: store.NewRelationshipResolver(st),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session if one exists and hands control to the
// REPL. It blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if err := a.store.RestoreSession(ctx); err != nil && !errors.Is(err, common.ErrNotLoggedIn) {
		printlnFn("Saved session could not be restored, please log in again.")
	}

	printlnFn("Welcome to Nexus CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.store.ActiveUserID() != 0
}

// getStatus renders the prompt decoration: the active user's name plus the
// current filter state, if any.
func (a *App) getStatus() string {
	s := ""
	if u := a.store.ActiveUser(); u != nil {
		s = u.FullName()
		if s == "" {
			s = fmt.Sprintf("user %d", u.Id)
		}
	}
	if a.query != "" || len(a.selectedTags) > 0 {
		s += " [filtered]"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
