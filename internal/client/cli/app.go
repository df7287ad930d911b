// Package cli wires the Don't Panic client together and drives the
// interactive command loop.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/dontpanic-sante/dpcli/internal/client/api"
	"github.com/dontpanic-sante/dpcli/internal/client/auth"
	"github.com/dontpanic-sante/dpcli/internal/client/cache"
	"github.com/dontpanic-sante/dpcli/internal/client/config"
	"github.com/dontpanic-sante/dpcli/internal/client/nav"
	"github.com/dontpanic-sante/dpcli/internal/client/render"
	"github.com/dontpanic-sante/dpcli/internal/client/sync"
	"github.com/dontpanic-sante/dpcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired components of the client. All interactive input flows
// through the single line reader: the REPL, the confirmation prompts, and
// the profile gate share one buffer over stdin.
type App struct {
	config        *config.Config
	client        api.Client
	db            *sql.DB
	session       *auth.Session
	gate          *auth.Gate
	nav           *screenNav
	renderer      *render.Renderer
	conversations *sync.Conversations
	prescriptions *sync.Prescriptions
	input         LineReader
	log           logging.Logger
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := cache.Open(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "err", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  c,
		client:  apiClient,
		db:      db,
		session: auth.NewSession(),
		input:   newLineReader(os.Stdin),
		log:     log,
	}

	a.nav = newScreenNav(os.Stdout)
	a.renderer = render.NewRenderer(os.Stdout, time.Now)
	a.gate = auth.NewGate(apiClient, a.session, a.nav, c.ProfileCountdown, a.input, os.Stdout, log)

	store := cache.NewConversationStore(db, log)
	a.conversations = sync.NewConversations(apiClient, store, a.renderer, a.confirm, log)
	a.prescriptions = sync.NewPrescriptions(apiClient, a.renderer, a.nav, log)

	return a, nil
}

// Run checks the session, shows the home screen and hands control to the
// command loop. It blocks until the user exits or the context is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Printf("%s ! Don't Panic (tape 'help' pour les commandes)\n", auth.Greeting(time.Now()))

	if a.gate.Check(ctx, nav.HomePath) {
		a.conversations.LoadAndDisplay(ctx)
	}

	go a.renderer.StartDateRefresher(ctx, a.config.DateRefreshInterval)

	runREPL(ctx, a, a.status, a.input)
}

// Close releases the API client and the cache database.
func (a *App) Close() {
	if err := a.client.Close(); err != nil {
		a.log.Warn(context.Background(), "fermeture du client API", "err", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "fermeture du cache", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.User()
	return ok
}

func (a *App) status() string {
	u, ok := a.session.User()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s)", u.DisplayName())
}

// confirm asks a yes/no question; only an explicit oui/o/y confirms.
func (a *App) confirm(prompt string) bool {
	answer, err := getSimpleText(a.input, prompt+" (oui/non)", os.Stdout)
	if err != nil {
		return false
	}
	switch answer {
	case "oui", "o", "y":
		return true
	}
	return false
}
