package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/directoryview"
	"github.com/dmitrijs2005/userdir/internal/client/nav"
	"github.com/dmitrijs2005/userdir/internal/client/services"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	config      *config.Config
	store       *session.Store
	authService services.AuthService
	directory   *directoryview.Controller
	navigator   *nav.Navigator
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp builds the single session store and directory controller of the
// process and wires them to stdin and stdout.
func NewApp(c *config.Config, logger logging.Logger, reg prometheus.Registerer) (*App, error) {
	store := session.NewStore(logger)
	metrics := directory.NewMetrics(reg)

	fetcher, err := directory.NewHTTPClient(c.DirectoryURL,
		directory.WithTimeout(c.RequestTimeout),
		directory.WithMetrics(metrics),
	)
	if err != nil {
		return nil, err
	}

	navigator := nav.NewNavigator()
	ctrl := directoryview.New(store, fetcher, logger,
		directoryview.WithRedirector(navigator),
		directoryview.WithMetrics(metrics),
	)

	return &App{
		config:      c,
		store:       store,
		authService: services.NewAuthService(store, logger),
		directory:   ctrl,
		navigator:   navigator,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.directory.Close()

	fmt.Fprintln(a.out, "Welcome to userdir (type 'help' for commands)")
	a.logger.Info(ctx, "cli started", "directory", a.config.DirectoryURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthorized()
}

func (a *App) getStatus() string {
	s := string(a.navigator.Current())
	if u, ok := a.store.CurrentUser(); ok {
		s = u.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
