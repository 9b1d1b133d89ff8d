// Package server initializes and runs the study assistant server. It opens
// the account store, selects the generation backend, handles graceful
// shutdown and starts the HTTP API.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/studymate/internal/cryptox"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/server/config"
	"github.com/dmitrijs2005/studymate/internal/server/generation"
	"github.com/dmitrijs2005/studymate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studymate/internal/server/rest"
	"github.com/dmitrijs2005/studymate/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	store        *repomanager.Store
	accounts     *services.AccountService
	studyService *services.StudyService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	scheme, err := cryptox.ParseScheme(c.CredentialScheme)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	gen, err := newGenerator(c)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	store, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	as := services.NewAccountService(store.Repository, logger.With("module", "accounts"), scheme)
	ss := services.NewStudyService(as, gen, generation.DecoderFor(gen.Name()), logger.With("module", "study"))

	logger.Info(ctx, "App configured",
		"store", store.Backend,
		"generator", gen.Name(),
		"model", gen.Model(),
		"credentials", string(scheme),
	)

	return &App{config: c, logger: logger, store: store, accounts: as, studyService: ss}, nil
}

func newGenerator(c *config.Config) (generation.Generator, error) {
	switch c.GeneratorBackend {
	case config.GeneratorGroq, "":
		return generation.NewGroq(c.GroqBaseURL, c.GroqAPIKey, c.GroqModel), nil
	case config.GeneratorAnthropic:
		return generation.NewAnthropic(c.AnthropicAPIKey, c.AnthropicModel), nil
	}
	return nil, fmt.Errorf("unknown generator backend %q", c.GeneratorBackend)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.config.StaticDir, app.config.ShutdownTimeout,
		app.logger, app.accounts, app.studyService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a termination signal arrives or the server fails, then
// releases the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
