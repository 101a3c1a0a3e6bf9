// Package server assembles and runs the application: configuration,
// preference storage, the update loop, the lifecycle controller, and the
// console host, with graceful shutdown on signal or console exit.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/langcentral/langcentral/internal/config"
	"github.com/langcentral/langcentral/internal/gameloop"
	"github.com/langcentral/langcentral/internal/geoip"
	"github.com/langcentral/langcentral/internal/host"
	"github.com/langcentral/langcentral/internal/langcache"
	"github.com/langcentral/langcentral/internal/langstate"
	"github.com/langcentral/langcentral/internal/lifecycle"
	"github.com/langcentral/langcentral/internal/logging"
	"github.com/langcentral/langcentral/internal/prefs"
	"github.com/langcentral/langcentral/internal/session"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *prefs.Store
	geo     *geoip.Resolver
	loop    *gameloop.Loop
	ctrl    *lifecycle.Controller
	console *host.Console
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slogger)

	store, err := prefs.OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	// Geolocation is best-effort: without the database the subsystem still
	// works, every player just starts on the fallback language.
	var resolver lifecycle.CountryResolver
	geoReader, err := geoip.Open(cfg.GeoIPDatabasePath)
	if err != nil {
		logger.Warn(ctx, "geoip database unavailable, country hints disabled",
			"path", cfg.GeoIPDatabasePath, "err", err)
	} else {
		resolver = geoReader
	}

	loop := gameloop.New(cfg.TickInterval)
	console := host.NewConsole(loop, os.Stdout)

	ctrl := lifecycle.New(
		ctx,
		cfg,
		loop,
		session.NewTracker(),
		langstate.NewManager(cfg.FallbackLanguage),
		langcache.New(store.Repo()),
		resolver,
		console,
		logger,
	)
	ctrl.Bind(console)

	return &App{
		config:  cfg,
		logger:  logger,
		store:   store,
		geo:     geoReader,
		loop:    loop,
		ctrl:    ctrl,
		console: console,
	}, nil
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

// Run drives the update loop and the console until the console exits or a
// signal arrives, then drains outstanding background saves before closing
// the store.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.loop.Run(gctx)
	})

	// The console blocks on stdin and cannot be interrupted by ctx, so it
	// runs outside the group and signals completion through cancelFunc.
	go func() {
		if err := app.console.Run(gctx, os.Stdin); err != nil {
			app.logger.Error(gctx, "console error", "err", err)
		}
		cancelFunc()
	}()

	err := g.Wait()

	app.ctrl.Wait()
	// one more iteration so continuations queued by the draining saves run
	app.loop.Tick()

	if cerr := app.store.Close(); cerr != nil {
		app.logger.Error(ctx, "closing store", "err", cerr)
	}
	if app.geo != nil {
		if cerr := app.geo.Close(); cerr != nil {
			app.logger.Error(ctx, "closing geoip database", "err", cerr)
		}
	}

	app.logger.Info(ctx, "app stopped")
	return err
}
