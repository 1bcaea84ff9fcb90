package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/courtside-club/bracket-bot/app/api"
	"github.com/courtside-club/bracket-bot/app/eventbus"
	"github.com/courtside-club/bracket-bot/app/modules/bracket"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	rosterservice "github.com/courtside-club/bracket-bot/app/modules/roster/application"
	"github.com/courtside-club/bracket-bot/app/modules/roster/application/parsers"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
	"github.com/courtside-club/bracket-bot/app/shared/observability"
	"github.com/courtside-club/bracket-bot/app/shared/utils"
	"github.com/courtside-club/bracket-bot/config"
)

// App assembles the database, event bus, watermill router, modules and
// the HTTP API.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	EventBus      eventbus.EventBus
	Router        *message.Router
	BracketModule *bracket.Module
	APIServer     *api.Server

	db         *bun.DB
	cancelFunc context.CancelFunc
}

// Initialize wires every component. Nothing runs until Run is called.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs *observability.Observability) error {
	app.Config = cfg
	app.Observability = obs

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	app.db = bun.NewDB(pgdb, pgdialect.New())
	if err := app.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, obs.Logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	if err := eventbus.InitializeStreams(ctx, bus); err != nil {
		return fmt.Errorf("failed to initialize streams: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(obs.Logger)
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return fmt.Errorf("failed to create watermill router: %w", err)
	}
	app.Router = router

	repo := &bracketdb.BracketDBImpl{
		DB:           app.db,
		HistoryBound: cfg.Bracket.SnapshotHistory,
	}
	helpers := utils.NewHelpers()

	bracketModule, err := bracket.NewBracketModule(ctx, cfg, *obs, repo, bus, router, helpers)
	if err != nil {
		return fmt.Errorf("failed to initialize bracket module: %w", err)
	}
	app.BracketModule = bracketModule

	rosters := rosterservice.NewRosterService(parsers.NewFactory(), obs.Logger, obs.Tracer)
	app.APIServer = api.NewServer(cfg.HTTP.Addr, bracketModule.BracketService, rosters, obs.Registry, obs.Logger)

	return nil
}

// Run starts the watermill router, the bracket module and the HTTP
// API, then blocks until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.cancelFunc = cancel
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil && ctx.Err() == nil {
			app.Observability.Logger.Error("Watermill router stopped", attr.Error(err))
			cancel()
		}
	}()

	wg.Add(1)
	go app.BracketModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.APIServer.Start(); err != nil {
			app.Observability.Logger.Error("HTTP server stopped", attr.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx := context.Background()
	if err := app.APIServer.Shutdown(shutdownCtx); err != nil {
		app.Observability.Logger.Error("HTTP server shutdown failed", attr.Error(err))
	}

	wg.Wait()
	return nil
}

// Close releases every resource in reverse start order.
func (app *App) Close() {
	if app.cancelFunc != nil {
		app.cancelFunc()
	}
	if app.BracketModule != nil {
		_ = app.BracketModule.Close()
	}
	if app.Router != nil {
		_ = app.Router.Close()
	}
	if app.EventBus != nil {
		_ = app.EventBus.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
