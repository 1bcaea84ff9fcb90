package bracket

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/courtside-club/bracket-bot/app/eventbus"
	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	brackethandlers "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/handlers"
	bracketmetrics "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/metrics"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	bracketrouter "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/router"
	"github.com/courtside-club/bracket-bot/app/shared/observability"
	"github.com/courtside-club/bracket-bot/app/shared/utils"
	"github.com/courtside-club/bracket-bot/config"
)

// Module wires the bracket service, handlers and router together.
type Module struct {
	EventBus       eventbus.EventBus
	BracketService bracketservice.Service
	BracketRouter  *bracketrouter.BracketRouter
	config         *config.Config
	observability  observability.Observability
	helpers        utils.Helpers
	cancelFunc     context.CancelFunc
}

// NewBracketModule creates a new instance of the bracket module.
func NewBracketModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	repo bracketdb.Repository,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "bracket.NewBracketModule called")

	metrics := bracketmetrics.NewPrometheusMetrics(obs.Registry, cfg.Observability.MetricsNamespace)
	service := bracketservice.NewBracketService(repo, obs.Logger, metrics, obs.Tracer)
	handlers := brackethandlers.NewBracketHandlers(service, obs.Logger, obs.Tracer, helpers, metrics)

	bracketRouter := bracketrouter.NewBracketRouter(obs.Logger, router, eventBus, eventBus, obs.Registry)
	if err := bracketRouter.Configure(ctx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure bracket router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		BracketService: service,
		BracketRouter:  bracketRouter,
		config:         cfg,
		observability:  obs,
		helpers:        helpers,
	}, nil
}

// Run blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.observability.Logger.InfoContext(ctx, "Starting bracket module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Logger.Info("Bracket module stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
