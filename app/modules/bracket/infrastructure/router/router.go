package bracketrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/courtside-club/bracket-bot/app/eventbus"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	brackethandlers "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/handlers"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
	"github.com/courtside-club/bracket-bot/app/shared/utils"
)

const (
	testEnvironmentFlag  = "APP_ENV"
	testEnvironmentValue = "test"
)

// BracketRouter registers the bracket module's handlers on the shared
// watermill router and publishes their result messages.
type BracketRouter struct {
	logger             *slog.Logger
	Router             *message.Router
	subscriber         eventbus.EventBus
	publisher          eventbus.EventBus
	metricsBuilder     *metrics.PrometheusMetricsBuilder
	prometheusRegistry *prometheus.Registry
	metricsEnabled     bool
}

// NewBracketRouter creates a new BracketRouter.
func NewBracketRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	prometheusRegistry *prometheus.Registry,
) *BracketRouter {
	inTestEnv := os.Getenv(testEnvironmentFlag) == testEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &BracketRouter{
		logger:             logger,
		Router:             router,
		subscriber:         subscriber,
		publisher:          publisher,
		metricsBuilder:     metricsBuilder,
		prometheusRegistry: prometheusRegistry,
		metricsEnabled:     prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds the shared middleware and registers the module's
// handlers.
func (r *BracketRouter) Configure(routerCtx context.Context, handlers brackethandlers.Handlers) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each request topic to its handler and
// publishes whatever result messages the handler produces.
func (r *BracketRouter) RegisterHandlers(ctx context.Context, handlers brackethandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		bracketevents.TournamentCreateRequestedV1: handlers.HandleTournamentCreateRequest,
		bracketevents.WinnerRecordRequestedV1:     handlers.HandleWinnerRecordRequest,
		bracketevents.ResultUndoRequestedV1:       handlers.HandleResultUndoRequest,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("bracket.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get(utils.TopicMetadataKey)
					if publishTopic == "" {
						r.logger.Error("handler result has no publish topic - message dropped",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
							attr.CorrelationIDFromMsg(m),
						)
						continue
					}

					r.logger.InfoContext(ctx, "publishing message",
						attr.String("topic", publishTopic),
						attr.String("handler", handlerName),
						attr.CorrelationIDFromMsg(m),
					)

					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *BracketRouter) Close() error {
	return r.Router.Close()
}
