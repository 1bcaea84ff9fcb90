package brackethandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
	"github.com/courtside-club/bracket-bot/app/shared/utils"
)

// BracketHandlers handles bracket-related events.
type BracketHandlers struct {
	service        bracketservice.Service
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        bracketservice.BracketMetrics
	helpers        utils.Helpers
	handlerWrapper func(handlerName string, unmarshalTo any, handlerFunc handlerLogic) message.HandlerFunc
}

type handlerLogic func(ctx context.Context, msg *message.Message, payload any) ([]*message.Message, error)

// NewBracketHandlers creates a new BracketHandlers.
func NewBracketHandlers(
	service bracketservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	metrics bracketservice.BracketMetrics,
) Handlers {
	return &BracketHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: metrics,
		handlerWrapper: func(handlerName string, unmarshalTo any, handlerFunc handlerLogic) message.HandlerFunc {
			return handlerWrapper(handlerName, unmarshalTo, handlerFunc, logger, metrics, tracer, helpers)
		},
	}
}

// handlerWrapper carries the tracing, logging, metrics and payload
// unmarshalling every handler shares.
func handlerWrapper(
	handlerName string,
	unmarshalTo any,
	handlerFunc handlerLogic,
	logger *slog.Logger,
	metrics bracketservice.BracketMetrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		ctx = attr.WithCorrelationID(ctx, middleware.MessageCorrelationID(msg))

		metrics.RecordOperationAttempt(ctx, handlerName)
		startTime := time.Now()
		defer func() {
			metrics.RecordOperationDuration(ctx, handlerName, time.Since(startTime))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		if unmarshalTo != nil {
			if err := helpers.UnmarshalPayload(msg, unmarshalTo); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				metrics.RecordOperationFailure(ctx, handlerName)
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		result, err := handlerFunc(ctx, msg, unmarshalTo)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName)
			return nil, err
		}

		metrics.RecordOperationSuccess(ctx, handlerName)
		return result, nil
	}
}
