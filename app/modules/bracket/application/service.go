package bracketservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// BracketService implements the Service interface.
type BracketService struct {
	repo    bracketdb.Repository
	logger  *slog.Logger
	metrics BracketMetrics
	tracer  trace.Tracer
}

// NewBracketService creates a new BracketService.
func NewBracketService(
	repo bracketdb.Repository,
	logger *slog.Logger,
	metrics BracketMetrics,
	tracer trace.Tracer,
) *BracketService {
	return &BracketService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
	}
}

// serviceWrapper carries the tracing, metrics, logging and panic
// recovery every operation shares.
func (s *BracketService) serviceWrapper(
	ctx context.Context,
	operationName string,
	subject string,
	op func(ctx context.Context) (BracketOperationResult, error),
) (result BracketOperationResult, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("subject", subject),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.String("subject", subject),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		span.RecordError(err)
		s.metrics.RecordOperationFailure(ctx, operationName)
		return result, err
	}

	if result.Failure != nil {
		s.metrics.RecordOperationFailure(ctx, operationName)
	} else {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}
	return result, nil
}
