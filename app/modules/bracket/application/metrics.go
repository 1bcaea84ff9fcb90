package bracketservice

import (
	"context"
	"time"
)

// BracketMetrics is the metrics surface the service records against.
// The prometheus implementation lives in infrastructure/metrics; tests
// use NoOpMetrics.
type BracketMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)

	RecordTournamentCreated(ctx context.Context, slotCount int)
	RecordWinnerApplied(ctx context.Context)
	RecordUndo(ctx context.Context)
}

// NoOpMetrics records nothing.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordTournamentCreated(context.Context, int)                   {}
func (NoOpMetrics) RecordWinnerApplied(context.Context)                            {}
func (NoOpMetrics) RecordUndo(context.Context)                                     {}
