package bracketservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// UndoLastResult rolls the tournament back to the snapshot before the
// most recent one. The core has no notion of history; undo is purely a
// matter of which stored tree value is current.
func (s *BracketService) UndoLastResult(ctx context.Context, tournamentID uuid.UUID) (BracketOperationResult, error) {
	return s.serviceWrapper(ctx, "UndoLastResult", tournamentID.String(), func(ctx context.Context) (BracketOperationResult, error) {
		if _, err := s.repo.GetTournament(ctx, tournamentID); err != nil {
			if errors.Is(err, bracketdb.ErrTournamentNotFound) {
				return BracketOperationResult{
					Failure: &bracketevents.ResultUndoFailedPayloadV1{
						TournamentID: tournamentID,
						Reason:       "tournament not found",
					},
				}, nil
			}
			return BracketOperationResult{}, err
		}

		bracket, seq, err := s.repo.PopSnapshot(ctx, tournamentID)
		if err != nil {
			if errors.Is(err, bracketdb.ErrNoSnapshots) {
				return BracketOperationResult{
					Failure: &bracketevents.ResultUndoFailedPayloadV1{
						TournamentID: tournamentID,
						Reason:       "nothing to undo",
					},
				}, nil
			}
			return BracketOperationResult{}, err
		}

		// Undoing the deciding result re-opens the tournament.
		if bracket.Champion() == nil {
			if err := s.repo.SetTournamentStatus(ctx, tournamentID, bracketdb.TournamentStatusActive); err != nil {
				return BracketOperationResult{}, err
			}
		}

		s.metrics.RecordUndo(ctx)
		s.logger.InfoContext(ctx, "Result undone",
			attr.String("tournament_id", tournamentID.String()),
			attr.Int("restored_seq", seq),
			attr.ExtractCorrelationID(ctx),
		)

		return BracketOperationResult{
			Success: &bracketevents.ResultUndonePayloadV1{
				TournamentID: tournamentID,
				Progress:     bracket.Progress(),
			},
		}, nil
	})
}
