package bracketservice

import (
	"context"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
)

// GetTournament returns the tournament row.
func (s *BracketService) GetTournament(ctx context.Context, tournamentID uuid.UUID) (*bracketdb.Tournament, error) {
	return s.repo.GetTournament(ctx, tournamentID)
}

// GetBracket returns the tournament's current tree.
func (s *BracketService) GetBracket(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, error) {
	bracket, _, err := s.repo.LatestBracket(ctx, tournamentID)
	return bracket, err
}

// AnnotateMatch attaches a free-text note to a match and stores the
// updated tree in place of the latest snapshot's successor. Unknown
// match ids fail explicitly, mirroring RecordWinner's strictness.
func (s *BracketService) AnnotateMatch(ctx context.Context, tournamentID uuid.UUID, matchID bracketdomain.MatchID, note string) (BracketOperationResult, error) {
	return s.serviceWrapper(ctx, "AnnotateMatch", tournamentID.String(), func(ctx context.Context) (BracketOperationResult, error) {
		bracket, _, err := s.repo.LatestBracket(ctx, tournamentID)
		if err != nil {
			return BracketOperationResult{}, err
		}

		if _, ok := findMatch(bracket, matchID); !ok {
			return BracketOperationResult{
				Failure: &bracketevents.WinnerRecordFailedPayloadV1{
					TournamentID: tournamentID,
					MatchID:      string(matchID),
					Reason:       "unknown match id",
				},
			}, nil
		}

		next := bracketdomain.Annotate(bracket, matchID, note)
		if _, err := s.repo.AppendSnapshot(ctx, tournamentID, next); err != nil {
			return BracketOperationResult{}, err
		}

		return BracketOperationResult{
			Success: &bracketevents.WinnerRecordedPayloadV1{
				TournamentID: tournamentID,
				MatchID:      string(matchID),
				Progress:     next.Progress(),
			},
		}, nil
	})
}
