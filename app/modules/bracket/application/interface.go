package bracketservice

import (
	"context"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
)

// Service is the bracket module's application surface. All mutating
// operations return a BracketOperationResult whose Success/Failure
// payloads are the module's event payload types.
type Service interface {
	CreateTournament(ctx context.Context, name string, competitors []bracketdomain.Competitor) (BracketOperationResult, error)
	RecordWinner(ctx context.Context, tournamentID uuid.UUID, matchID bracketdomain.MatchID, winnerID bracketdomain.CompetitorID) (BracketOperationResult, error)
	UndoLastResult(ctx context.Context, tournamentID uuid.UUID) (BracketOperationResult, error)
	AnnotateMatch(ctx context.Context, tournamentID uuid.UUID, matchID bracketdomain.MatchID, note string) (BracketOperationResult, error)

	GetTournament(ctx context.Context, tournamentID uuid.UUID) (*bracketdb.Tournament, error)
	GetBracket(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, error)
}
