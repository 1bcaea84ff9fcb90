package brackethandlers

import (
	"context"

	"github.com/google/uuid"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
)

// fakeService returns canned results and records what it was called
// with.
type fakeService struct {
	result bracketservice.BracketOperationResult
	err    error

	createName        string
	createCompetitors []bracketdomain.Competitor
	recordTournament  uuid.UUID
	recordMatch       bracketdomain.MatchID
	recordWinner      bracketdomain.CompetitorID
	undoTournament    uuid.UUID
}

func (f *fakeService) CreateTournament(_ context.Context, name string, competitors []bracketdomain.Competitor) (bracketservice.BracketOperationResult, error) {
	f.createName = name
	f.createCompetitors = competitors
	return f.result, f.err
}

func (f *fakeService) RecordWinner(_ context.Context, tournamentID uuid.UUID, matchID bracketdomain.MatchID, winnerID bracketdomain.CompetitorID) (bracketservice.BracketOperationResult, error) {
	f.recordTournament = tournamentID
	f.recordMatch = matchID
	f.recordWinner = winnerID
	return f.result, f.err
}

func (f *fakeService) UndoLastResult(_ context.Context, tournamentID uuid.UUID) (bracketservice.BracketOperationResult, error) {
	f.undoTournament = tournamentID
	return f.result, f.err
}

func (f *fakeService) AnnotateMatch(context.Context, uuid.UUID, bracketdomain.MatchID, string) (bracketservice.BracketOperationResult, error) {
	return f.result, f.err
}

func (f *fakeService) GetTournament(context.Context, uuid.UUID) (*bracketdb.Tournament, error) {
	return nil, bracketdb.ErrTournamentNotFound
}

func (f *fakeService) GetBracket(context.Context, uuid.UUID) (bracketdomain.Bracket, error) {
	return bracketdomain.Bracket{}, bracketdb.ErrNoSnapshots
}
