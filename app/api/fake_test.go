package api

import (
	"context"

	"github.com/google/uuid"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	rosterservice "github.com/courtside-club/bracket-bot/app/modules/roster/application"
)

type fakeBracketService struct {
	result     bracketservice.BracketOperationResult
	err        error
	tournament *bracketdb.Tournament
	bracket    bracketdomain.Bracket
	getErr     error

	recordMatch  bracketdomain.MatchID
	recordWinner bracketdomain.CompetitorID
	annotation   string
}

func (f *fakeBracketService) CreateTournament(_ context.Context, name string, competitors []bracketdomain.Competitor) (bracketservice.BracketOperationResult, error) {
	return f.result, f.err
}

func (f *fakeBracketService) RecordWinner(_ context.Context, _ uuid.UUID, matchID bracketdomain.MatchID, winnerID bracketdomain.CompetitorID) (bracketservice.BracketOperationResult, error) {
	f.recordMatch = matchID
	f.recordWinner = winnerID
	return f.result, f.err
}

func (f *fakeBracketService) UndoLastResult(context.Context, uuid.UUID) (bracketservice.BracketOperationResult, error) {
	return f.result, f.err
}

func (f *fakeBracketService) AnnotateMatch(_ context.Context, _ uuid.UUID, _ bracketdomain.MatchID, annotation string) (bracketservice.BracketOperationResult, error) {
	f.annotation = annotation
	return f.result, f.err
}

func (f *fakeBracketService) GetTournament(context.Context, uuid.UUID) (*bracketdb.Tournament, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.tournament, nil
}

func (f *fakeBracketService) GetBracket(context.Context, uuid.UUID) (bracketdomain.Bracket, error) {
	if f.getErr != nil {
		return bracketdomain.Bracket{}, f.getErr
	}
	return f.bracket, nil
}

type fakeRosterService struct {
	result   rosterservice.ImportResult
	err      error
	filename string
}

func (f *fakeRosterService) ImportRoster(_ context.Context, filename string, _ []byte) (rosterservice.ImportResult, error) {
	f.filename = filename
	return f.result, f.err
}
