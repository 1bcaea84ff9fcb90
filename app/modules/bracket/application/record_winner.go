package bracketservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// RecordWinner applies a declared winner to the tournament's latest
// bracket snapshot and appends the resulting tree as a new snapshot.
//
// The core itself treats an unknown match, a bye match or a foreign
// winner id as a silent no-op; this layer is the strict-validation
// wrapper around it, turning each of those cases into an explicit
// failure payload instead of quietly recording nothing.
func (s *BracketService) RecordWinner(ctx context.Context, tournamentID uuid.UUID, matchID bracketdomain.MatchID, winnerID bracketdomain.CompetitorID) (BracketOperationResult, error) {
	return s.serviceWrapper(ctx, "RecordWinner", tournamentID.String(), func(ctx context.Context) (BracketOperationResult, error) {
		fail := func(reason string) BracketOperationResult {
			return BracketOperationResult{
				Failure: &bracketevents.WinnerRecordFailedPayloadV1{
					TournamentID: tournamentID,
					MatchID:      string(matchID),
					WinnerID:     string(winnerID),
					Reason:       reason,
				},
			}
		}

		if _, err := s.repo.GetTournament(ctx, tournamentID); err != nil {
			if errors.Is(err, bracketdb.ErrTournamentNotFound) {
				return fail("tournament not found"), nil
			}
			return BracketOperationResult{}, err
		}

		bracket, seq, err := s.repo.LatestBracket(ctx, tournamentID)
		if err != nil {
			return BracketOperationResult{}, err
		}

		match, ok := findMatch(bracket, matchID)
		if !ok {
			return fail("unknown match id"), nil
		}
		if match.HasBye() {
			return fail("bye matches are decided at bracket construction"), nil
		}
		if !matchHasCompetitor(match, winnerID) {
			return fail("winner is not a competitor of this match"), nil
		}

		next := bracketdomain.ApplyWinner(bracket, matchID, winnerID)
		newSeq, err := s.repo.AppendSnapshot(ctx, tournamentID, next)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to append bracket snapshot",
				attr.String("tournament_id", tournamentID.String()),
				attr.Int("previous_seq", seq),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return BracketOperationResult{}, err
		}

		payload := &bracketevents.WinnerRecordedPayloadV1{
			TournamentID: tournamentID,
			MatchID:      string(matchID),
			WinnerID:     string(winnerID),
			Progress:     next.Progress(),
		}
		if champ := next.Champion(); champ != nil {
			id := string(champ.ID)
			payload.ChampionID = &id
			if err := s.repo.SetTournamentStatus(ctx, tournamentID, bracketdb.TournamentStatusComplete); err != nil {
				return BracketOperationResult{}, err
			}
		}

		s.metrics.RecordWinnerApplied(ctx)
		s.logger.InfoContext(ctx, "Winner recorded",
			attr.String("tournament_id", tournamentID.String()),
			attr.String("match_id", string(matchID)),
			attr.String("winner_id", string(winnerID)),
			attr.Int("snapshot_seq", newSeq),
			attr.Int("progress", payload.Progress),
			attr.ExtractCorrelationID(ctx),
		)

		return BracketOperationResult{Success: payload}, nil
	})
}

func findMatch(b bracketdomain.Bracket, matchID bracketdomain.MatchID) (bracketdomain.Match, bool) {
	round, position, ok := matchID.Parse()
	if !ok || round > len(b.Rounds) || position > len(b.Rounds[round-1].Matches) {
		return bracketdomain.Match{}, false
	}
	return b.Rounds[round-1].Matches[position-1], true
}

func matchHasCompetitor(m bracketdomain.Match, id bracketdomain.CompetitorID) bool {
	if m.First != nil && m.First.ID == id {
		return true
	}
	return m.Second != nil && m.Second.ID == id
}
