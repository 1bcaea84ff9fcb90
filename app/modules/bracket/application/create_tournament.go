package bracketservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// MinCompetitors is the smallest field that makes a bracket
// meaningful. The core's Seed only rejects an empty list; enforcing a
// real minimum is this layer's job.
const MinCompetitors = 2

// CreateTournament seeds and builds a fresh bracket over the given
// competitors and persists it as snapshot zero.
func (s *BracketService) CreateTournament(ctx context.Context, name string, competitors []bracketdomain.Competitor) (BracketOperationResult, error) {
	return s.serviceWrapper(ctx, "CreateTournament", name, func(ctx context.Context) (BracketOperationResult, error) {
		if reason := validateField(name, competitors); reason != "" {
			return BracketOperationResult{
				Failure: &bracketevents.TournamentCreateFailedPayloadV1{
					Name:   name,
					Reason: reason,
				},
			}, nil
		}

		slots, err := bracketdomain.Seed(competitors)
		if err != nil {
			return BracketOperationResult{
				Failure: &bracketevents.TournamentCreateFailedPayloadV1{
					Name:   name,
					Reason: err.Error(),
				},
			}, nil
		}

		bracket, err := bracketdomain.Build(slots)
		if err != nil {
			// Seed output is always a power of two; reaching this
			// means the seeder itself is broken.
			return BracketOperationResult{}, err
		}

		tournament := &bracketdb.Tournament{
			ID:              uuid.New(),
			Name:            name,
			SlotCount:       len(slots),
			CompetitorCount: len(competitors),
			Status:          bracketdb.TournamentStatusActive,
			CreatedAt:       time.Now().UTC(),
			UpdatedAt:       time.Now().UTC(),
		}
		if err := s.repo.CreateTournament(ctx, tournament, bracket); err != nil {
			s.logger.ErrorContext(ctx, "Failed to persist tournament",
				attr.String("tournament", name),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			return BracketOperationResult{}, err
		}

		s.metrics.RecordTournamentCreated(ctx, len(slots))
		s.logger.InfoContext(ctx, "Tournament created",
			attr.String("tournament_id", tournament.ID.String()),
			attr.Int("competitors", len(competitors)),
			attr.Int("slots", len(slots)),
			attr.ExtractCorrelationID(ctx),
		)

		return BracketOperationResult{
			Success: &bracketevents.TournamentCreatedPayloadV1{
				TournamentID: tournament.ID,
				Name:         name,
				SlotCount:    len(slots),
				ByeCount:     len(slots) - len(competitors),
				Bracket:      bracket,
			},
		}, nil
	})
}

func validateField(name string, competitors []bracketdomain.Competitor) string {
	if strings.TrimSpace(name) == "" {
		return "tournament name must not be empty"
	}
	if len(competitors) < MinCompetitors {
		return "at least two competitors are required"
	}
	seen := make(map[bracketdomain.CompetitorID]bool, len(competitors))
	for _, c := range competitors {
		if c.IsBye || bracketdomain.IsReservedID(c.ID) {
			return "competitor list must not contain byes"
		}
		if c.ID == "" {
			return "competitor id must not be empty"
		}
		if seen[c.ID] {
			return "duplicate competitor id: " + string(c.ID)
		}
		seen[c.ID] = true
	}
	return ""
}
