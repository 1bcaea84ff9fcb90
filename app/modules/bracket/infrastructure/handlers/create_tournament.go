package brackethandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// HandleTournamentCreateRequest seeds and builds a bracket for the
// requested competitor list and publishes the created (or failed)
// event.
func (h *BracketHandlers) HandleTournamentCreateRequest(msg *message.Message) ([]*message.Message, error) {
	wrapped := h.handlerWrapper(
		"HandleTournamentCreateRequest",
		&bracketevents.TournamentCreateRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload any) ([]*message.Message, error) {
			request := payload.(*bracketevents.TournamentCreateRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received TournamentCreateRequest event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("tournament", request.Name),
				attr.Int("competitors", len(request.Competitors)),
			)

			competitors := make([]bracketdomain.Competitor, 0, len(request.Competitors))
			for _, c := range request.Competitors {
				competitors = append(competitors, toDomainCompetitor(c))
			}

			result, err := h.service.CreateTournament(ctx, request.Name, competitors)
			if err != nil {
				return nil, fmt.Errorf("failed to create tournament: %w", err)
			}

			if result.Failure != nil {
				failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, bracketevents.TournamentCreateFailedV1)
				if err != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", err)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, result.Success, bracketevents.TournamentCreatedV1)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrapped(msg)
}

func toDomainCompetitor(c bracketevents.CompetitorInput) bracketdomain.Competitor {
	out := bracketdomain.Competitor{
		ID:   bracketdomain.CompetitorID(c.ID),
		Name: c.Name,
		Seed: c.Seed,
	}
	if c.Pool != nil {
		pool := bracketdomain.PoolID(*c.Pool)
		out.Pool = &pool
	}
	return out
}
