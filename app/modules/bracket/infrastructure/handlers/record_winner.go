package brackethandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// HandleWinnerRecordRequest applies a declared winner to a match and
// publishes the recorded (or failed) event.
func (h *BracketHandlers) HandleWinnerRecordRequest(msg *message.Message) ([]*message.Message, error) {
	wrapped := h.handlerWrapper(
		"HandleWinnerRecordRequest",
		&bracketevents.WinnerRecordRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload any) ([]*message.Message, error) {
			request := payload.(*bracketevents.WinnerRecordRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received WinnerRecordRequest event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("tournament_id", request.TournamentID.String()),
				attr.String("match_id", request.MatchID),
				attr.String("winner_id", request.WinnerID),
			)

			result, err := h.service.RecordWinner(
				ctx,
				request.TournamentID,
				bracketdomain.MatchID(request.MatchID),
				bracketdomain.CompetitorID(request.WinnerID),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to record winner: %w", err)
			}

			if result.Failure != nil {
				failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, bracketevents.WinnerRecordFailedV1)
				if err != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", err)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, result.Success, bracketevents.WinnerRecordedV1)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrapped(msg)
}
