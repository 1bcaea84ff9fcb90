package brackethandlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	"github.com/courtside-club/bracket-bot/app/shared/attr"
)

// HandleResultUndoRequest rolls the tournament back one snapshot and
// publishes the undone (or failed) event.
func (h *BracketHandlers) HandleResultUndoRequest(msg *message.Message) ([]*message.Message, error) {
	wrapped := h.handlerWrapper(
		"HandleResultUndoRequest",
		&bracketevents.ResultUndoRequestedPayloadV1{},
		func(ctx context.Context, msg *message.Message, payload any) ([]*message.Message, error) {
			request := payload.(*bracketevents.ResultUndoRequestedPayloadV1)

			h.logger.InfoContext(ctx, "Received ResultUndoRequest event",
				attr.CorrelationIDFromMsg(msg),
				attr.String("tournament_id", request.TournamentID.String()),
			)

			result, err := h.service.UndoLastResult(ctx, request.TournamentID)
			if err != nil {
				return nil, fmt.Errorf("failed to undo result: %w", err)
			}

			if result.Failure != nil {
				failureMsg, err := h.helpers.CreateResultMessage(msg, result.Failure, bracketevents.ResultUndoFailedV1)
				if err != nil {
					return nil, fmt.Errorf("failed to create failure message: %w", err)
				}
				return []*message.Message{failureMsg}, nil
			}

			successMsg, err := h.helpers.CreateResultMessage(msg, result.Success, bracketevents.ResultUndoneV1)
			if err != nil {
				return nil, fmt.Errorf("failed to create success message: %w", err)
			}
			return []*message.Message{successMsg}, nil
		},
	)
	return wrapped(msg)
}
