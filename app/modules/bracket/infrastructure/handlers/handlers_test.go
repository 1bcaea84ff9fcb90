package brackethandlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	"github.com/courtside-club/bracket-bot/app/shared/observability"
	"github.com/courtside-club/bracket-bot/app/shared/utils"
)

func newTestHandlers(svc *fakeService) Handlers {
	obs := observability.NewNoOp()
	return NewBracketHandlers(
		svc,
		obs.Logger,
		noop.NewTracerProvider().Tracer("test"),
		utils.NewHelpers(),
		bracketservice.NoOpMetrics{},
	)
}

func requestMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	msg := message.NewMessage(watermill.NewUUID(), data)
	middleware.SetCorrelationID("corr-123", msg)
	return msg
}

func TestHandleTournamentCreateRequest_Success(t *testing.T) {
	tournamentID := uuid.New()
	svc := &fakeService{
		result: bracketservice.BracketOperationResult{
			Success: &bracketevents.TournamentCreatedPayloadV1{
				TournamentID: tournamentID,
				Name:         "Club Open",
				SlotCount:    8,
				ByeCount:     3,
			},
		},
	}
	handlers := newTestHandlers(svc)

	pool := "A"
	msg := requestMessage(t, bracketevents.TournamentCreateRequestedPayloadV1{
		Name: "Club Open",
		Competitors: []bracketevents.CompetitorInput{
			{ID: "c1", Name: "Alice", Pool: &pool},
			{ID: "c2", Name: "Bob"},
		},
	})

	out, err := handlers.HandleTournamentCreateRequest(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, bracketevents.TournamentCreatedV1, out[0].Metadata.Get(utils.TopicMetadataKey))
	assert.Equal(t, "corr-123", middleware.MessageCorrelationID(out[0]))

	var published bracketevents.TournamentCreatedPayloadV1
	require.NoError(t, json.Unmarshal(out[0].Payload, &published))
	assert.Equal(t, tournamentID, published.TournamentID)
	assert.Equal(t, 8, published.SlotCount)

	assert.Equal(t, "Club Open", svc.createName)
	require.Len(t, svc.createCompetitors, 2)
	assert.Equal(t, bracketdomain.CompetitorID("c1"), svc.createCompetitors[0].ID)
	require.NotNil(t, svc.createCompetitors[0].Pool)
	assert.Equal(t, bracketdomain.PoolID("A"), *svc.createCompetitors[0].Pool)
}

func TestHandleTournamentCreateRequest_Failure(t *testing.T) {
	svc := &fakeService{
		result: bracketservice.BracketOperationResult{
			Failure: &bracketevents.TournamentCreateFailedPayloadV1{
				Name:   "Club Open",
				Reason: "at least two competitors are required",
			},
		},
	}
	handlers := newTestHandlers(svc)

	msg := requestMessage(t, bracketevents.TournamentCreateRequestedPayloadV1{Name: "Club Open"})

	out, err := handlers.HandleTournamentCreateRequest(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, bracketevents.TournamentCreateFailedV1, out[0].Metadata.Get(utils.TopicMetadataKey))
}

func TestHandleTournamentCreateRequest_BadPayload(t *testing.T) {
	handlers := newTestHandlers(&fakeService{})

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	out, err := handlers.HandleTournamentCreateRequest(msg)
	require.Error(t, err)
	assert.Nil(t, out)
}

func TestHandleWinnerRecordRequest_Success(t *testing.T) {
	tournamentID := uuid.New()
	svc := &fakeService{
		result: bracketservice.BracketOperationResult{
			Success: &bracketevents.WinnerRecordedPayloadV1{
				TournamentID: tournamentID,
				MatchID:      "r1-m2",
				WinnerID:     "c3",
				Progress:     14,
			},
		},
	}
	handlers := newTestHandlers(svc)

	msg := requestMessage(t, bracketevents.WinnerRecordRequestedPayloadV1{
		TournamentID: tournamentID,
		MatchID:      "r1-m2",
		WinnerID:     "c3",
	})

	out, err := handlers.HandleWinnerRecordRequest(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, bracketevents.WinnerRecordedV1, out[0].Metadata.Get(utils.TopicMetadataKey))

	assert.Equal(t, tournamentID, svc.recordTournament)
	assert.Equal(t, bracketdomain.MatchID("r1-m2"), svc.recordMatch)
	assert.Equal(t, bracketdomain.CompetitorID("c3"), svc.recordWinner)
}

func TestHandleWinnerRecordRequest_ServiceError(t *testing.T) {
	svc := &fakeService{err: errors.New("database down")}
	handlers := newTestHandlers(svc)

	msg := requestMessage(t, bracketevents.WinnerRecordRequestedPayloadV1{
		TournamentID: uuid.New(),
		MatchID:      "r1-m1",
		WinnerID:     "c1",
	})

	out, err := handlers.HandleWinnerRecordRequest(msg)
	require.ErrorContains(t, err, "database down")
	assert.Nil(t, out)
}

func TestHandleResultUndoRequest(t *testing.T) {
	tournamentID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &fakeService{
			result: bracketservice.BracketOperationResult{
				Success: &bracketevents.ResultUndonePayloadV1{
					TournamentID: tournamentID,
					Progress:     33,
				},
			},
		}
		handlers := newTestHandlers(svc)

		out, err := handlers.HandleResultUndoRequest(requestMessage(t, bracketevents.ResultUndoRequestedPayloadV1{
			TournamentID: tournamentID,
		}))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, bracketevents.ResultUndoneV1, out[0].Metadata.Get(utils.TopicMetadataKey))
		assert.Equal(t, tournamentID, svc.undoTournament)
	})

	t.Run("failure", func(t *testing.T) {
		svc := &fakeService{
			result: bracketservice.BracketOperationResult{
				Failure: &bracketevents.ResultUndoFailedPayloadV1{
					TournamentID: tournamentID,
					Reason:       "nothing to undo",
				},
			},
		}
		handlers := newTestHandlers(svc)

		out, err := handlers.HandleResultUndoRequest(requestMessage(t, bracketevents.ResultUndoRequestedPayloadV1{
			TournamentID: tournamentID,
		}))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, bracketevents.ResultUndoFailedV1, out[0].Metadata.Get(utils.TopicMetadataKey))
	})
}
