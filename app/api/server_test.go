package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bracketservice "github.com/courtside-club/bracket-bot/app/modules/bracket/application"
	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketevents "github.com/courtside-club/bracket-bot/app/modules/bracket/domain/events"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
	rosterservice "github.com/courtside-club/bracket-bot/app/modules/roster/application"
	"github.com/courtside-club/bracket-bot/app/shared/observability"
)

func newTestServer(brackets *fakeBracketService, rosters *fakeRosterService) http.Handler {
	obs := observability.NewNoOp()
	return NewServer(":0", brackets, rosters, nil, obs.Logger).Handler()
}

func smallBracket(t *testing.T) bracketdomain.Bracket {
	t.Helper()
	slots, err := bracketdomain.Seed([]bracketdomain.Competitor{
		{ID: "c1", Name: "Alice"},
		{ID: "c2", Name: "Bob"},
	})
	require.NoError(t, err)
	bracket, err := bracketdomain.Build(slots)
	require.NoError(t, err)
	return bracket
}

func TestCreateTournamentEndpoint(t *testing.T) {
	tournamentID := uuid.New()
	svc := &fakeBracketService{
		result: bracketservice.BracketOperationResult{
			Success: &bracketevents.TournamentCreatedPayloadV1{
				TournamentID: tournamentID,
				Name:         "Club Open",
				SlotCount:    4,
			},
		},
	}
	handler := newTestServer(svc, &fakeRosterService{})

	body := `{"name":"Club Open","competitors":[{"id":"c1","name":"Alice"},{"id":"c2","name":"Bob"},{"id":"c3","name":"Cara"}]}`
	req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp bracketevents.TournamentCreatedPayloadV1
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, tournamentID, resp.TournamentID)
}

func TestCreateTournamentEndpoint_ValidationFailure(t *testing.T) {
	svc := &fakeBracketService{
		result: bracketservice.BracketOperationResult{
			Failure: &bracketevents.TournamentCreateFailedPayloadV1{
				Name:   "Club Open",
				Reason: "at least two competitors are required",
			},
		},
	}
	handler := newTestServer(svc, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader(`{"name":"Club Open"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least two competitors")
}

func TestCreateTournamentEndpoint_BadBody(t *testing.T) {
	handler := newTestServer(&fakeBracketService{}, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTournamentEndpoint_NotFound(t *testing.T) {
	svc := &fakeBracketService{getErr: bracketdb.ErrTournamentNotFound}
	handler := newTestServer(svc, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTournamentEndpoint_BadID(t *testing.T) {
	handler := newTestServer(&fakeBracketService{}, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBracketEndpoint(t *testing.T) {
	svc := &fakeBracketService{bracket: smallBracket(t)}
	handler := newTestServer(svc, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/"+uuid.NewString()+"/bracket", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var bracket bracketdomain.Bracket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bracket))
	assert.Len(t, bracket.Rounds, 1)
}

func TestRecordWinnerEndpoint(t *testing.T) {
	svc := &fakeBracketService{
		result: bracketservice.BracketOperationResult{
			Success: &bracketevents.WinnerRecordedPayloadV1{
				TournamentID: uuid.New(),
				MatchID:      "r1-m1",
				WinnerID:     "c1",
				Progress:     100,
			},
		},
	}
	handler := newTestServer(svc, &fakeRosterService{})

	url := fmt.Sprintf("/tournaments/%s/matches/r1-m1/winner", uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"winner_id":"c1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bracketdomain.MatchID("r1-m1"), svc.recordMatch)
	assert.Equal(t, bracketdomain.CompetitorID("c1"), svc.recordWinner)
}

func TestRecordWinnerEndpoint_ServiceError(t *testing.T) {
	svc := &fakeBracketService{err: errors.New("database down")}
	handler := newTestServer(svc, &fakeRosterService{})

	url := fmt.Sprintf("/tournaments/%s/matches/r1-m1/winner", uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"winner_id":"c1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUndoEndpoint_Failure(t *testing.T) {
	svc := &fakeBracketService{
		result: bracketservice.BracketOperationResult{
			Failure: &bracketevents.ResultUndoFailedPayloadV1{
				TournamentID: uuid.New(),
				Reason:       "nothing to undo",
			},
		},
	}
	handler := newTestServer(svc, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/"+uuid.NewString()+"/undo", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "nothing to undo")
}

func TestProgressChartEndpoint(t *testing.T) {
	svc := &fakeBracketService{bracket: smallBracket(t)}
	handler := newTestServer(svc, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/"+uuid.NewString()+"/progress.png", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
}

func TestImportRosterEndpoint(t *testing.T) {
	rosters := &fakeRosterService{
		result: rosterservice.ImportResult{Entries: 2, PoolCount: 1},
	}
	handler := newTestServer(&fakeBracketService{}, rosters)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("roster", "roster.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("c1,Alice\nc2,Bob\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/rosters/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "roster.csv", rosters.filename)

	var result rosterservice.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Entries)
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(&fakeBracketService{}, &fakeRosterService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
