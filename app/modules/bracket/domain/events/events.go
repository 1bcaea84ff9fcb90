// Package bracketevents defines the versioned topics and payloads of
// the bracket module's message contracts.
package bracketevents

import (
	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// Topic constants. The version suffix changes only on breaking payload
// changes; consumers pin the version they understand.
const (
	TournamentCreateRequestedV1 = "bracket.tournament.create.requested.v1"
	TournamentCreatedV1         = "bracket.tournament.created.v1"
	TournamentCreateFailedV1    = "bracket.tournament.create.failed.v1"

	WinnerRecordRequestedV1 = "bracket.match.winner.record.requested.v1"
	WinnerRecordedV1        = "bracket.match.winner.recorded.v1"
	WinnerRecordFailedV1    = "bracket.match.winner.record.failed.v1"

	ResultUndoRequestedV1 = "bracket.result.undo.requested.v1"
	ResultUndoneV1        = "bracket.result.undone.v1"
	ResultUndoFailedV1    = "bracket.result.undo.failed.v1"
)

// CompetitorInput is one entrant as supplied by the caller. The caller
// owns ordering, dedup and name validation; ids must be unique and
// outside the reserved bye namespace.
type CompetitorInput struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Seed *int    `json:"seed,omitempty"`
	Pool *string `json:"pool,omitempty"`
}

type TournamentCreateRequestedPayloadV1 struct {
	Name        string            `json:"name"`
	Competitors []CompetitorInput `json:"competitors"`
}

type TournamentCreatedPayloadV1 struct {
	TournamentID uuid.UUID            `json:"tournament_id"`
	Name         string               `json:"name"`
	SlotCount    int                  `json:"slot_count"`
	ByeCount     int                  `json:"bye_count"`
	Bracket      bracketdomain.Bracket `json:"bracket"`
}

type TournamentCreateFailedPayloadV1 struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type WinnerRecordRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	MatchID      string    `json:"match_id"`
	WinnerID     string    `json:"winner_id"`
}

type WinnerRecordedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	MatchID      string    `json:"match_id"`
	WinnerID     string    `json:"winner_id"`
	Progress     int       `json:"progress"`
	ChampionID   *string   `json:"champion_id,omitempty"`
}

type WinnerRecordFailedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	MatchID      string    `json:"match_id"`
	WinnerID     string    `json:"winner_id"`
	Reason       string    `json:"reason"`
}

type ResultUndoRequestedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}

type ResultUndonePayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Progress     int       `json:"progress"`
}

type ResultUndoFailedPayloadV1 struct {
	TournamentID uuid.UUID `json:"tournament_id"`
	Reason       string    `json:"reason"`
}
