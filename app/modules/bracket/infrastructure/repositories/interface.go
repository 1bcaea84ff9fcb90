package bracketdb

import (
	"context"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// Repository is the persistence surface of the bracket module.
type Repository interface {
	CreateTournament(ctx context.Context, tournament *Tournament, bracket bracketdomain.Bracket) error
	GetTournament(ctx context.Context, id uuid.UUID) (*Tournament, error)
	SetTournamentStatus(ctx context.Context, id uuid.UUID, status string) error

	// LatestBracket returns the newest snapshot's tree and its seq.
	LatestBracket(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error)

	// AppendSnapshot stores a new bracket value after a result was
	// applied, pruning history older than the configured bound.
	AppendSnapshot(ctx context.Context, tournamentID uuid.UUID, bracket bracketdomain.Bracket) (int, error)

	// PopSnapshot removes the latest snapshot and returns the one
	// beneath it. Fails with ErrNoSnapshots when only the initial
	// build remains.
	PopSnapshot(ctx context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error)
}
