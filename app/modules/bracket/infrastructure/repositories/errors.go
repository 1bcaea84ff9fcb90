package bracketdb

import "errors"

// Sentinel errors for the repository layer. These indicate database
// state, not business failures; the service layer decides what they
// mean for an operation.
var (
	// ErrTournamentNotFound indicates no tournament row matches the id.
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrNoSnapshots indicates the tournament has no bracket snapshots
	// left, which for undo means there is no result to roll back.
	ErrNoSnapshots = errors.New("no bracket snapshots")
)
