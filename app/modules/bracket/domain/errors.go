package bracketdomain

import "errors"

// Sentinel errors for the bracket core. The propagation operations
// favor silent no-ops over errors (a UI only ever offers valid
// choices); construction is the one place invalid input is rejected.
var (
	// ErrNoCompetitors indicates Seed was called with an empty list.
	// A bracket over zero competitors is not meaningful; callers are
	// expected to enforce a minimum of two.
	ErrNoCompetitors = errors.New("bracket: no competitors to seed")

	// ErrSlotCountNotPowerOfTwo indicates Build received a slot list
	// whose length is not a power of two. Seed output always is.
	ErrSlotCountNotPowerOfTwo = errors.New("bracket: slot count is not a power of two")
)
