package bracketdomain

import (
	"fmt"
	"strings"
)

// CompetitorID uniquely identifies a competitor within a tournament.
// Bye entries live in the reserved "bye:" namespace so they can never
// collide with caller-supplied ids.
type CompetitorID string

// PoolID references the pool a competitor was drawn from, if any.
type PoolID string

const byeIDPrefix = "bye:"

// Competitor is one entrant in the bracket. Byes are synthetic
// competitors generated by Seed; callers never supply them.
type Competitor struct {
	ID    CompetitorID `json:"id"`
	Name  string       `json:"name"`
	Seed  *int         `json:"seed,omitempty"`
	Pool  *PoolID      `json:"pool,omitempty"`
	IsBye bool         `json:"is_bye"`
}

// IsReservedID reports whether the id sits in the namespace Seed uses
// for synthetic byes.
func IsReservedID(id CompetitorID) bool {
	return strings.HasPrefix(string(id), byeIDPrefix)
}

// NewBye returns the nth synthetic bye entry (1-based).
func NewBye(n int) Competitor {
	return Competitor{
		ID:    CompetitorID(fmt.Sprintf("%s%d", byeIDPrefix, n)),
		Name:  "BYE",
		IsBye: true,
	}
}

// MatchID encodes a match's round number and its 1-based position
// within that round, e.g. "r2-m3".
type MatchID string

// NewMatchID builds the id for the given round and 1-based position.
func NewMatchID(round, position int) MatchID {
	return MatchID(fmt.Sprintf("r%d-m%d", round, position))
}

// Parse splits the id back into round number and 1-based position.
func (id MatchID) Parse() (round, position int, ok bool) {
	s := string(id)
	if !strings.HasPrefix(s, "r") {
		return 0, 0, false
	}
	var r, p int
	if _, err := fmt.Sscanf(s, "r%d-m%d", &r, &p); err != nil || r < 1 || p < 1 {
		return 0, 0, false
	}
	if NewMatchID(r, p) != id {
		return 0, 0, false
	}
	return r, p, true
}

// Match is a single pairing in the tree. Either slot may be empty (nil)
// until propagation fills it. Winner references one of the two slots;
// it is nil while the match is undecided.
type Match struct {
	ID         MatchID     `json:"id"`
	Round      int         `json:"round"`
	First      *Competitor `json:"first,omitempty"`
	Second     *Competitor `json:"second,omitempty"`
	Winner     *Competitor `json:"winner,omitempty"`
	Annotation string      `json:"annotation,omitempty"`
}

// HasBye reports whether either slot holds a bye. Bye matches are
// decided at construction time and never change afterwards.
func (m Match) HasBye() bool {
	return (m.First != nil && m.First.IsBye) || (m.Second != nil && m.Second.IsBye)
}

// Decided reports whether the match has a winner.
func (m Match) Decided() bool {
	return m.Winner != nil
}

// Round is one layer of the elimination tree.
type Round struct {
	Number  int     `json:"number"`
	Matches []Match `json:"matches"`
}

// Bracket is the full single-elimination tree, rounds ordered from the
// first round to the final. The structure is fixed at build time; only
// winner and annotation fields change afterwards, and always through
// value-returning operations.
type Bracket struct {
	Rounds []Round `json:"rounds"`
}

// SlotCount returns the padded slot count the bracket was built from.
func (b Bracket) SlotCount() int {
	if len(b.Rounds) == 0 {
		return 0
	}
	return 2 * len(b.Rounds[0].Matches)
}

// Champion returns the winner of the final round, or nil while the
// tournament is still in progress.
func (b Bracket) Champion() *Competitor {
	if len(b.Rounds) == 0 {
		return nil
	}
	final := b.Rounds[len(b.Rounds)-1]
	if len(final.Matches) != 1 {
		return nil
	}
	return cloneCompetitor(final.Matches[0].Winner)
}

// Progress returns the completion percentage, rounded to the nearest
// integer: 100 × decided matches / total matches over all rounds.
func (b Bracket) Progress() int {
	total, decided := 0, 0
	for _, r := range b.Rounds {
		for _, m := range r.Matches {
			total++
			if m.Decided() {
				decided++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return (200*decided + total) / (2 * total)
}

// Clone returns a deep copy of the bracket. Every operation that
// changes the tree works on a clone so callers holding the old value
// never observe the change.
func (b Bracket) Clone() Bracket {
	out := Bracket{Rounds: make([]Round, len(b.Rounds))}
	for i, r := range b.Rounds {
		nr := Round{Number: r.Number, Matches: make([]Match, len(r.Matches))}
		for j, m := range r.Matches {
			nm := m
			nm.First = cloneCompetitor(m.First)
			nm.Second = cloneCompetitor(m.Second)
			nm.Winner = cloneCompetitor(m.Winner)
			nr.Matches[j] = nm
		}
		out.Rounds[i] = nr
	}
	return out
}

func cloneCompetitor(c *Competitor) *Competitor {
	if c == nil {
		return nil
	}
	out := *c
	if c.Seed != nil {
		seed := *c.Seed
		out.Seed = &seed
	}
	if c.Pool != nil {
		pool := *c.Pool
		out.Pool = &pool
	}
	return &out
}
