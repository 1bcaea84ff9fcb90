package bracketdomain

import "math/bits"

// Build creates the full round tree from a padded slot list (length a
// power of two, as produced by Seed). Consecutive slots are paired
// into first-round matches; every later round is pre-created up front
// with its slots fed from the winners of the previous round, which at
// build time can only be bye auto-wins.
func Build(slots []Competitor) (Bracket, error) {
	size := len(slots)
	if size == 0 || size&(size-1) != 0 {
		return Bracket{}, ErrSlotCountNotPowerOfTwo
	}

	roundCount := bits.Len(uint(size)) - 1
	b := Bracket{Rounds: make([]Round, 0, roundCount)}

	first := Round{Number: 1, Matches: make([]Match, 0, size/2)}
	for i := 0; i < size/2; i++ {
		a, z := slots[2*i], slots[2*i+1]
		m := Match{
			ID:     NewMatchID(1, i+1),
			Round:  1,
			First:  cloneCompetitor(&a),
			Second: cloneCompetitor(&z),
		}
		// A walkover is the only winner ever assigned without an
		// explicit caller action. Two byes in one match would mean
		// there was at most one real competitor; no winner then.
		if a.IsBye != z.IsBye {
			if a.IsBye {
				m.Winner = cloneCompetitor(&z)
			} else {
				m.Winner = cloneCompetitor(&a)
			}
		}
		first.Matches = append(first.Matches, m)
	}
	b.Rounds = append(b.Rounds, first)

	for r := 2; r <= roundCount; r++ {
		count := size >> r
		prev := b.Rounds[r-2]
		round := Round{Number: r, Matches: make([]Match, 0, count)}
		for i := 0; i < count; i++ {
			m := Match{
				ID:     NewMatchID(r, i+1),
				Round:  r,
				First:  cloneCompetitor(prev.Matches[2*i].Winner),
				Second: cloneCompetitor(prev.Matches[2*i+1].Winner),
			}
			round.Matches = append(round.Matches, m)
		}
		b.Rounds = append(b.Rounds, round)
	}

	return b, nil
}
