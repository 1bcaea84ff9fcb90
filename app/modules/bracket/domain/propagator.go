package bracketdomain

// ApplyWinner records winnerID as the winner of matchID and advances
// the winner into the correct slot of the next round, returning a new
// tree. The input tree is never mutated; holders of the old value keep
// an unchanged snapshot.
//
// Malformed references are silent no-ops rather than errors: an
// unknown match id returns the tree as-is, and a match containing a
// bye is permanently decided at construction time and cannot be
// overridden. A winner id matching neither slot clears the winner
// instead of being rejected; strict validation is the caller's job.
//
// Only the immediate parent match is invalidated when its input
// changes. A grandparent decided from the old value keeps its stale
// winner until it is re-entered.
func ApplyWinner(b Bracket, matchID MatchID, winnerID CompetitorID) Bracket {
	ri, mi, ok := locate(b, matchID)
	if !ok {
		return b
	}

	m := b.Rounds[ri].Matches[mi]
	if m.HasBye() {
		return b
	}

	var winner *Competitor
	switch {
	case m.First != nil && m.First.ID == winnerID:
		winner = m.First
	case m.Second != nil && m.Second.ID == winnerID:
		winner = m.Second
	}

	out := b.Clone()
	match := &out.Rounds[ri].Matches[mi]
	match.Winner = cloneCompetitor(winner)

	if ri < len(out.Rounds)-1 {
		parent := &out.Rounds[ri+1].Matches[mi/2]
		if mi%2 == 0 {
			parent.First = cloneCompetitor(winner)
		} else {
			parent.Second = cloneCompetitor(winner)
		}
		// One of the parent's inputs changed, so its own result no
		// longer holds. Deeper rounds are left alone.
		parent.Winner = nil
	}

	return out
}

// Annotate attaches a free-text note to a match, returning a new tree.
// Unknown match ids are a silent no-op, same as ApplyWinner.
func Annotate(b Bracket, matchID MatchID, note string) Bracket {
	ri, mi, ok := locate(b, matchID)
	if !ok {
		return b
	}
	out := b.Clone()
	out.Rounds[ri].Matches[mi].Annotation = note
	return out
}

// locate finds the round and position of a match id, returning indexes
// into the bracket's slices.
func locate(b Bracket, matchID MatchID) (roundIdx, matchIdx int, ok bool) {
	round, position, ok := matchID.Parse()
	if !ok {
		return 0, 0, false
	}
	if round > len(b.Rounds) || position > len(b.Rounds[round-1].Matches) {
		return 0, 0, false
	}
	return round - 1, position - 1, true
}
