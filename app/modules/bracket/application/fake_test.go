package bracketservice

import (
	"context"
	"sort"

	"github.com/google/uuid"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
	bracketdb "github.com/courtside-club/bracket-bot/app/modules/bracket/infrastructure/repositories"
)

// fakeRepository is an in-memory bracketdb.Repository for service
// tests. Snapshots are held per tournament ordered by seq.
type fakeRepository struct {
	tournaments map[uuid.UUID]*bracketdb.Tournament
	snapshots   map[uuid.UUID][]fakeSnapshot

	failWith error
}

type fakeSnapshot struct {
	seq     int
	bracket bracketdomain.Bracket
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		tournaments: make(map[uuid.UUID]*bracketdb.Tournament),
		snapshots:   make(map[uuid.UUID][]fakeSnapshot),
	}
}

func (f *fakeRepository) CreateTournament(_ context.Context, tournament *bracketdb.Tournament, bracket bracketdomain.Bracket) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.tournaments[tournament.ID] = tournament
	f.snapshots[tournament.ID] = []fakeSnapshot{{seq: 0, bracket: bracket.Clone()}}
	return nil
}

func (f *fakeRepository) GetTournament(_ context.Context, id uuid.UUID) (*bracketdb.Tournament, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	t, ok := f.tournaments[id]
	if !ok {
		return nil, bracketdb.ErrTournamentNotFound
	}
	return t, nil
}

func (f *fakeRepository) SetTournamentStatus(_ context.Context, id uuid.UUID, status string) error {
	t, ok := f.tournaments[id]
	if !ok {
		return bracketdb.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeRepository) LatestBracket(_ context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error) {
	snaps := f.snapshots[tournamentID]
	if len(snaps) == 0 {
		return bracketdomain.Bracket{}, 0, bracketdb.ErrNoSnapshots
	}
	last := snaps[len(snaps)-1]
	return last.bracket.Clone(), last.seq, nil
}

func (f *fakeRepository) AppendSnapshot(_ context.Context, tournamentID uuid.UUID, bracket bracketdomain.Bracket) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	snaps := f.snapshots[tournamentID]
	if len(snaps) == 0 {
		return 0, bracketdb.ErrNoSnapshots
	}
	seq := snaps[len(snaps)-1].seq + 1
	f.snapshots[tournamentID] = append(snaps, fakeSnapshot{seq: seq, bracket: bracket.Clone()})
	return seq, nil
}

func (f *fakeRepository) PopSnapshot(_ context.Context, tournamentID uuid.UUID) (bracketdomain.Bracket, int, error) {
	snaps := f.snapshots[tournamentID]
	if len(snaps) < 2 {
		return bracketdomain.Bracket{}, 0, bracketdb.ErrNoSnapshots
	}
	f.snapshots[tournamentID] = snaps[:len(snaps)-1]
	prev := snaps[len(snaps)-2]
	return prev.bracket.Clone(), prev.seq, nil
}

func (f *fakeRepository) seqs(tournamentID uuid.UUID) []int {
	out := make([]int, 0, len(f.snapshots[tournamentID]))
	for _, s := range f.snapshots[tournamentID] {
		out = append(out, s.seq)
	}
	sort.Ints(out)
	return out
}
