package bracketdomain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func competitors(n int) []Competitor {
	out := make([]Competitor, n)
	for i := range out {
		out[i] = Competitor{
			ID:   CompetitorID(fmt.Sprintf("c%d", i+1)),
			Name: fmt.Sprintf("Competitor %d", i+1),
		}
	}
	return out
}

func slotIDs(slots []Competitor) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s.ID)
	}
	return out
}

func TestSeed_EmptyListFails(t *testing.T) {
	_, err := Seed(nil)
	require.ErrorIs(t, err, ErrNoCompetitors)

	_, err = Seed([]Competitor{})
	require.ErrorIs(t, err, ErrNoCompetitors)
}

func TestSeed_PadsToNextPowerOfTwo(t *testing.T) {
	for n := 2; n <= 40; n++ {
		slots, err := Seed(competitors(n))
		require.NoError(t, err, "n=%d", n)

		size := len(slots)
		assert.Equal(t, nextPowerOfTwo(n), size, "n=%d", n)
		assert.True(t, size&(size-1) == 0, "n=%d: %d is not a power of two", n, size)

		byes := 0
		seen := map[CompetitorID]int{}
		for _, s := range slots {
			seen[s.ID]++
			if s.IsBye {
				byes++
			}
		}
		assert.Equal(t, size-n, byes, "n=%d bye count", n)
		for id, count := range seen {
			assert.Equal(t, 1, count, "n=%d: slot %s duplicated", n, id)
		}
		for _, c := range competitors(n) {
			assert.Contains(t, seen, c.ID, "n=%d: competitor dropped", n)
		}
	}
}

func TestSeed_ByesAreDistinctAndFlagged(t *testing.T) {
	slots, err := Seed(competitors(11))
	require.NoError(t, err)

	ids := map[CompetitorID]bool{}
	for _, s := range slots {
		if !s.IsBye {
			continue
		}
		assert.True(t, len(s.ID) > len(byeIDPrefix) && string(s.ID[:len(byeIDPrefix)]) == byeIDPrefix,
			"bye id %q outside reserved namespace", s.ID)
		assert.False(t, ids[s.ID], "bye id %q repeated", s.ID)
		ids[s.ID] = true
	}
	assert.Len(t, ids, 5)
}

// Pins the exact slot order for N=5 so the half-split behavior,
// including the lower half draining the shared bye pool, can never
// drift silently.
func TestSeed_FiveCompetitors(t *testing.T) {
	slots, err := Seed(competitors(5))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"bye:1", "c1", "c2", "c3",
		"bye:2", "c4", "bye:3", "c5",
	}, slotIDs(slots))
}

func TestSeed_KnownOrders(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{n: 2, want: []string{"c1", "c2"}},
		{n: 3, want: []string{"c1", "c2", "bye:1", "c3"}},
		{n: 6, want: []string{"bye:1", "c1", "c2", "c3", "bye:2", "c4", "c5", "c6"}},
		{n: 9, want: []string{
			"bye:1", "c1", "c2", "c3", "c4", "bye:2", "c5", "bye:3",
			"bye:4", "c6", "c7", "c8", "bye:5", "c9", "bye:6", "bye:7",
		}},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			slots, err := Seed(competitors(tc.n))
			require.NoError(t, err)
			assert.Equal(t, tc.want, slotIDs(slots))
		})
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 16: 16, 17: 32, 33: 64}
	for n, want := range cases {
		assert.Equal(t, want, nextPowerOfTwo(n), "n=%d", n)
	}
}
