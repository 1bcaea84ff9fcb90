package rosterdomain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{ID: fmt.Sprintf("c%d", i+1), Name: fmt.Sprintf("Competitor %d", i+1)}
	}
	return out
}

func TestPoolCount(t *testing.T) {
	cases := map[int]int{
		1: 1, 8: 1,
		9: 2, 16: 2,
		17: 4, 32: 4,
		33: 8, 100: 8,
	}
	for size, want := range cases {
		assert.Equal(t, want, PoolCount(size), "size %d", size)
	}
}

func TestAssignPools_RoundRobin(t *testing.T) {
	competitors := AssignPools(entries(10))
	require.Len(t, competitors, 10)

	// 10 entries split into 2 pools, dealt alternately.
	for i, c := range competitors {
		require.NotNil(t, c.Pool)
		want := bracketdomain.PoolID("A")
		if i%2 == 1 {
			want = "B"
		}
		assert.Equal(t, want, *c.Pool, "competitor %d", i)
	}
}

func TestAssignPools_SinglePool(t *testing.T) {
	for _, c := range AssignPools(entries(8)) {
		require.NotNil(t, c.Pool)
		assert.Equal(t, bracketdomain.PoolID("A"), *c.Pool)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "valid",
			entries: entries(3),
		},
		{
			name:    "empty id",
			entries: []Entry{{ID: "  ", Name: "Nobody"}},
			wantErr: "empty competitor id",
		},
		{
			name:    "reserved id",
			entries: []Entry{{ID: "bye:1", Name: "Sneaky"}},
			wantErr: "reserved id",
		},
		{
			name:    "duplicate id",
			entries: []Entry{{ID: "c1", Name: "A"}, {ID: "c1", Name: "B"}},
			wantErr: "duplicate competitor id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
