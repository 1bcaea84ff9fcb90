package rosterdomain

import (
	"fmt"
	"strings"

	bracketdomain "github.com/courtside-club/bracket-bot/app/modules/bracket/domain"
)

// Entry is a single roster line as parsed from an uploaded file.
type Entry struct {
	ID   string
	Name string
	Seed *int
}

// PoolCount maps a roster size onto the number of pools the field is
// split into.
func PoolCount(size int) int {
	switch {
	case size <= 8:
		return 1
	case size <= 16:
		return 2
	case size <= 32:
		return 4
	default:
		return 8
	}
}

// poolName yields "A", "B", ... for pool indices 0..7.
func poolName(index int) bracketdomain.PoolID {
	return bracketdomain.PoolID(string(rune('A' + index)))
}

// AssignPools converts roster entries into competitors, dealing pools
// round-robin in roster order.
func AssignPools(entries []Entry) []bracketdomain.Competitor {
	pools := PoolCount(len(entries))

	competitors := make([]bracketdomain.Competitor, 0, len(entries))
	for i, entry := range entries {
		pool := poolName(i % pools)
		competitors = append(competitors, bracketdomain.Competitor{
			ID:   bracketdomain.CompetitorID(entry.ID),
			Name: entry.Name,
			Seed: entry.Seed,
			Pool: &pool,
		})
	}
	return competitors
}

// Validate rejects entries the bracket core cannot accept.
func Validate(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.ID) == "" {
			return fmt.Errorf("roster line %d has an empty competitor id", i+1)
		}
		if bracketdomain.IsReservedID(bracketdomain.CompetitorID(entry.ID)) {
			return fmt.Errorf("roster line %d uses reserved id %q", i+1, entry.ID)
		}
		if _, dup := seen[entry.ID]; dup {
			return fmt.Errorf("duplicate competitor id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}
	}
	return nil
}
