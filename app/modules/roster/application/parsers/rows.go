package parsers

import (
	"fmt"
	"strconv"
	"strings"

	rosterdomain "github.com/courtside-club/bracket-bot/app/modules/roster/domain"
)

// Expected columns, in order. The header row is optional; it is
// recognized by a literal "id" in the first cell.
const (
	colID = iota
	colName
	colSeed
)

func isHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[colID]), "id")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// entriesFromRows converts raw string rows into roster entries. Both
// parsers feed this after their format-specific extraction.
func entriesFromRows(rows [][]string) ([]rosterdomain.Entry, error) {
	var entries []rosterdomain.Entry
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) < colName+1 {
			return nil, fmt.Errorf("roster line %d has no name column", i+1)
		}

		entry := rosterdomain.Entry{
			ID:   strings.TrimSpace(row[colID]),
			Name: strings.TrimSpace(row[colName]),
		}
		if len(row) > colSeed {
			raw := strings.TrimSpace(row[colSeed])
			if raw != "" {
				seed, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("invalid seed %q on line %d: %w", raw, i+1, err)
				}
				entry.Seed = &seed
			}
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no roster entries found")
	}
	return entries, nil
}
