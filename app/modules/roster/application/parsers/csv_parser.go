package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	rosterdomain "github.com/courtside-club/bracket-bot/app/modules/roster/domain"
)

// CSVParser parses CSV roster files.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse parses CSV data into roster entries.
func (p *CSVParser) Parse(data []byte) ([]rosterdomain.Entry, error) {
	// Misnamed XLSX uploads start with the zip magic bytes; hand them
	// to the XLSX parser instead of failing on garbage cells.
	if bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return NewXLSXParser().Parse(data)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return entriesFromRows(rows)
}
