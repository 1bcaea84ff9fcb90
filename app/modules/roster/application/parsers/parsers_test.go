package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, axis, cell))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestCSVParser_Parse(t *testing.T) {
	data := []byte("id,name,seed\nc1,Alice,1\nc2,Bob,\n\nc3,Cara,3\n")

	entries, err := NewCSVParser().Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "c1", entries[0].ID)
	assert.Equal(t, "Alice", entries[0].Name)
	require.NotNil(t, entries[0].Seed)
	assert.Equal(t, 1, *entries[0].Seed)

	assert.Nil(t, entries[1].Seed)
	assert.Equal(t, "Cara", entries[2].Name)
}

func TestCSVParser_NoHeader(t *testing.T) {
	entries, err := NewCSVParser().Parse([]byte("c1,Alice\nc2,Bob\n"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCSVParser_BadSeed(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte("c1,Alice,first\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed")
}

func TestCSVParser_Empty(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte(""))
	require.Error(t, err)
}

func TestXLSXParser_Parse(t *testing.T) {
	data := xlsxBytes(t, [][]any{
		{"id", "name", "seed"},
		{"c1", "Alice", 1},
		{"c2", "Bob"},
	})

	entries, err := NewXLSXParser().Parse(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	require.NotNil(t, entries[0].Seed)
	assert.Equal(t, 1, *entries[0].Seed)
	assert.Nil(t, entries[1].Seed)
}

func TestXLSXParser_NotAZip(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("id,name\nc1,Alice\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open XLSX file")
}

func TestCSVParser_MisnamedXLSXFallsBack(t *testing.T) {
	data := xlsxBytes(t, [][]any{
		{"c1", "Alice"},
		{"c2", "Bob"},
	})

	entries, err := NewCSVParser().Parse(data)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()

	p, err := factory.GetParser("roster.csv")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, p)

	p, err = factory.GetParser("Roster.XLSX")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, p)

	_, err = factory.GetParser("roster.pdf")
	require.Error(t, err)
}
