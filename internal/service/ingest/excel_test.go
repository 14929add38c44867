package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/event"
)

// buildSheet writes rows into a fresh in-memory workbook.
func buildSheet(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	return f
}

func TestParseEventDate(t *testing.T) {
	cases := []struct {
		cell string
		want string
	}{
		{"2025-06-03 09:00", "2025-06-03"},
		{"2025-06-03 morning", "2025-06-03"},
		{"2025-06-03", "2025-06-03"},
	}
	for _, c := range cases {
		got, err := parseEventDate(c.cell)
		require.NoError(t, err, c.cell)
		assert.Equal(t, c.want, got.Format("2006-01-02"))
	}

	_, err := parseEventDate("")
	assert.ErrorIs(t, err, event.ErrBadDateRange)
	_, err = parseEventDate("03/06/2025")
	assert.ErrorIs(t, err, event.ErrBadDateRange)
}

func TestParsePunchSheet(t *testing.T) {
	f := buildSheet(t, [][]any{
		{"Attendance Export"},
		{"June 2025"},
		{},
		{"Alice", "G1", "Engineering", "E001", "Engineer", "U100", "08:20 18:10", "09:10"},
		{},
		{"Bob", "G1", "Engineering", "E002", "Engineer", "U101"},
	})
	defer f.Close()

	rows, err := parsePunchSheet(f)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice", rows[0].Name)
	assert.Equal(t, "Engineering", rows[0].Department)
	assert.Equal(t, "U100", rows[0].ExternalUserID)
	assert.Equal(t, "08:20 18:10", rows[0].Days[0])
	assert.Equal(t, "09:10", rows[0].Days[1])
	assert.Equal(t, "", rows[0].Days[2])

	// Short rows leave the tail days empty.
	assert.Equal(t, "Bob", rows[1].Name)
	assert.Equal(t, "", rows[1].Days[0])
}

func TestParsePunchSheetNoData(t *testing.T) {
	f := buildSheet(t, [][]any{{"banner"}, {"banner"}, {"banner"}})
	defer f.Close()

	_, err := parsePunchSheet(f)
	assert.Error(t, err)
}

func TestParseEventSheetFiltersApproval(t *testing.T) {
	f := buildSheet(t, [][]any{
		{"Trip Export"},
		{"Initiator Name", "Start Time", "End Time", "Total Trip Duration (days)", "Trip Reason", "Request Status"},
		{"Alice", "2025-06-03 09:00", "2025-06-05 18:00", "3", "client visit", "approved"},
		{"Bob", "2025-06-03 09:00", "2025-06-03 18:00", "1", "site audit", "pending"},
		{},
		{"Cara", "2025-06-10 09:00", "2025-06-10 18:00", "1", "conference", "approved"},
	})
	defer f.Close()

	records, err := parseEventSheet(f, tripLayoutA)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, "2025-06-03 09:00", records[0].Start)
	assert.Equal(t, "client visit", records[0].Reason)
	assert.Equal(t, "Cara", records[1].Name)
}

func TestParseEventSheetHeaderOnFirstRow(t *testing.T) {
	f := buildSheet(t, [][]any{
		{"Creator", "Start Time", "End Time", "Duration (hours)", "Details (Overtime Content)", "Approval Result"},
		{"Bob", "2025-06-10 18:00", "2025-06-10 21:00", "3h", "release support", "approval-passed"},
		{"Bob", "2025-06-11 18:00", "2025-06-11 21:00", "3h", "release support", "rejected"},
	})
	defer f.Close()

	records, err := parseEventSheet(f, overtimeLayoutB)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "3h", records[0].Duration)
}

func TestParseEventSheetMissingColumn(t *testing.T) {
	f := buildSheet(t, [][]any{
		{"banner"},
		{"Initiator Name", "Start Time", "End Time", "Trip Reason", "Request Status"},
	})
	defer f.Close()

	_, err := parseEventSheet(f, tripLayoutA)
	assert.ErrorIs(t, err, event.ErrMissingColumns)
}
