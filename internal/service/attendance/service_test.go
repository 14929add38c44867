package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/calendar"
	"github.com/attendly-hq/attendance-engine-go/internal/domain/timesheet"
)

type fakeBaseRepo struct{ rows []timesheet.BaseRow }

func (f *fakeBaseRepo) Reset(ctx context.Context) error { return nil }
func (f *fakeBaseRepo) BulkInsert(ctx context.Context, rows []timesheet.BaseRow) error {
	return nil
}
func (f *fakeBaseRepo) List(ctx context.Context) ([]timesheet.BaseRow, error) { return f.rows, nil }

type fakeResultRepo struct {
	mu     sync.Mutex
	resets int
	rows   map[string]timesheet.ResultRow
}

func (f *fakeResultRepo) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	f.rows = make(map[string]timesheet.ResultRow)
	return nil
}

func (f *fakeResultRepo) Insert(ctx context.Context, row timesheet.ResultRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[row.Name] = row
	return nil
}

func (f *fakeResultRepo) List(ctx context.Context) ([]timesheet.ResultRow, error) { return nil, nil }
func (f *fakeResultRepo) GetDay(ctx context.Context, name string, day int) (string, bool, error) {
	return "", false, nil
}
func (f *fakeResultRepo) SetDay(ctx context.Context, name string, day int, value string) error {
	return nil
}
func (f *fakeResultRepo) GetDayByPrefix(ctx context.Context, prefix string, day int) (string, bool, error) {
	return "", false, nil
}
func (f *fakeResultRepo) SetDayByPrefix(ctx context.Context, prefix string, day int, value string) error {
	return nil
}

func TestRunClassifiesEveryEmployee(t *testing.T) {
	base := &fakeBaseRepo{}
	for _, name := range []string{"Alice", "Bob", "Cara"} {
		row := timesheet.BaseRow{}
		row.Name = name
		row.Days[1] = "08:20 18:10" // day 2
		row.Days[2] = "09:10"       // day 3
		base.rows = append(base.rows, row)
	}

	results := &fakeResultRepo{}
	svc := NewService(DefaultPolicy(), base, results)

	cal := calendar.Calendar{
		Year:     2025,
		Month:    time.June,
		RestDays: map[int]bool{1: true},
	}
	sum, err := svc.Run(context.Background(), cal)
	require.NoError(t, err)

	assert.Equal(t, "classify", sum.Name)
	assert.Equal(t, 3, sum.Processed)
	assert.Equal(t, 1, results.resets)
	require.Len(t, results.rows, 3)

	alice := results.rows["Alice"]
	assert.Equal(t, "", alice.Day(1), "rest day with no punches stays empty")
	assert.Equal(t, "normal(08:20, 18:10)", alice.Day(2))
	assert.Equal(t, "missing-punch(1 day) 09:10", alice.Day(3))
	assert.Equal(t, "missing-punch(1 day)", alice.Day(4), "workday without punches")
}
