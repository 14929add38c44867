package status

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	require.NoError(t, err)
	return parsed
}

func TestRenderBase(t *testing.T) {
	cases := []struct {
		name string
		day  Day
		want string
	}{
		{
			name: "empty rest day",
			day:  Day{Classification: ClassEmpty},
			want: "",
		},
		{
			name: "rest day with punches keeps raw text",
			day:  Day{Classification: ClassRestRaw, Raw: "09:10 17:00"},
			want: "09:10 17:00",
		},
		{
			name: "missing punch appends raw",
			day:  Day{Classification: ClassMissingPunch, Raw: "09:10"},
			want: "missing-punch(1 day) 09:10",
		},
		{
			name: "missing punch with blank raw",
			day:  Day{Classification: ClassMissingPunch},
			want: "missing-punch(1 day)",
		},
		{
			name: "normal",
			day:  Day{Classification: ClassNormal, Morning: clock(t, "08:20"), Evening: clock(t, "18:10")},
			want: "normal(08:20, 18:10)",
		},
		{
			name: "late only",
			day:  Day{Classification: ClassNormal, Late: true, Morning: clock(t, "08:40"), Evening: clock(t, "18:10")},
			want: "late(08:40, 18:10)",
		},
		{
			name: "late and early-leave joined with plus",
			day:  Day{Classification: ClassNormal, Late: true, EarlyLeave: true, Morning: clock(t, "08:40"), Evening: clock(t, "17:00")},
			want: "late+early-leave(08:40, 17:00)",
		},
		{
			name: "half-day absence",
			day:  Day{Classification: ClassAbsentHalf, Morning: clock(t, "09:10"), Evening: clock(t, "17:00")},
			want: "absent-half(0.5 day)(09:10, 17:00)",
		},
		{
			name: "full-day absence",
			day:  Day{Classification: ClassAbsentFull, Morning: clock(t, "12:00"), Evening: clock(t, "18:10")},
			want: "absent-full(1 day)(12:00, 18:10)",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.day.Render())
		})
	}
}

func TestTripOverride(t *testing.T) {
	assert.Equal(t, "business-trip(client visit)", TripOverride("client visit"))
}

func TestRenderWithOverlays(t *testing.T) {
	day := Day{
		Classification: ClassNormal,
		Morning:        clock(t, "08:20"),
		Evening:        clock(t, "18:10"),
		Overlays: []Overlay{
			{Kind: OverlayLeave, Source: SourceOriginA, Duration: "1 day", Reason: "sick"},
			{Kind: OverlayOvertime, Source: SourceOriginB, Hours: 2},
		},
	}
	assert.Equal(t, "normal(08:20, 18:10)\norigin-A-leave(1 day)(sick) + origin-Bovertime(2h)", day.Render())

	// A trip overlay replaces everything applied before it.
	day.Overlays = append(day.Overlays, Overlay{Kind: OverlayTrip, Reason: "client visit"})
	assert.Equal(t, "business-trip(client visit)", day.Render())
}

func TestOverlayApply(t *testing.T) {
	trip := Overlay{Kind: OverlayTrip, Reason: "client visit"}
	assert.Equal(t, "business-trip(client visit)", trip.Apply("late(08:40, 18:10)"))

	leave := Overlay{Kind: OverlayLeave, Source: SourceOriginB, Duration: "0.5 day", Reason: "errand"}
	assert.Equal(t, "origin-B-leave(0.5 day)(errand)", leave.Apply(""))

	overtime := Overlay{Kind: OverlayOvertime, Source: SourceOriginA, Hours: 1.5}
	assert.Equal(t, "normal(08:20, 18:10) + origin-Aovertime(1.5h)", overtime.Apply("normal(08:20, 18:10)"))
}

func TestAppendLeaveNote(t *testing.T) {
	got := AppendLeaveNote("normal(08:20, 18:10)", SourceOriginA, "1 day", "sick")
	assert.Equal(t, "normal(08:20, 18:10)\norigin-A-leave(1 day)(sick)", got)

	// Onto an empty cell the leading separator is dropped.
	got = AppendLeaveNote("", SourceOriginB, "0.5 day", "errand")
	assert.Equal(t, "origin-B-leave(0.5 day)(errand)", got)

	// Appending is not idempotent; a re-run stacks a second note.
	twice := AppendLeaveNote(got, SourceOriginB, "0.5 day", "errand")
	assert.Equal(t, "origin-B-leave(0.5 day)(errand)\norigin-B-leave(0.5 day)(errand)", twice)
}

func TestAppendOvertimeNote(t *testing.T) {
	got := AppendOvertimeNote("normal(08:20, 18:10)", SourceOriginA, 2)
	assert.Equal(t, "normal(08:20, 18:10) + origin-Aovertime(2h)", got)

	got = AppendOvertimeNote("", SourceOriginB, 1.5)
	assert.Equal(t, "origin-Bovertime(1.5h)", got)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2", FormatHours(2))
	assert.Equal(t, "1.5", FormatHours(1.5))
	assert.Equal(t, "0.25", FormatHours(0.25))
}

func TestCategoriesOf(t *testing.T) {
	c := CategoriesOf("late+early-leave(08:40, 17:00)")
	assert.True(t, c.Late)
	assert.True(t, c.EarlyLeave)
	assert.False(t, c.Normal)
	assert.False(t, c.Leave, "early-leave tag must not count as leave")

	c = CategoriesOf("normal(08:20, 18:10)\norigin-A-leave(1 day)(sick)")
	assert.True(t, c.Normal)
	assert.True(t, c.Leave)

	c = CategoriesOf("business-trip(client visit)")
	assert.True(t, c.BusinessTrip)

	c = CategoriesOf("missing-punch(1 day) 09:10")
	assert.True(t, c.MissingPunch)

	c = CategoriesOf("absent-half(0.5 day)(09:10, 17:00)")
	assert.True(t, c.Absent)

	assert.Zero(t, CategoriesOf(""))
}

func TestOvertimeHours(t *testing.T) {
	s := "normal(08:20, 18:10) + origin-Aovertime(2h) + origin-Bovertime(1.5h) + origin-Aovertime(0.5h)"
	sums := OvertimeHours(s)

	assert.True(t, decimal.NewFromFloat(2.5).Equal(sums[SourceOriginA]))
	assert.True(t, decimal.NewFromFloat(1.5).Equal(sums[SourceOriginB]))

	assert.Empty(t, OvertimeHours("normal(08:20, 18:10)"))
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "", FormatForDisplay("", true))

	got := FormatForDisplay("normal(08:20, 18:10)", false)
	assert.Equal(t, "✅ normal(08:20, 18:10)", got)

	got = FormatForDisplay("late(08:40, 18:10)", false)
	assert.Equal(t, "⏰ late(08:40, 18:10)", got)

	// Rest day keeps the marker and moves the status below it.
	got = FormatForDisplay("09:10 17:00", true)
	assert.Equal(t, "🏠 rest-day\n09:10 17:00", got)

	got = FormatForDisplay("normal(08:20, 18:10)\norigin-A-leave(1 day)(sick)", false)
	assert.Equal(t, "✅📝 normal(08:20, 18:10)\norigin-A-leave(1 day)(sick)", got)

	// Unrecognized text passes through untouched on workdays.
	assert.Equal(t, "odd cell", FormatForDisplay("odd cell", false))
}
