package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

func TestExtractPunches(t *testing.T) {
	punches := ExtractPunches("08:20 weekday 18:10")
	require.Len(t, punches, 2)
	assert.Equal(t, "08:20", punches[0].Format("15:04"))
	assert.Equal(t, "18:10", punches[1].Format("15:04"))

	// Out-of-range clock values are dropped, not errors.
	assert.Empty(t, ExtractPunches("25:99"))
	assert.Empty(t, ExtractPunches(""))
	assert.Empty(t, ExtractPunches("no punches today"))
}

func TestClassifyRestDay(t *testing.T) {
	p := DefaultPolicy()

	day := Classify(p, "", true)
	assert.Equal(t, status.ClassEmpty, day.Classification)
	assert.Equal(t, "", day.Render())

	day = Classify(p, "09:10 17:00", true)
	assert.Equal(t, status.ClassRestRaw, day.Classification)
	assert.Equal(t, "09:10 17:00", day.Render())
}

func TestClassifyMissingPunch(t *testing.T) {
	p := DefaultPolicy()

	day := Classify(p, "09:10", false)
	assert.Equal(t, status.ClassMissingPunch, day.Classification)
	assert.Equal(t, "missing-punch(1 day) 09:10", day.Render())

	day = Classify(p, "", false)
	assert.Equal(t, "missing-punch(1 day)", day.Render())
}

func TestClassifyRendered(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"on time", "08:20 18:10", "normal(08:20, 18:10)"},
		{"at the limit is on time", "08:33 18:00", "normal(08:33, 18:00)"},
		{"one minute past the limit is late", "08:34 18:00", "late(08:34, 18:00)"},
		{"half-day band starts at 30 minutes", "09:03 18:00", "absent-half(0.5 day)(09:03, 18:00)"},
		{"just under the half-day band stays late", "09:02 18:00", "late(09:02, 18:00)"},
		{"half-day example", "09:10 17:00", "absent-half(0.5 day)(09:10, 17:00)"},
		{"full-day band starts at 3 hours", "11:33 18:10", "absent-full(1 day)(11:33, 18:10)"},
		{"early leave", "08:20 17:00", "early-leave(08:20, 17:00)"},
		{"early leave under threshold ignored", "08:20 17:45", "normal(08:20, 17:45)"},
		{"late and early leave combine", "08:40 17:00", "late+early-leave(08:40, 17:00)"},
		{"middle punches only widen the window", "08:20 12:30 13:30 18:10", "normal(08:20, 18:10)"},
		{"unordered punches", "18:10 08:20", "normal(08:20, 18:10)"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(p, c.raw, false).Render())
		})
	}
}

func TestClassifyMorningDeparture(t *testing.T) {
	// Two punches, both before noon: the evening punch is before 12:00 so
	// the early-leave rule does not apply.
	p := DefaultPolicy()
	day := Classify(p, "08:20 11:30", false)
	assert.Equal(t, status.ClassNormal, day.Classification)
	assert.False(t, day.EarlyLeave)
	assert.Equal(t, "normal(08:20, 11:30)", day.Render())
}

func TestNewPolicyValidation(t *testing.T) {
	_, err := NewPolicy("8h30", "18:00", 30*time.Minute, 3*time.Hour, 30*time.Minute)
	assert.Error(t, err)

	_, err = NewPolicy("08:33", "18:00", 3*time.Hour, 30*time.Minute, 30*time.Minute)
	assert.Error(t, err, "half-day threshold above full-day threshold")

	_, err = NewPolicy("08:33", "18:00", 0, 3*time.Hour, 30*time.Minute)
	assert.Error(t, err)

	p, err := NewPolicy("08:33", "18:00", 30*time.Minute, 3*time.Hour, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "08:33", p.MorningLimit.Format("15:04"))
}
