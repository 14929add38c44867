package attendance

import (
	"regexp"
	"time"

	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

var punchRe = regexp.MustCompile(`\d{2}:\d{2}`)

// ExtractPunches pulls every HH:MM token out of a raw punch cell. Tokens
// that are not valid 24-hour clock times are dropped.
func ExtractPunches(raw string) []time.Time {
	matches := punchRe.FindAllString(raw, -1)
	punches := make([]time.Time, 0, len(matches))
	for _, m := range matches {
		t, err := time.Parse("15:04", m)
		if err != nil {
			continue
		}
		punches = append(punches, t)
	}
	return punches
}

// Classify derives the base status for one employee-day from the raw punch
// cell and the day's rest flag. It is a pure function of its inputs and the
// policy; overlays are layered on later by the merge stages.
func Classify(p Policy, raw string, restDay bool) status.Day {
	punches := ExtractPunches(raw)

	if restDay {
		if len(punches) == 0 {
			return status.Day{Classification: status.ClassEmpty}
		}
		// Punches on a rest day are kept verbatim, unclassified.
		return status.Day{Classification: status.ClassRestRaw, Raw: raw}
	}

	if len(punches) < 2 {
		return status.Day{Classification: status.ClassMissingPunch, Raw: raw}
	}

	morning, evening := punches[0], punches[0]
	for _, t := range punches[1:] {
		if t.Before(morning) {
			morning = t
		}
		if t.After(evening) {
			evening = t
		}
	}

	var lateness time.Duration
	if morning.After(p.MorningLimit) {
		lateness = morning.Sub(p.MorningLimit)
	}

	var earlyGap time.Duration
	afternoon := evening.Hour() >= 12
	if afternoon && evening.Before(p.EveningLimit) {
		earlyGap = p.EveningLimit.Sub(evening)
	}

	day := status.Day{Morning: morning, Evening: evening}

	// Absence bands take precedence over the late/early-leave tags.
	switch {
	case lateness >= p.FullDayAbsent:
		day.Classification = status.ClassAbsentFull
	case lateness >= p.HalfDayAbsent:
		day.Classification = status.ClassAbsentHalf
	default:
		day.Classification = status.ClassNormal
		day.Late = lateness > 0
		day.EarlyLeave = afternoon && earlyGap >= p.EarlyLeaveThreshold
	}
	return day
}
