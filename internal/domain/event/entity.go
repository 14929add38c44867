package event

import (
	"time"

	"github.com/attendly-hq/attendance-engine-go/internal/pkg/status"
)

// TripEvent is one approved business trip covering a day range.
type TripEvent struct {
	EmployeeName string
	Start        time.Time
	End          time.Time
	Reason       string
	Duration     string
	Source       status.Source
}

// LeaveEvent is one approved leave request covering a day range. Names are
// stored with the known suffix variant already stripped at ingestion.
type LeaveEvent struct {
	EmployeeName string
	Start        time.Time
	End          time.Time
	Reason       string
	Duration     string
	Source       status.Source
}

// OvertimeEvent is one approved overtime request. DurationText holds the
// raw hour value with its unit suffix; parsing happens at overlay time so a
// bad value skips only that event.
type OvertimeEvent struct {
	EmployeeName string
	Start        time.Time
	End          time.Time
	DurationText string
	Reason       string
	Source       status.Source
}
