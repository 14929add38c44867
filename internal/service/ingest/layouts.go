package ingest

import "github.com/attendly-hq/attendance-engine-go/internal/pkg/status"

// The seven source workbooks uploaded per run. One punch export plus one
// workbook per event category per origin system.
const (
	FilePunches         = "punches.xlsx"
	FileTripOriginA     = "trips-origin-a.xlsx"
	FileTripOriginB     = "trips-origin-b.xlsx"
	FileLeaveOriginA    = "leave-origin-a.xlsx"
	FileLeaveOriginB    = "leave-origin-b.xlsx"
	FileOvertimeOriginA = "overtime-origin-a.xlsx"
	FileOvertimeOriginB = "overtime-origin-b.xlsx"
)

// SourceFiles lists every required upload in a stable order.
func SourceFiles() []string {
	return []string{
		FilePunches,
		FileTripOriginA, FileTripOriginB,
		FileLeaveOriginA, FileLeaveOriginB,
		FileOvertimeOriginA, FileOvertimeOriginB,
	}
}

// Approval literals. Each origin system writes its own accepted-state
// string; anything else is discarded at ingestion.
const (
	approvedOriginA = "approved"
	approvedOriginB = "approval-passed"
)

// Origin-A exports put a banner row above the header; origin-B trip sheets
// do too, its leave and overtime sheets start at the header.
var (
	tripLayoutA = eventLayout{
		source:          status.SourceOriginA,
		headerRow:       2,
		nameHeader:      "Initiator Name",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Total Trip Duration (days)",
		reasonHeader:    "Trip Reason",
		approvalHeader:  "Request Status",
		approvedLiteral: approvedOriginA,
	}
	tripLayoutB = eventLayout{
		source:          status.SourceOriginB,
		headerRow:       2,
		nameHeader:      "Creator",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Duration",
		reasonHeader:    "Trip Reason",
		approvalHeader:  "Approval Result",
		approvedLiteral: approvedOriginB,
	}
	leaveLayoutA = eventLayout{
		source:          status.SourceOriginA,
		headerRow:       2,
		nameHeader:      "Initiator Name",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Duration",
		reasonHeader:    "Leave Reason",
		approvalHeader:  "Request Status",
		approvedLiteral: approvedOriginA,
	}
	leaveLayoutB = eventLayout{
		source:          status.SourceOriginB,
		headerRow:       1,
		nameHeader:      "Creator",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Duration",
		reasonHeader:    "Leave Reason",
		approvalHeader:  "Approval Result",
		approvedLiteral: approvedOriginB,
	}
	overtimeLayoutA = eventLayout{
		source:          status.SourceOriginA,
		headerRow:       2,
		nameHeader:      "Initiator Name",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Duration",
		reasonHeader:    "Details (Overtime Content)",
		approvalHeader:  "Request Status",
		approvedLiteral: approvedOriginA,
	}
	overtimeLayoutB = eventLayout{
		source:          status.SourceOriginB,
		headerRow:       1,
		nameHeader:      "Creator",
		startHeader:     "Start Time",
		endHeader:       "End Time",
		durationHeader:  "Duration (hours)",
		reasonHeader:    "Details (Overtime Content)",
		approvalHeader:  "Approval Result",
		approvedLiteral: approvedOriginB,
	}
)
