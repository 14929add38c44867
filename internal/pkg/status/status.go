// Package status owns the day-status wire vocabulary.
//
// A day cell in the result table is free text, but every token in it is
// produced and parsed here. The classifier renders through Day, the overlay
// stages append through the note builders, and the aggregator reads back
// through Categories and OvertimeHours. Keeping all of it in one package is
// what keeps the writers and the readers in lockstep.
package status

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies the upstream system an event was ingested from.
type Source string

const (
	SourceOriginA Source = "origin-A"
	SourceOriginB Source = "origin-B"
)

// Sources lists the known upstream systems in a stable order.
func Sources() []Source {
	return []Source{SourceOriginA, SourceOriginB}
}

// Classification is the base outcome of classifying one employee-day.
type Classification int

const (
	// ClassEmpty is a rest day with no punches; the cell stays empty.
	ClassEmpty Classification = iota
	// ClassRestRaw is a rest day with punches; the raw cell is kept verbatim.
	ClassRestRaw
	// ClassMissingPunch is a workday with fewer than two punches.
	ClassMissingPunch
	// ClassAbsentFull is lateness of three hours or more.
	ClassAbsentFull
	// ClassAbsentHalf is lateness in the half-day band.
	ClassAbsentHalf
	// ClassNormal covers everything else, optionally tagged late/early-leave.
	ClassNormal
)

// Wire tokens. The aggregator matches these by substring, so their exact
// spelling is part of the persisted format.
const (
	tokenNormal       = "normal"
	tokenLate         = "late"
	tokenEarlyLeave   = "early-leave"
	tokenMissingPunch = "missing-punch(1 day)"
	tokenAbsentFull   = "absent-full(1 day)"
	tokenAbsentHalf   = "absent-half(0.5 day)"
	tokenTripPrefix   = "business-trip("
)

// Day is the structured form of a single day's status before rendering.
// Overlay notes are ordered: they render in the order they were applied.
type Day struct {
	Classification Classification
	Late           bool
	EarlyLeave     bool
	Morning        time.Time
	Evening        time.Time
	Raw            string
	Overlays       []Overlay
}

// OverlayKind tags an overlay annotation.
type OverlayKind int

const (
	OverlayTrip OverlayKind = iota
	OverlayLeave
	OverlayOvertime
)

// Overlay is one annotation layered onto a day after base classification.
type Overlay struct {
	Kind     OverlayKind
	Source   Source
	Reason   string
	Duration string
	Hours    float64
}

// Apply layers the annotation onto an existing wire string. A trip replaces
// the string outright; leave and overtime append their notes. The overlay
// stages and Day.Render both go through here so the two paths cannot drift.
func (ov Overlay) Apply(current string) string {
	switch ov.Kind {
	case OverlayTrip:
		return TripOverride(ov.Reason)
	case OverlayLeave:
		return AppendLeaveNote(current, ov.Source, ov.Duration, ov.Reason)
	case OverlayOvertime:
		return AppendOvertimeNote(current, ov.Source, ov.Hours)
	}
	return current
}

// Render produces the canonical wire string for the day. This is the only
// place base classifications are turned into text.
func (d Day) Render() string {
	s := d.renderBase()
	for _, ov := range d.Overlays {
		s = ov.Apply(s)
	}
	return s
}

func (d Day) renderBase() string {
	switch d.Classification {
	case ClassEmpty:
		return ""
	case ClassRestRaw:
		return d.Raw
	case ClassMissingPunch:
		if d.Raw != "" {
			return tokenMissingPunch + " " + d.Raw
		}
		return tokenMissingPunch
	case ClassAbsentFull:
		return tokenAbsentFull + d.window()
	case ClassAbsentHalf:
		return tokenAbsentHalf + d.window()
	case ClassNormal:
		var tags []string
		if d.Late {
			tags = append(tags, tokenLate)
		}
		if d.EarlyLeave {
			tags = append(tags, tokenEarlyLeave)
		}
		if len(tags) == 0 {
			return tokenNormal + d.window()
		}
		return strings.Join(tags, "+") + d.window()
	}
	return ""
}

func (d Day) window() string {
	return "(" + d.Morning.Format("15:04") + ", " + d.Evening.Format("15:04") + ")"
}

// TripOverride renders the business-trip status. It replaces whatever the
// cell held before.
func TripOverride(reason string) string {
	return tokenTripPrefix + reason + ")"
}

// AppendLeaveNote appends a leave note to the current cell value. The note
// carries its own newline separator; when the cell is empty the separator
// is dropped.
func AppendLeaveNote(current string, src Source, duration, reason string) string {
	note := "\n" + string(src) + "-leave(" + duration + ")(" + reason + ")"
	if strings.TrimSpace(current) == "" {
		return strings.TrimPrefix(note, "\n")
	}
	return current + note
}

// AppendOvertimeNote appends an overtime note to the current cell value.
func AppendOvertimeNote(current string, src Source, hours float64) string {
	note := string(src) + "overtime(" + FormatHours(hours) + "h)"
	if strings.TrimSpace(current) == "" {
		return note
	}
	return current + " + " + note
}

// FormatHours renders an overtime hour count the way the notes carry it.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

// Categories reports which aggregation categories a rendered status matches.
// Tests are independent: one day can be late and hold a leave note at once.
type Categories struct {
	Normal       bool
	Late         bool
	EarlyLeave   bool
	MissingPunch bool
	Absent       bool
	BusinessTrip bool
	Leave        bool
}

// CategoriesOf runs the substring tests over a rendered status string.
// The leave test is keyed on the source-prefixed note token so that the
// early-leave tag never counts as leave.
func CategoriesOf(s string) Categories {
	var c Categories
	if s == "" {
		return c
	}
	c.Normal = strings.Contains(s, tokenNormal)
	c.Late = strings.Contains(s, tokenLate)
	c.EarlyLeave = strings.Contains(s, tokenEarlyLeave)
	c.MissingPunch = strings.Contains(s, "missing-punch")
	c.Absent = strings.Contains(s, "absent-full") || strings.Contains(s, "absent-half")
	c.BusinessTrip = strings.Contains(s, "business-trip")
	for _, src := range Sources() {
		if strings.Contains(s, string(src)+"-leave(") {
			c.Leave = true
			break
		}
	}
	return c
}

var overtimeNoteRe = regexp.MustCompile(`(origin-A|origin-B)overtime\((\d+\.?\d*)h\)`)

// OvertimeHours scans a rendered status for overtime notes and returns the
// hour sum per source. Decimal sums keep the combined monthly total equal to
// the per-source totals.
func OvertimeHours(s string) map[Source]decimal.Decimal {
	sums := make(map[Source]decimal.Decimal, 2)
	for _, m := range overtimeNoteRe.FindAllStringSubmatch(s, -1) {
		hours, err := decimal.NewFromString(m[2])
		if err != nil {
			continue
		}
		src := Source(m[1])
		sums[src] = sums[src].Add(hours)
	}
	return sums
}

// Display icons, one per recognized category, plus the rest-day marker.
const (
	iconRestDay      = "🏠"
	iconNormal       = "✅"
	iconLate         = "⏰"
	iconEarlyLeave   = "⚡"
	iconMissingPunch = "❌"
	iconAbsent       = "⛔"
	iconBusinessTrip = "🚗"
	iconLeave        = "📝"
)

// FormatForDisplay prepends category icons to a rendered status for report
// output. It never mutates stored state; callers pass a copy of the cell.
func FormatForDisplay(s string, restDay bool) string {
	if s == "" {
		return ""
	}
	var icons strings.Builder
	if restDay {
		icons.WriteString(iconRestDay)
	}
	c := CategoriesOf(s)
	if c.Normal {
		icons.WriteString(iconNormal)
	}
	if c.Late {
		icons.WriteString(iconLate)
	}
	if c.EarlyLeave {
		icons.WriteString(iconEarlyLeave)
	}
	if c.MissingPunch {
		icons.WriteString(iconMissingPunch)
	}
	if c.Absent {
		icons.WriteString(iconAbsent)
	}
	if c.BusinessTrip {
		icons.WriteString(iconBusinessTrip)
	}
	if c.Leave {
		icons.WriteString(iconLeave)
	}
	if icons.Len() == 0 {
		return s
	}
	if restDay {
		return icons.String() + " rest-day\n" + s
	}
	return icons.String() + " " + s
}
