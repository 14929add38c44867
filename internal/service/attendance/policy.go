package attendance

import (
	"fmt"
	"time"
)

// Policy carries the punch-rule constants for one classification pass. It
// is built once from configuration and passed in by value, so two months
// can be evaluated under different rules without cross-contamination.
type Policy struct {
	// MorningLimit is the clock-in deadline; lateness counts only strictly
	// after it.
	MorningLimit time.Time
	// EveningLimit is the scheduled end of the workday.
	EveningLimit time.Time
	// HalfDayAbsent is the lateness at which a half-day absence starts.
	HalfDayAbsent time.Duration
	// FullDayAbsent is the lateness at which a full-day absence starts.
	FullDayAbsent time.Duration
	// EarlyLeaveThreshold is the minimum shortfall from EveningLimit that
	// counts as an early leave.
	EarlyLeaveThreshold time.Duration
}

// NewPolicy parses the HH:MM limits and assembles a policy.
func NewPolicy(morningLimit, eveningLimit string, halfDay, fullDay, earlyLeave time.Duration) (Policy, error) {
	morning, err := time.Parse("15:04", morningLimit)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid morning limit %q: %w", morningLimit, err)
	}
	evening, err := time.Parse("15:04", eveningLimit)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid evening limit %q: %w", eveningLimit, err)
	}
	if halfDay <= 0 || fullDay <= 0 || earlyLeave <= 0 {
		return Policy{}, fmt.Errorf("absence thresholds must be positive")
	}
	if halfDay >= fullDay {
		return Policy{}, fmt.Errorf("half-day threshold must be below full-day threshold")
	}
	return Policy{
		MorningLimit:        morning,
		EveningLimit:        evening,
		HalfDayAbsent:       halfDay,
		FullDayAbsent:       fullDay,
		EarlyLeaveThreshold: earlyLeave,
	}, nil
}

// DefaultPolicy returns the standing office rules: 08:33 clock-in deadline,
// 18:00 end of day, absence bands at 30 minutes and 3 hours.
func DefaultPolicy() Policy {
	p, err := NewPolicy("08:33", "18:00", 30*time.Minute, 3*time.Hour, 30*time.Minute)
	if err != nil {
		panic(err)
	}
	return p
}
