package event

import "errors"

var (
	ErrBadDateRange   = errors.New("unparseable event date range")
	ErrBadDuration    = errors.New("unparseable event duration")
	ErrMissingColumns = errors.New("source sheet is missing required columns")
)
