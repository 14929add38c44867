package timesheet

import "errors"

var (
	ErrEmployeeNotFound = errors.New("no attendance row for employee")
	ErrInvalidDay       = errors.New("day of month out of range")
)
