package calendar

import "errors"

var ErrCalendarNotFound = errors.New("no rest calendar configured")
