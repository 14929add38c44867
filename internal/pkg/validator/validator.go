package validator

import (
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsValidDayOfMonth reports whether day addresses a real day column.
func IsValidDayOfMonth(day int) bool {
	return day >= 1 && day <= 31
}

// Report file name validation: the download endpoint only serves xlsx files
// and never path components.
var reportFileRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+\.xlsx$`)

func IsValidReportFileName(name string) bool {
	return reportFileRegex.MatchString(name)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
