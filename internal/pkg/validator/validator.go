package validator

import (
	"regexp"
	"strings"
	"time"
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

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ObjectID: 24 hexadecimal characters, either case.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func IsValidObjectID(id string) bool {
	return objectIDRegex.MatchString(id)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Month validation (YYYY-MM)
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse("2006-01", monthStr)
	return month, err == nil
}

// MonthRange returns the [first day, first day of next month) bounds of a YYYY-MM month.
func MonthRange(monthStr string) (from string, to string, ok bool) {
	month, valid := IsValidMonth(monthStr)
	if !valid {
		return "", "", false
	}
	return month.Format("2006-01-02"), month.AddDate(0, 1, 0).Format("2006-01-02"), true
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
