package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for start and due dates.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC3339")

// ParseDate parses an optional date. nil or blank input yields nil.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	s := strings.TrimSpace(*value)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, ErrInvalidDate
}
