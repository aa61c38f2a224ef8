package services

import (
	"time"
)

// parseDate accepts the two date formats clients send: plain calendar dates
// and full RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d.UTC(), nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}

// parseDateField parses an optional request date, reporting which field was
// invalid for the validation message.
func parseDateField(field, value string) (time.Time, error) {
	d, err := parseDate(value)
	if err != nil {
		return time.Time{}, NewValidation("invalid %s: %q is not a date", field, value)
	}
	return d, nil
}
