// internal/services/dates.go
package services

import "time"

// ParseTimeBound interprets a user-supplied date filter. RFC 3339 timestamps
// and plain YYYY-MM-DD dates are accepted; anything else, including empty
// input, means no bound rather than an error.
func ParseTimeBound(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
