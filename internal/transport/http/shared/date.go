package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD. A bare date is anchored to
// midnight in loc so the instant stays on the named calendar day when
// later compared in that location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}
