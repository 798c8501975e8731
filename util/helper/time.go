package helper_util

import (
	"fmt"
	"time"

	rm_errors "github.com/abhiraj070/RuleMind/errors"
)

// ParseTime accepts RFC 3339 timestamps or plain dates (YYYY-MM-DD, UTC).
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseTimeRange parses optional from/to bounds. A plain-date upper bound
// covers the whole day.
func ParseTimeRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = ParseTime(from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from %q", rm_errors.ErrValidation, from)
		}
	}
	if to != "" {
		if end, err = ParseTime(to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to %q", rm_errors.ErrValidation, to)
		}
		if len(to) == len(time.DateOnly) {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to is before from", rm_errors.ErrValidation)
	}
	return start, end, nil
}
