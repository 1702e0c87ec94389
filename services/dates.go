package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts an ISO-8601 date or an RFC3339 timestamp and returns the
// UTC midnight of the day it falls on in UTC. Naive dates are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not an ISO-8601 date", ErrInvalidInput, raw)
}

// StartOfDay normalizes t to midnight UTC.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed range of calendar days, both ends normalized to UTC midnight.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both ends and rejects ranges whose start is after their end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: StartOfDay(start), End: StartOfDay(end)}
	if r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidInput, r.Start.Format(dateLayout), r.End.Format(dateLayout))
	}
	return r, nil
}

// Days returns the number of calendar days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
