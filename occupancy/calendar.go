package occupancy

import (
	"time"

	"posada/apperr"
)

// DateLayout is the wire format for calendar dates. All nights are
// date-only values pinned to UTC midnight so a reservation made for
// "2024-06-01" occupies the night of 2024-06-01 regardless of the
// server's timezone.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperr.Wrap(apperr.Validation, err, "fecha no válida: %q", s)
	}
	return d.UTC(), nil
}

// Nights returns the numberOfDays consecutive nights starting at start,
// the half-open range [start, start+numberOfDays). The first night is the
// arrival date itself.
func Nights(start time.Time, numberOfDays int) []time.Time {
	nights := make([]time.Time, 0, numberOfDays)
	for i := 0; i < numberOfDays; i++ {
		nights = append(nights, start.AddDate(0, 0, i))
	}
	return nights
}

// Covers reports whether night falls within the stay [start, start+days).
func Covers(night, start time.Time, days int) bool {
	return !night.Before(start) && night.Before(start.AddDate(0, 0, days))
}

// Overlaps reports whether any night in nights falls within the stay
// [otherStart, otherStart+otherDays).
func Overlaps(nights []time.Time, otherStart time.Time, otherDays int) bool {
	for _, n := range nights {
		if Covers(n, otherStart, otherDays) {
			return true
		}
	}
	return false
}
