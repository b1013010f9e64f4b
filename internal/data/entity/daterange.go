package entity

import (
	"fmt"
	"math"
	"time"
)

// DateRange is a half-open rental period [Start, End). Obtain values through
// NewDateRange so both ends are validated together.
type DateRange struct {
	Start time.Time `db:"start_date"`
	End   time.Time `db:"end_date"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if !start.Before(end) {
		return DateRange{}, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	return DateRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open ranges intersect. Touching endpoints
// (one range ending exactly when another begins) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Days returns the rental duration in whole days, rounding partial days up.
// Never less than 1.
func (r DateRange) Days() int {
	days := int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
