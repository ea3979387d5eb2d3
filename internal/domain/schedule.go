package domain

import (
	"strings"
	"time"
)

// Schedule is one planned stop within a Plan.
// It has no identity of its own: it is addressed by its position in the
// owning plan, so reordering changes which index refers to it.
// FromDate and ToDate are either both set or both nil on a valid schedule.
type Schedule struct {
	Title       string
	Description string
	Coordinate  Coordinate
	FromDate    *time.Time
	ToDate      *time.Time
}

// Validate checks the schedule and returns the first failure found, in the
// order title, date pair, coordinate. The returned error is one of the
// Err* validation sentinels.
func (s Schedule) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrTitleRequired
	}
	switch {
	case s.FromDate == nil && s.ToDate != nil:
		return ErrFromDateMissing
	case s.FromDate != nil && s.ToDate == nil:
		return ErrToDateMissing
	case s.FromDate != nil && s.FromDate.After(*s.ToDate):
		return ErrFromDateAfterToDate
	}
	if !s.Coordinate.Valid() {
		return ErrInvalidCoordinate
	}
	return nil
}

// HasDates reports whether both dates are set.
func (s Schedule) HasDates() bool {
	return s.FromDate != nil && s.ToDate != nil
}
