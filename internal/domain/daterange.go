package domain

import (
	"fmt"
	"time"
)

// DateRange is the aggregate span of a plan. Either bound may be nil when no
// schedule carries that date.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// AggregateDateRange returns the earliest FromDate and the latest ToDate
// across schedules. Schedules without a date are skipped rather than
// treated as earliest or latest. On ties the first schedule in list order
// wins, so the returned pointers always refer to the first occurrence.
// The result depends only on the dates present, not on their order.
func AggregateDateRange(schedules []Schedule) DateRange {
	var r DateRange
	for i := range schedules {
		if d := schedules[i].FromDate; d != nil && (r.From == nil || d.Before(*r.From)) {
			r.From = d
		}
		if d := schedules[i].ToDate; d != nil && (r.To == nil || d.After(*r.To)) {
			r.To = d
		}
	}
	return r
}

// DateFormatter renders a date at day granularity.
type DateFormatter interface {
	Format(t time.Time) string
}

// LayoutFormatter formats dates with a time.Format layout in a fixed location.
type LayoutFormatter struct {
	Layout   string
	Location *time.Location
}

// DefaultDateLayout is the layout used when none is configured.
const DefaultDateLayout = "2006.01.02"

// DefaultNoDateText is shown for a plan whose schedules carry no dates.
const DefaultNoDateText = "No dates"

// Format implements DateFormatter.
// A value at midnight in its own zone is a calendar day and keeps its
// year, month and day in Location. Any other value is converted as an instant.
func (f LayoutFormatter) Format(t time.Time) string {
	layout := f.Layout
	if layout == "" {
		layout = DefaultDateLayout
	}
	if f.Location != nil {
		if isCalendarDay(t) {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, f.Location)
		} else {
			t = t.In(f.Location)
		}
	}
	return t.Format(layout)
}

func isCalendarDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// DateText renders a date range for display.
//   - If either bound is nil the noDate placeholder is returned.
//   - If both bounds format to the same day, that single day is returned.
//   - Otherwise "{from} ~ {to}".
func DateText(r DateRange, f DateFormatter, noDate string) string {
	if r.From == nil || r.To == nil {
		return noDate
	}
	from, to := f.Format(*r.From), f.Format(*r.To)
	if from == to {
		return from
	}
	return fmt.Sprintf("%s ~ %s", from, to)
}
