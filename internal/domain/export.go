package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per schedule, with plan fields
// repeated for every schedule on that plan. Plans with no schedules yield one
// row with zero values for all schedule fields.
type ExportRow struct {
	// Plan fields, repeated for every schedule on the plan.
	PlanID    string
	PlanTitle string
	PlanDates string // display text of the aggregate range

	// Schedule fields, zero values when the plan has no schedules.
	Position            int
	ScheduleTitle       string
	ScheduleDescription string
	Latitude            *float64
	Longitude           *float64
	FromDate            *time.Time
	ToDate              *time.Time
}
