// Package domain contains the core data types for the travel planner.
// It has no dependencies beyond uuid and is imported by every other internal
// package (repo, service, handler). The plan aggregate and its date-range
// rules live here so they can be used without any storage or transport.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan is a titled travel itinerary: an ordered list of schedules.
// Its date range is never stored; DateRange derives it from the current
// schedules on every call, so it cannot go stale after a mutation.
type Plan struct {
	ID          uuid.UUID
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	schedules ScheduleSet
}

// NewPlan builds a plan holding a copy of schedules.
func NewPlan(title, description string, schedules []Schedule) Plan {
	return Plan{
		Title:       title,
		Description: description,
		schedules:   NewScheduleSet(schedules),
	}
}

// SetMetadata replaces the plan's title and description.
func (p *Plan) SetMetadata(title, description string) {
	p.Title = title
	p.Description = description
}

// AddSchedule appends a schedule.
func (p *Plan) AddSchedule(s Schedule) {
	p.schedules.Add(s)
}

// EditSchedule replaces the schedule at index.
func (p *Plan) EditSchedule(index int, s Schedule) error {
	return p.schedules.Edit(index, s)
}

// RemoveSchedule deletes the schedule at index.
func (p *Plan) RemoveSchedule(index int) error {
	return p.schedules.Remove(index)
}

// SwapSchedules moves the schedule at source to destination.
// See ScheduleSet.Move for the exact shifting semantics.
func (p *Plan) SwapSchedules(source, destination int) error {
	return p.schedules.Move(source, destination)
}

// ReplaceSchedules swaps the whole schedule list for a copy of schedules.
func (p *Plan) ReplaceSchedules(schedules []Schedule) {
	p.schedules = NewScheduleSet(schedules)
}

// SchedulesCount returns the number of schedules.
func (p *Plan) SchedulesCount() int {
	return p.schedules.Len()
}

// Schedule returns the schedule at index.
func (p *Plan) Schedule(index int) (Schedule, error) {
	return p.schedules.At(index)
}

// Schedules returns a copy of the schedules in order.
func (p *Plan) Schedules() []Schedule {
	return p.schedules.All()
}

// DateRange returns the aggregate range of the plan's schedules.
func (p *Plan) DateRange() DateRange {
	return AggregateDateRange(p.schedules.items)
}

// DateText renders the plan's date range for display.
func (p *Plan) DateText(f DateFormatter, noDate string) string {
	return DateText(p.DateRange(), f, noDate)
}

// AnnotatedCoordinates returns one (title, coordinate) pair per schedule,
// in schedule order.
func (p *Plan) AnnotatedCoordinates() []AnnotatedCoordinate {
	out := make([]AnnotatedCoordinate, 0, p.schedules.Len())
	for _, s := range p.schedules.items {
		out = append(out, AnnotatedCoordinate{Title: s.Title, Coordinate: s.Coordinate})
	}
	return out
}

// Coordinates returns the schedule coordinates in schedule order.
func (p *Plan) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, p.schedules.Len())
	for _, s := range p.schedules.items {
		out = append(out, s.Coordinate)
	}
	return out
}

// Validate checks the plan title and every schedule.
// Schedule failures keep their sentinel and name the offending position.
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	for i, s := range p.schedules.items {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w (schedule %d)", err, i)
		}
	}
	return nil
}
