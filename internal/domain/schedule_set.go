package domain

import "slices"

// ScheduleSet is an ordered, mutable list of schedules.
// Order is meaningful: it is the display order and the camera pointer order.
// The zero value is an empty set ready to use.
type ScheduleSet struct {
	items []Schedule
}

// NewScheduleSet returns a set holding a copy of schedules.
func NewScheduleSet(schedules []Schedule) ScheduleSet {
	return ScheduleSet{items: slices.Clone(schedules)}
}

// Len returns the number of schedules.
func (s *ScheduleSet) Len() int {
	return len(s.items)
}

// At returns the schedule at index.
func (s *ScheduleSet) At(index int) (Schedule, error) {
	if err := s.check(index); err != nil {
		return Schedule{}, err
	}
	return s.items[index], nil
}

// All returns a copy of the schedules in order.
// Always non-nil so callers can range over it or encode it as [].
func (s *ScheduleSet) All() []Schedule {
	if s.items == nil {
		return []Schedule{}
	}
	return slices.Clone(s.items)
}

// Add appends schedule to the end of the set.
func (s *ScheduleSet) Add(schedule Schedule) {
	s.items = append(s.items, schedule)
}

// Edit replaces the schedule at index.
func (s *ScheduleSet) Edit(index int, schedule Schedule) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.items[index] = schedule
	return nil
}

// Remove deletes the schedule at index, shifting later schedules down.
func (s *ScheduleSet) Remove(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	s.items = slices.Delete(s.items, index, index+1)
	return nil
}

// Move takes the schedule at source and reinserts it at destination,
// shifting the schedules in between by one. This is the reorderable-list
// move, not an exchange of two slots. Equal indexes are a no-op.
func (s *ScheduleSet) Move(source, destination int) error {
	return MoveItem(s.items, source, destination)
}

// MoveItem reorders items in place: the element at source is taken out and
// reinserted at destination. Both indexes must lie in [0, len(items)),
// otherwise ErrIndexOutOfRange is returned and items is untouched.
func MoveItem[T any](items []T, source, destination int) error {
	n := len(items)
	if source < 0 || source >= n {
		return indexError(source, n)
	}
	if destination < 0 || destination >= n {
		return indexError(destination, n)
	}
	moved := items[source]
	switch {
	case source < destination:
		copy(items[source:destination], items[source+1:destination+1])
	case source > destination:
		copy(items[destination+1:source+1], items[destination:source])
	}
	items[destination] = moved
	return nil
}

func (s *ScheduleSet) check(index int) error {
	if index < 0 || index >= len(s.items) {
		return indexError(index, len(s.items))
	}
	return nil
}
