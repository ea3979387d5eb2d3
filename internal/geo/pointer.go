package geo

import (
	"fmt"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// NoIndex is the pointer position before the first step.
const NoIndex = -1

// Pointer cycles through a fixed list of coordinates for camera navigation.
// It belongs to one map-viewing session and is not safe for concurrent use.
type Pointer struct {
	coordinates []domain.AnnotatedCoordinate
	index       int
}

// NewPointer returns a pointer over coordinates positioned at NoIndex.
func NewPointer(coordinates []domain.AnnotatedCoordinate) *Pointer {
	return &Pointer{coordinates: coordinates, index: NoIndex}
}

// NewPointerAt returns a pointer positioned at index. Any index outside
// [0, len(coordinates)) is treated as NoIndex.
func NewPointerAt(coordinates []domain.AnnotatedCoordinate, index int) *Pointer {
	p := NewPointer(coordinates)
	if index >= 0 && index < len(coordinates) {
		p.index = index
	}
	return p
}

// Index returns the current position, NoIndex when unset.
func (p *Pointer) Index() int {
	return p.index
}

// Len returns the number of coordinates.
func (p *Pointer) Len() int {
	return len(p.coordinates)
}

// Reset replaces the coordinate list and moves back to NoIndex.
func (p *Pointer) Reset(coordinates []domain.AnnotatedCoordinate) {
	p.coordinates = coordinates
	p.index = NoIndex
}

// Advance steps forward, wrapping from the last coordinate to the first.
// From NoIndex it lands on the first coordinate.
func (p *Pointer) Advance() error {
	n := len(p.coordinates)
	if n == 0 {
		return fmt.Errorf("geo.Pointer.Advance: %w", domain.ErrEmptyInput)
	}
	p.index = (p.index + 1) % n
	return nil
}

// Retreat steps backward. From the first coordinate and from NoIndex alike
// it wraps to the last coordinate.
func (p *Pointer) Retreat() error {
	n := len(p.coordinates)
	if n == 0 {
		return fmt.Errorf("geo.Pointer.Retreat: %w", domain.ErrEmptyInput)
	}
	if p.index <= 0 {
		p.index = n - 1
	} else {
		p.index--
	}
	return nil
}

// Current returns the coordinate under the pointer.
// It returns domain.ErrEmptyInput when there are no coordinates and
// domain.ErrIndexOutOfRange when the pointer has not been stepped yet.
func (p *Pointer) Current() (domain.AnnotatedCoordinate, error) {
	if len(p.coordinates) == 0 {
		return domain.AnnotatedCoordinate{}, fmt.Errorf("geo.Pointer.Current: %w", domain.ErrEmptyInput)
	}
	if p.index == NoIndex {
		return domain.AnnotatedCoordinate{}, fmt.Errorf("geo.Pointer.Current: %w: pointer not positioned", domain.ErrIndexOutOfRange)
	}
	return p.coordinates[p.index], nil
}

// Direction is a camera step direction.
type Direction string

// Camera step directions.
const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

// ParseDirection accepts "next" and "previous"; anything else is a
// domain.ErrValidation.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Next, Previous:
		return d, nil
	}
	return "", fmt.Errorf("%w: direction must be %q or %q", domain.ErrValidation, Next, Previous)
}

// Step advances for Next and retreats for Previous.
func (p *Pointer) Step(d Direction) error {
	if d == Previous {
		return p.Retreat()
	}
	return p.Advance()
}
