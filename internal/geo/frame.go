// Package geo computes map camera framing for a set of plan coordinates:
// a center and span that contain every stop, and a cyclic pointer for
// stepping the camera from stop to stop.
//
// The center is a plain arithmetic mean of latitudes and longitudes. It is
// not geodesically correct across the antimeridian or near the poles, which
// is acceptable for short-range itineraries.
package geo

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yeolmok/travel-planner/backend/internal/domain"
)

// Default framing constants, in degrees.
const (
	DefaultSinglePointSpan = 0.005
	DefaultPadding         = 0.02
)

// Span is the visible extent of a region, in degrees.
type Span struct {
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

// Region is a map camera target.
type Region struct {
	Center domain.Coordinate `json:"center"`
	Span   Span              `json:"span"`
}

// Framer holds the framing constants. The zero value uses the defaults.
type Framer struct {
	// SinglePointSpan is used on both axes when there is only one coordinate.
	SinglePointSpan float64
	// Padding is added to the extent of each axis when there are several.
	Padding float64
}

// Frame frames coordinates with the default constants.
func Frame(coordinates []domain.Coordinate) (Region, error) {
	return Framer{}.Frame(coordinates)
}

// Frame returns a region centered on the mean of coordinates whose span
// covers their latitude and longitude extents plus padding. A single
// coordinate gets a fixed close-up span. An empty list returns
// domain.ErrEmptyInput.
func (f Framer) Frame(coordinates []domain.Coordinate) (Region, error) {
	switch len(coordinates) {
	case 0:
		return Region{}, fmt.Errorf("geo.Frame: %w", domain.ErrEmptyInput)
	case 1:
		span := f.singlePointSpan()
		return Region{
			Center: coordinates[0],
			Span:   Span{LatitudeDelta: span, LongitudeDelta: span},
		}, nil
	}

	lats := make([]float64, len(coordinates))
	lons := make([]float64, len(coordinates))
	for i, c := range coordinates {
		lats[i] = c.Latitude
		lons[i] = c.Longitude
	}

	pad := f.padding()
	return Region{
		Center: domain.Coordinate{
			Latitude:  stat.Mean(lats, nil),
			Longitude: stat.Mean(lons, nil),
		},
		Span: Span{
			LatitudeDelta:  floats.Max(lats) - floats.Min(lats) + pad,
			LongitudeDelta: floats.Max(lons) - floats.Min(lons) + pad,
		},
	}, nil
}

func (f Framer) singlePointSpan() float64 {
	if f.SinglePointSpan > 0 {
		return f.SinglePointSpan
	}
	return DefaultSinglePointSpan
}

func (f Framer) padding() float64 {
	if f.Padding > 0 {
		return f.Padding
	}
	return DefaultPadding
}
