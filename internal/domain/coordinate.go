package domain

import "math"

// Coordinate is a WGS 84 point in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within [-90, 90] latitude and
// [-180, 180] longitude. NaN and infinities are rejected.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// AnnotatedCoordinate pairs a coordinate with the title of the schedule it
// came from. It is only used for map framing and is never persisted.
type AnnotatedCoordinate struct {
	Title      string     `json:"title"`
	Coordinate Coordinate `json:"coordinate"`
}
