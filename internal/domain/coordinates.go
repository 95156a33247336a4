package domain

import "math"

// Tolerances in coordinate degrees.
//
// coordEqualTolerance treats two points as the same physical location.
// proximityWarnTolerance bounds how far a nearest-neighbor repair may
// drift before it is considered suspicious.
const (
	coordEqualTolerance    = 1e-4
	proximityWarnTolerance = 5e-3
)

// Immutable geographic coordinate (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Return the coordinate as [lng, lat] for external API compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// IsFinite reports whether both components are usable numbers.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// SameCoordinate reports whether two points coincide within the
// equality tolerance on both axes.
func SameCoordinate(a, b Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) < coordEqualTolerance &&
		math.Abs(a.Lng-b.Lng) < coordEqualTolerance
}

// CoordinateDistance returns the Euclidean distance between two points
// in degree space. It is a matching metric, not a travel distance.
func CoordinateDistance(a, b Coordinate) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// WithinProximityTolerance reports whether a nearest-neighbor distance
// is close enough to assign silently.
func WithinProximityTolerance(distance float64) bool {
	return distance < proximityWarnTolerance
}
