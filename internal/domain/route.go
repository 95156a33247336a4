package domain

import (
	"fmt"
	"time"
)

// Route lifecycle statuses.
const (
	RouteStatusPending = "pending"
)

// Travel profiles accepted by the optimization provider.
const DefaultProfile = "driving"

var validProfiles = map[string]struct{}{
	"driving":         {},
	"driving-traffic": {},
	"walking":         {},
	"cycling":         {},
}

// ValidProfile reports whether the provider supports the given travel profile.
func ValidProfile(profile string) bool {
	_, ok := validProfiles[profile]
	return ok
}

// RouteStop is one delivery destination within a Route, placed at its
// optimized sequence position. DistanceKm and DurationMin describe the
// leg arriving at this stop; they are nil when the optimizer returned
// no matching leg (nil is distinct from "no travel").
type RouteStop struct {
	OrderID      int64
	Sequence     int
	DistanceKm   *float64
	DurationMin  *float64
	Destination  Coordinate
	AddressLabel string
}

// Route is the persistent aggregate produced by one optimization
// request. Stops are exclusively owned by their Route and ordered by
// Sequence ascending.
type Route struct {
	RouteID           int64
	Name              string
	CourierID         *int64
	Status            string
	ScheduledAt       *time.Time
	DistanceKm        float64
	DurationMin       float64
	Geometry          string
	ProviderRequestID string
	Profile           string
	Origin            Coordinate
	CreatedAt         time.Time
	Stops             []RouteStop
}

// ValidateStops checks the aggregate invariant: sequence numbers are
// exactly 1..N with no gaps or repeats.
func (r *Route) ValidateStops() error {
	seen := make(map[int]struct{}, len(r.Stops))
	for _, s := range r.Stops {
		if s.Sequence < 1 || s.Sequence > len(r.Stops) {
			return fmt.Errorf("route %d: stop sequence %d out of range 1..%d", r.RouteID, s.Sequence, len(r.Stops))
		}
		if _, ok := seen[s.Sequence]; ok {
			return fmt.Errorf("route %d: duplicate stop sequence %d", r.RouteID, s.Sequence)
		}
		seen[s.Sequence] = struct{}{}
	}
	return nil
}
