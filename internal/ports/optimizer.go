package ports

import (
	"context"

	"lastmile-routing-service/internal/domain"
)

// OptimizeStop is one delivery destination submitted to the provider.
// Submission order matters: the provider's original-index hints refer
// back to it, with the route origin occupying position 0.
type OptimizeStop struct {
	Lat        float64
	Lng        float64
	Label      string
	ExternalID string
}

// Waypoint is a provider-returned point in the optimized path, not yet
// correlated to a specific stop.
//
// WaypointIndex is the provider-assigned visit position. OriginalIndex,
// when present, is a 1-based hint back to submission order (0 means the
// origin). Both are optional in the provider contract, hence pointers.
type Waypoint struct {
	Location      domain.Coordinate
	WaypointIndex *int
	OriginalIndex *int
}

// Leg is the travel segment between two consecutive waypoints, indexed
// positionally to match waypoint ordering.
type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// OptimizeRequest describes one optimization call.
type OptimizeRequest struct {
	Origin    domain.Coordinate
	Stops     []OptimizeStop
	Profile   string
	RoundTrip bool
}

// OptimizeResult is the provider's validated response. Malformed
// payloads are rejected at the client boundary, never propagated here.
type OptimizeResult struct {
	Waypoints   []Waypoint
	Legs        []Leg
	DistanceKm  float64
	DurationMin float64
	Geometry    string
	RequestID   string
}

// RouteOptimizer is the external route-optimization provider, reachable
// as a black box through this narrow interface.
type RouteOptimizer interface {
	Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResult, error)
}
