package services

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/ports"
)

// Assignment pairs one optimizer waypoint with exactly one validated
// stop, plus the leg arriving at it (nil when the optimizer returned
// no matching leg).
type Assignment struct {
	StopIndex int
	Stop      StopInfo
	Waypoint  ports.Waypoint
	Leg       *ports.Leg
}

// ResolveAssignments maps the optimizer's waypoints back onto the
// submitted stops, producing a bijection in optimizer visit order.
//
// The provider offers no guaranteed correlation back to caller-supplied
// identifiers, so matching runs through four tiers: the original-index
// hint, an exact coordinate match, a nearest-neighbor repair, and a
// first-unused fallback. The same stop is never assigned twice.
func ResolveAssignments(
	origin domain.Coordinate,
	stops []StopInfo,
	result *ports.OptimizeResult,
	logger *zap.Logger,
) ([]Assignment, error) {
	waypoints := filterOrigin(origin, result.Waypoints)

	// Order waypoints by optimizer-assigned visit position.
	sort.SliceStable(waypoints, func(i, j int) bool {
		return visitIndex(waypoints[i]) < visitIndex(waypoints[j])
	})

	if len(waypoints) == 0 {
		return nil, domain.NewProviderContractError(
			"optimizer returned no delivery waypoints for the computed route")
	}

	if len(waypoints) < len(stops) {
		return nil, domain.NewProviderContractError(
			"optimizer returned %d waypoints for %d submitted stops", len(waypoints), len(stops))
	}

	if len(waypoints) > len(stops) {
		logger.Warn("optimizer returned surplus waypoints; keeping the first in optimized order",
			zap.Int("waypoints", len(waypoints)),
			zap.Int("stops", len(stops)),
		)
		waypoints = waypoints[:len(stops)]
	}

	used := make(map[int]struct{}, len(stops))
	assignments := make([]Assignment, 0, len(waypoints))

	for pos, wp := range waypoints {
		idx, err := resolveStopIndex(wp, stops, used, logger)
		if err != nil {
			return nil, err
		}
		used[idx] = struct{}{}

		assignments = append(assignments, Assignment{
			StopIndex: idx,
			Stop:      stops[idx],
			Waypoint:  wp,
			Leg:       legFor(wp, pos, result.Legs),
		})
	}

	return assignments, nil
}

// filterOrigin drops the provider's echo of the route origin: an
// original-index hint of 0, or, absent a hint, a location matching
// the resolved origin within the equality tolerance.
func filterOrigin(origin domain.Coordinate, waypoints []ports.Waypoint) []ports.Waypoint {
	out := make([]ports.Waypoint, 0, len(waypoints))
	for _, wp := range waypoints {
		if wp.OriginalIndex != nil {
			if *wp.OriginalIndex > 0 {
				out = append(out, wp)
			}
			continue
		}
		if !domain.SameCoordinate(wp.Location, origin) {
			out = append(out, wp)
		}
	}
	return out
}

func visitIndex(wp ports.Waypoint) int {
	if wp.WaypointIndex != nil {
		return *wp.WaypointIndex
	}
	return 0
}

// legFor picks the leg arriving at this waypoint: by provider visit
// index when present, by output position otherwise.
func legFor(wp ports.Waypoint, position int, legs []ports.Leg) *ports.Leg {
	idx := position
	if wp.WaypointIndex != nil {
		idx = *wp.WaypointIndex
	}
	if idx < 0 || idx >= len(legs) {
		return nil
	}
	leg := legs[idx]
	return &leg
}

// resolveStopIndex finds the submitted stop a waypoint refers to.
//
// Tier 1: the 1-based original-index hint, when it addresses an unused
// stop. Tier 2: first unused stop at the same coordinate. Tier 3:
// nearest unused stop, warning when it lies beyond the proximity
// tolerance; ties break to the lowest submission index. Tier 4: first
// unused stop in submission order, guarding against a resolver bug
// upstream. Exhaustion is a contract failure, never a guess.
func resolveStopIndex(
	wp ports.Waypoint,
	stops []StopInfo,
	used map[int]struct{},
	logger *zap.Logger,
) (int, error) {
	if wp.OriginalIndex != nil && *wp.OriginalIndex > 0 {
		candidate := *wp.OriginalIndex - 1
		if candidate < len(stops) {
			if _, taken := used[candidate]; !taken {
				return candidate, nil
			}
		}
	}

	for i, stop := range stops {
		if _, taken := used[i]; taken {
			continue
		}
		if domain.SameCoordinate(stop.Destination, wp.Location) {
			return i, nil
		}
	}

	bestIdx := -1
	bestDistance := math.Inf(1)
	for i, stop := range stops {
		if _, taken := used[i]; taken {
			continue
		}
		d := domain.CoordinateDistance(stop.Destination, wp.Location)
		if d < bestDistance {
			bestDistance = d
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		if !domain.WithinProximityTolerance(bestDistance) {
			logger.Warn("waypoint outside proximity tolerance; assigning nearest stop",
				zap.Float64("distance_deg", bestDistance),
				zap.Int64("order_id", stops[bestIdx].Order.OrderID),
			)
		}
		return bestIdx, nil
	}

	for i := range stops {
		if _, taken := used[i]; !taken {
			logger.Warn("waypoint had no precise match; assigning first unused stop",
				zap.Int64("order_id", stops[i].Order.OrderID),
			)
			return i, nil
		}
	}

	return 0, domain.NewProviderContractError(
		"could not determine the order behind an optimizer waypoint at (%.6f, %.6f)",
		wp.Location.Lat, wp.Location.Lng)
}
