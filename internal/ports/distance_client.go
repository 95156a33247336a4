package ports

import (
	"context"

	"lastmile-routing-service/internal/domain"
)

// Point-to-point travel distance and duration.
type DistanceResult struct {
	DistanceKm  float64
	DurationMin float64
}

// DistanceClient retrieves travel metrics between two coordinates using
// the given travel profile.
type DistanceClient interface {
	Distance(ctx context.Context, from, to domain.Coordinate, profile string) (DistanceResult, error)
}
