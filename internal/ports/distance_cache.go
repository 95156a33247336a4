package ports

import (
	"context"

	"lastmile-routing-service/internal/domain"
)

// DistanceCache stores point-to-point distance results keyed by the
// coordinate pair and travel profile. Implementations must be safe for
// concurrent use.
type DistanceCache interface {
	// Get returns the cached result and whether it was present.
	Get(ctx context.Context, from, to domain.Coordinate, profile string) (DistanceResult, bool, error)
	Put(ctx context.Context, from, to domain.Coordinate, profile string, result DistanceResult) error
}
