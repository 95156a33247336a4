package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/platform/obs"
	"lastmile-routing-service/internal/ports"
)

// SQLDistanceCache is a Postgres-backed cache for point-to-point
// distance lookups, keyed by the coordinate pair and travel profile.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Get fetches a cached result for one coordinate pair and profile.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	from, to domain.Coordinate,
	profile string,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}
	if profile == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: profile must not be empty")
	}

	q := `
	SELECT distance_km, duration_min
	FROM distance_cache
	WHERE origin_lat = $1 AND origin_lng = $2
		AND dest_lat = $3 AND dest_lng = $4
		AND profile = $5;
	`

	var result ports.DistanceResult
	err = s.DB.QueryRowContext(ctx, q, from.Lat, from.Lng, to.Lat, to.Lng, profile).
		Scan(&result.DistanceKm, &result.DurationMin)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}

	return result, true, nil
}

// Put stores one result, overwriting any previous value for the pair.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	from, to domain.Coordinate,
	profile string,
	result ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	if profile == "" {
		return errors.New("insert distance cache: profile must not be empty")
	}

	q := `
	INSERT INTO distance_cache (origin_lat, origin_lng, dest_lat, dest_lng, profile, distance_km, duration_min)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (origin_lat, origin_lng, dest_lat, dest_lng, profile) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		duration_min = EXCLUDED.duration_min;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		from.Lat, from.Lng, to.Lat, to.Lng, profile,
		result.DistanceKm, result.DurationMin,
	); err != nil {
		return fmt.Errorf("insert distance cache: %w", err)
	}

	return nil
}
