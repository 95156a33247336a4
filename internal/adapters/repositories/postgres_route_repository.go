package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-service/internal/domain"
	"lastmile-routing-service/internal/platform/obs"
	"lastmile-routing-service/internal/ports"
)

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct{ DB *sql.DB }

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db}
}

// SaveRoute persists the route and its stops in one transaction.
// Either the whole aggregate lands or nothing does.
func (r *PostgresRouteRepository) SaveRoute(ctx context.Context, route *domain.Route) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "routes.Save")(&err)

	if r.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertRoute := `
	INSERT INTO routes (
		name, courier_id, status, scheduled_at,
		distance_km, duration_min, geometry, provider_request_id,
		profile, origin_lat, origin_lng
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING route_id, created_at;
	`

	err = tx.QueryRowContext(ctx, insertRoute,
		route.Name, route.CourierID, route.Status, route.ScheduledAt,
		route.DistanceKm, route.DurationMin, route.Geometry, route.ProviderRequestID,
		route.Profile, route.Origin.Lat, route.Origin.Lng,
	).Scan(&route.RouteID, &route.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save route: insert route: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_stops (
		route_id, order_id, sequence, distance_km, duration_min,
		dest_lat, dest_lng, address_label
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`)
	if err != nil {
		return nil, fmt.Errorf("save route: prepare stop insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range route.Stops {
		if _, err := stmt.ExecContext(ctx,
			route.RouteID, s.OrderID, s.Sequence, s.DistanceKm, s.DurationMin,
			s.Destination.Lat, s.Destination.Lng, s.AddressLabel,
		); err != nil {
			return nil, fmt.Errorf("save route: insert stop seq=%d: %w", s.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save route: commit: %w", err)
	}

	return route, nil
}

// FindRoute loads one route with its stops, sequence-ascending.
func (r *PostgresRouteRepository) FindRoute(ctx context.Context, id int64) (*domain.Route, error) {
	if r.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	q := `
	SELECT route_id, name, courier_id, status, scheduled_at,
		distance_km, duration_min, geometry, provider_request_id,
		profile, origin_lat, origin_lng, created_at
	FROM routes
	WHERE route_id = $1;
	`

	route, err := scanRoute(r.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "route", IDs: []int64{id}}
	}
	if err != nil {
		return nil, fmt.Errorf("find route: query routes table: %w", err)
	}

	stops, err := r.loadStops(ctx, []int64{route.RouteID})
	if err != nil {
		return nil, fmt.Errorf("find route: %w", err)
	}
	route.Stops = stops[route.RouteID]

	return route, nil
}

// ListRoutes returns routes matching filter, newest first.
func (r *PostgresRouteRepository) ListRoutes(ctx context.Context, filter ports.RouteFilter) ([]*domain.Route, error) {
	if r.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	q := `
	SELECT route_id, name, courier_id, status, scheduled_at,
		distance_km, duration_min, geometry, provider_request_id,
		profile, origin_lat, origin_lng, created_at
	FROM routes
	WHERE ($1::bigint IS NULL OR courier_id = $1)
	ORDER BY created_at DESC;
	`

	rows, err := r.DB.QueryContext(ctx, q, filter.CourierID)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0, 16)
	ids := make([]int64, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, route)
		ids = append(ids, route.RouteID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	if len(ids) == 0 {
		return routes, nil
	}

	stops, err := r.loadStops(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	for _, route := range routes {
		route.Stops = stops[route.RouteID]
	}

	return routes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var (
		route       domain.Route
		courierID   sql.NullInt64
		scheduledAt sql.NullTime
	)
	err := row.Scan(
		&route.RouteID, &route.Name, &courierID, &route.Status, &scheduledAt,
		&route.DistanceKm, &route.DurationMin, &route.Geometry, &route.ProviderRequestID,
		&route.Profile, &route.Origin.Lat, &route.Origin.Lng, &route.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if courierID.Valid {
		route.CourierID = &courierID.Int64
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		route.ScheduledAt = &t
	}
	return &route, nil
}

// loadStops fetches the stops for many routes in one query, grouped by
// route and ordered by sequence.
func (r *PostgresRouteRepository) loadStops(ctx context.Context, routeIDs []int64) (map[int64][]domain.RouteStop, error) {
	q := `
	SELECT route_id, order_id, sequence, distance_km, duration_min,
		dest_lat, dest_lng, address_label
	FROM route_stops
	WHERE route_id = ANY($1::bigint[])
	ORDER BY route_id, sequence;
	`

	rows, err := r.DB.QueryContext(ctx, q, routeIDs)
	if err != nil {
		return nil, fmt.Errorf("load stops: query route_stops table: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]domain.RouteStop, len(routeIDs))
	for rows.Next() {
		var (
			routeID     int64
			stop        domain.RouteStop
			distanceKm  sql.NullFloat64
			durationMin sql.NullFloat64
		)
		if err := rows.Scan(
			&routeID, &stop.OrderID, &stop.Sequence, &distanceKm, &durationMin,
			&stop.Destination.Lat, &stop.Destination.Lng, &stop.AddressLabel,
		); err != nil {
			return nil, fmt.Errorf("load stops: scan row: %w", err)
		}
		if distanceKm.Valid {
			stop.DistanceKm = &distanceKm.Float64
		}
		if durationMin.Valid {
			stop.DurationMin = &durationMin.Float64
		}
		out[routeID] = append(out[routeID], stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load stops: row iteration: %w", err)
	}

	return out, nil
}
