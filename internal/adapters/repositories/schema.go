package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the service's tables when they do not exist yet.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCouriersQuery := `
	CREATE TABLE IF NOT EXISTS couriers (
		courier_id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id BIGSERIAL PRIMARY KEY,
		address_label TEXT NOT NULL DEFAULT '',
		dest_lat DOUBLE PRECISION,
		dest_lng DOUBLE PRECISION,
		courier_id BIGINT REFERENCES couriers(courier_id)
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		route_id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		courier_id BIGINT REFERENCES couriers(courier_id),
		status TEXT NOT NULL,
		scheduled_at TIMESTAMPTZ,
		distance_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		duration_min DOUBLE PRECISION NOT NULL DEFAULT 0,
		geometry TEXT NOT NULL DEFAULT '',
		provider_request_id TEXT NOT NULL DEFAULT '',
		profile TEXT NOT NULL,
		origin_lat DOUBLE PRECISION NOT NULL,
		origin_lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createRouteStopsQuery := `
	CREATE TABLE IF NOT EXISTS route_stops (
		route_stop_id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(route_id) ON DELETE CASCADE,
		order_id BIGINT NOT NULL,
		sequence INTEGER NOT NULL,
		distance_km DOUBLE PRECISION,
		duration_min DOUBLE PRECISION,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lng DOUBLE PRECISION NOT NULL,
		address_label TEXT NOT NULL DEFAULT '',
		UNIQUE (route_id, sequence)
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL UNIQUE,
		courier_id BIGINT REFERENCES couriers(courier_id),
		status TEXT NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		origin_lat DOUBLE PRECISION NOT NULL,
		origin_lng DOUBLE PRECISION NOT NULL,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lng DOUBLE PRECISION NOT NULL,
		route_id BIGINT NOT NULL REFERENCES routes(route_id),
		distance_km DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin_lat DOUBLE PRECISION NOT NULL,
		origin_lng DOUBLE PRECISION NOT NULL,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lng DOUBLE PRECISION NOT NULL,
		profile TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		duration_min DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin_lat, origin_lng, dest_lat, dest_lng, profile)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_stops_route_sequence
	ON route_stops(route_id, sequence);
	`

	statements := []string{
		createCouriersQuery,
		createOrdersQuery,
		createRoutesQuery,
		createRouteStopsQuery,
		createShipmentsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}

	return nil
}
