package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lastmile-routing-service/internal/domain"
)

// Postgres-backed implementation of the ShipmentRepository port.
type PostgresShipmentRepository struct{ DB *sql.DB }

func NewPostgresShipmentRepository(db *sql.DB) *PostgresShipmentRepository {
	return &PostgresShipmentRepository{DB: db}
}

// FindByOrder returns the order's shipment, or (nil, nil) when the
// order has never been routed.
func (r *PostgresShipmentRepository) FindByOrder(ctx context.Context, orderID int64) (*domain.Shipment, error) {
	if r.DB == nil {
		return nil, errors.New("shipment repository: DB is nil")
	}

	q := `
	SELECT shipment_id, order_id, courier_id, status, scheduled_at,
		origin_lat, origin_lng, dest_lat, dest_lng, route_id, distance_km
	FROM shipments
	WHERE order_id = $1;
	`

	var (
		s         domain.Shipment
		courierID sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx, q, orderID).Scan(
		&s.ShipmentID, &s.OrderID, &courierID, &s.Status, &s.ScheduledAt,
		&s.Origin.Lat, &s.Origin.Lng, &s.Destination.Lat, &s.Destination.Lng,
		&s.RouteID, &s.DistanceKm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find shipment by order %d: %w", orderID, err)
	}
	if courierID.Valid {
		s.CourierID = &courierID.Int64
	}

	return &s, nil
}

// Upsert creates or replaces the shipment row for its order. The
// order_id uniqueness constraint is what keeps one shipment per order.
func (r *PostgresShipmentRepository) Upsert(ctx context.Context, shipment *domain.Shipment) (*domain.Shipment, error) {
	if r.DB == nil {
		return nil, errors.New("shipment repository: DB is nil")
	}

	q := `
	INSERT INTO shipments (
		order_id, courier_id, status, scheduled_at,
		origin_lat, origin_lng, dest_lat, dest_lng, route_id, distance_km
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (order_id) DO UPDATE
	SET courier_id = EXCLUDED.courier_id,
		status = EXCLUDED.status,
		scheduled_at = EXCLUDED.scheduled_at,
		origin_lat = EXCLUDED.origin_lat,
		origin_lng = EXCLUDED.origin_lng,
		dest_lat = EXCLUDED.dest_lat,
		dest_lng = EXCLUDED.dest_lng,
		route_id = EXCLUDED.route_id,
		distance_km = EXCLUDED.distance_km
	RETURNING shipment_id;
	`

	err := r.DB.QueryRowContext(ctx, q,
		shipment.OrderID, shipment.CourierID, shipment.Status, shipment.ScheduledAt,
		shipment.Origin.Lat, shipment.Origin.Lng,
		shipment.Destination.Lat, shipment.Destination.Lng,
		shipment.RouteID, shipment.DistanceKm,
	).Scan(&shipment.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("upsert shipment for order %d: %w", shipment.OrderID, err)
	}

	return shipment, nil
}
